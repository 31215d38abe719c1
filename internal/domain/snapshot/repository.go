package snapshot

import "context"

// Repository persists frozen course data. Creation is idempotent on the
// natural keys (round_id, course_id), (course_snapshot_id, tee_box_id) and
// (tee_snapshot_id, hole_id): re-running a start after a partial failure
// reuses whatever rows already exist instead of duplicating them.
type Repository interface {
	GetCourseSnapshotByRound(ctx context.Context, roundID string) (CourseSnapshot, bool, error)
	// EnsureCourseSnapshot inserts the snapshot unless one already exists
	// for its natural key, and returns the surviving row either way.
	EnsureCourseSnapshot(ctx context.Context, cs CourseSnapshot) (CourseSnapshot, error)

	GetTeeSnapshot(ctx context.Context, teeSnapshotID string) (TeeSnapshot, bool, error)
	GetTeeSnapshotByNaturalKey(ctx context.Context, courseSnapshotID, teeBoxID string) (TeeSnapshot, bool, error)
	EnsureTeeSnapshot(ctx context.Context, ts TeeSnapshot) (TeeSnapshot, error)
	ListTeeSnapshotsByCourseSnapshot(ctx context.Context, courseSnapshotID string) ([]TeeSnapshot, error)

	EnsureHoleSnapshots(ctx context.Context, teeSnapshotID string, holes []HoleSnapshot) error
	ListHoleSnapshots(ctx context.Context, teeSnapshotID string) ([]HoleSnapshot, error)

	// DeleteByRound removes every snapshot row belonging to a round. Used
	// only when deleting a draft that never started.
	DeleteByRound(ctx context.Context, roundID string) error
}
