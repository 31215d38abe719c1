package round

import (
	"context"
	"time"
)

// Repository persists rounds and their participant roster.
type Repository interface {
	Insert(ctx context.Context, r Round) error
	GetByID(ctx context.Context, roundID string) (Round, bool, error)
	// ListByOwner returns the owner's rounds, newest first.
	ListByOwner(ctx context.Context, ownerProfileID string, limit int) ([]Round, error)

	// UpdateSelection writes course/tee selection. It only touches rounds
	// whose status is still editable and reports whether a row changed.
	UpdateSelection(ctx context.Context, roundID, courseID, teeBoxID string) (bool, error)

	// ClaimStart atomically moves a round into the starting state unless it
	// is already starting or live, recording startedAt. It reports false on
	// a lost race; callers treat false as a clean loss, not an error. A
	// round stuck in starting after a crash stays claimable through the
	// idempotent materialization path, never through this call.
	ClaimStart(ctx context.Context, roundID string, startedAt time.Time) (bool, error)
	// MarkLive completes a successful start claim.
	MarkLive(ctx context.Context, roundID string) error
	// ClaimFinish moves a live round to finished. False means the round was
	// not live, which callers surface as a state conflict.
	ClaimFinish(ctx context.Context, roundID string, finishedAt time.Time) (bool, error)

	// Delete removes the round row itself. Dependent rows are removed by
	// their own repositories before this is called.
	Delete(ctx context.Context, roundID string) error

	InsertParticipant(ctx context.Context, p Participant) error
	GetParticipant(ctx context.Context, participantID string) (Participant, bool, error)
	// GetParticipantByProfile resolves a member's seat in a round.
	GetParticipantByProfile(ctx context.Context, roundID, profileID string) (Participant, bool, error)
	ListParticipants(ctx context.Context, roundID string) ([]Participant, error)
	// AssignTeeSnapshot pins a participant to a frozen tee at start time.
	AssignTeeSnapshot(ctx context.Context, participantID, teeSnapshotID string) error
	DeleteParticipant(ctx context.Context, participantID string) error
	DeleteParticipantsByRound(ctx context.Context, roundID string) error
}
