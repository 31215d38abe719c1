package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birdieboard/birdieboard/internal/domain/snapshot"
	qb "github.com/birdieboard/birdieboard/internal/platform/querybuilder"
)

// SnapshotRepository persists the frozen course data a round plays
// against. The ensure methods are insert-if-absent on the natural keys,
// backed by unique indexes, so a resumed start never duplicates rows.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) GetCourseSnapshotByRound(ctx context.Context, roundID string) (snapshot.CourseSnapshot, bool, error) {
	query, args, err := qb.Select("*").From("course_snapshots").
		Where(qb.Eq("round_public_id", roundID)).
		ToSQL()
	if err != nil {
		return snapshot.CourseSnapshot{}, false, fmt.Errorf("build get course snapshot query: %w", err)
	}

	var row courseSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.CourseSnapshot{}, false, nil
		}
		return snapshot.CourseSnapshot{}, false, fmt.Errorf("get course snapshot: %w", err)
	}
	return courseSnapshotFromRow(row), true, nil
}

func (r *SnapshotRepository) EnsureCourseSnapshot(ctx context.Context, cs snapshot.CourseSnapshot) (snapshot.CourseSnapshot, error) {
	insertModel := courseSnapshotInsertModel{
		PublicID:       cs.ID,
		RoundPublicID:  cs.RoundID,
		CoursePublicID: cs.CourseID,
		Name:           cs.Name,
		City:           cs.City,
		Country:        cs.Country,
		HoleCount:      cs.HoleCount,
		CreatedAt:      cs.CreatedAt,
	}
	query, args, err := qb.InsertModel("course_snapshots", insertModel,
		"ON CONFLICT (round_public_id, course_public_id) DO NOTHING")
	if err != nil {
		return snapshot.CourseSnapshot{}, fmt.Errorf("build ensure course snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return snapshot.CourseSnapshot{}, fmt.Errorf("ensure course snapshot: %w", err)
	}

	stored, exists, err := r.GetCourseSnapshotByRound(ctx, cs.RoundID)
	if err != nil {
		return snapshot.CourseSnapshot{}, err
	}
	if !exists {
		return snapshot.CourseSnapshot{}, fmt.Errorf("course snapshot missing after ensure: round=%s", cs.RoundID)
	}
	return stored, nil
}

func (r *SnapshotRepository) GetTeeSnapshot(ctx context.Context, teeSnapshotID string) (snapshot.TeeSnapshot, bool, error) {
	query, args, err := qb.Select("*").From("tee_snapshots").
		Where(qb.Eq("public_id", teeSnapshotID)).
		ToSQL()
	if err != nil {
		return snapshot.TeeSnapshot{}, false, fmt.Errorf("build get tee snapshot query: %w", err)
	}

	var row teeSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.TeeSnapshot{}, false, nil
		}
		return snapshot.TeeSnapshot{}, false, fmt.Errorf("get tee snapshot: %w", err)
	}
	return teeSnapshotFromRow(row), true, nil
}

func (r *SnapshotRepository) GetTeeSnapshotByNaturalKey(ctx context.Context, courseSnapshotID, teeBoxID string) (snapshot.TeeSnapshot, bool, error) {
	query, args, err := qb.Select("*").From("tee_snapshots").
		Where(
			qb.Eq("course_snapshot_public_id", courseSnapshotID),
			qb.Eq("tee_box_public_id", teeBoxID),
		).
		ToSQL()
	if err != nil {
		return snapshot.TeeSnapshot{}, false, fmt.Errorf("build get tee snapshot by key query: %w", err)
	}

	var row teeSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.TeeSnapshot{}, false, nil
		}
		return snapshot.TeeSnapshot{}, false, fmt.Errorf("get tee snapshot by key: %w", err)
	}
	return teeSnapshotFromRow(row), true, nil
}

func (r *SnapshotRepository) EnsureTeeSnapshot(ctx context.Context, ts snapshot.TeeSnapshot) (snapshot.TeeSnapshot, error) {
	insertModel := teeSnapshotInsertModel{
		PublicID:               ts.ID,
		CourseSnapshotPublicID: ts.CourseSnapshotID,
		TeeBoxPublicID:         ts.TeeBoxID,
		Name:                   ts.Name,
		Par:                    ts.Par,
		Yards:                  ts.Yards,
		Rating:                 ts.Rating,
		Slope:                  ts.Slope,
		CreatedAt:              ts.CreatedAt,
	}
	query, args, err := qb.InsertModel("tee_snapshots", insertModel,
		"ON CONFLICT (course_snapshot_public_id, tee_box_public_id) DO NOTHING")
	if err != nil {
		return snapshot.TeeSnapshot{}, fmt.Errorf("build ensure tee snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return snapshot.TeeSnapshot{}, fmt.Errorf("ensure tee snapshot: %w", err)
	}

	stored, exists, err := r.GetTeeSnapshotByNaturalKey(ctx, ts.CourseSnapshotID, ts.TeeBoxID)
	if err != nil {
		return snapshot.TeeSnapshot{}, err
	}
	if !exists {
		return snapshot.TeeSnapshot{}, fmt.Errorf("tee snapshot missing after ensure: course_snapshot=%s tee_box=%s", ts.CourseSnapshotID, ts.TeeBoxID)
	}
	return stored, nil
}

func (r *SnapshotRepository) ListTeeSnapshotsByCourseSnapshot(ctx context.Context, courseSnapshotID string) ([]snapshot.TeeSnapshot, error) {
	query, args, err := qb.Select("*").From("tee_snapshots").
		Where(qb.Eq("course_snapshot_public_id", courseSnapshotID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tee snapshots query: %w", err)
	}

	var rows []teeSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tee snapshots: %w", err)
	}

	out := make([]snapshot.TeeSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, teeSnapshotFromRow(row))
	}
	return out, nil
}

func (r *SnapshotRepository) EnsureHoleSnapshots(ctx context.Context, teeSnapshotID string, holes []snapshot.HoleSnapshot) error {
	for _, h := range holes {
		insertModel := holeSnapshotInsertModel{
			PublicID:            h.ID,
			TeeSnapshotPublicID: teeSnapshotID,
			HolePublicID:        h.HoleID,
			Number:              h.Number,
			Par:                 h.Par,
			Yards:               h.Yards,
			StrokeIndex:         h.StrokeIndex,
			CreatedAt:           h.CreatedAt,
		}
		query, args, err := qb.InsertModel("hole_snapshots", insertModel,
			"ON CONFLICT (tee_snapshot_public_id, hole_public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build ensure hole snapshot query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("ensure hole snapshot %d: %w", h.Number, err)
		}
	}
	return nil
}

func (r *SnapshotRepository) ListHoleSnapshots(ctx context.Context, teeSnapshotID string) ([]snapshot.HoleSnapshot, error) {
	query, args, err := qb.Select("*").From("hole_snapshots").
		Where(qb.Eq("tee_snapshot_public_id", teeSnapshotID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hole snapshots query: %w", err)
	}

	var rows []holeSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list hole snapshots: %w", err)
	}

	out := make([]snapshot.HoleSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshot.HoleSnapshot{
			ID:            row.PublicID,
			TeeSnapshotID: row.TeeSnapshotPublicID,
			HoleID:        row.HolePublicID,
			Number:        row.Number,
			Par:           row.Par,
			Yards:         row.Yards,
			StrokeIndex:   row.StrokeIndex,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

func (r *SnapshotRepository) DeleteByRound(ctx context.Context, roundID string) error {
	holesQuery, holesArgs, err := qb.DeleteFrom("hole_snapshots").
		Where(qb.Expr(`tee_snapshot_public_id IN (
			SELECT ts.public_id FROM tee_snapshots ts
			JOIN course_snapshots cs ON cs.public_id = ts.course_snapshot_public_id
			WHERE cs.round_public_id = ?)`, roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete hole snapshots query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, holesQuery, holesArgs...); err != nil {
		return fmt.Errorf("delete hole snapshots: %w", err)
	}

	teesQuery, teesArgs, err := qb.DeleteFrom("tee_snapshots").
		Where(qb.Expr(`course_snapshot_public_id IN (
			SELECT public_id FROM course_snapshots WHERE round_public_id = ?)`, roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tee snapshots query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, teesQuery, teesArgs...); err != nil {
		return fmt.Errorf("delete tee snapshots: %w", err)
	}

	courseQuery, courseArgs, err := qb.DeleteFrom("course_snapshots").
		Where(qb.Eq("round_public_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete course snapshots query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, courseQuery, courseArgs...); err != nil {
		return fmt.Errorf("delete course snapshots: %w", err)
	}
	return nil
}

func courseSnapshotFromRow(row courseSnapshotTableModel) snapshot.CourseSnapshot {
	return snapshot.CourseSnapshot{
		ID:        row.PublicID,
		RoundID:   row.RoundPublicID,
		CourseID:  row.CoursePublicID,
		Name:      row.Name,
		City:      row.City,
		Country:   row.Country,
		HoleCount: row.HoleCount,
		CreatedAt: row.CreatedAt,
	}
}

func teeSnapshotFromRow(row teeSnapshotTableModel) snapshot.TeeSnapshot {
	return snapshot.TeeSnapshot{
		ID:               row.PublicID,
		CourseSnapshotID: row.CourseSnapshotPublicID,
		TeeBoxID:         row.TeeBoxPublicID,
		Name:             row.Name,
		Par:              row.Par,
		Yards:            row.Yards,
		Rating:           row.Rating,
		Slope:            row.Slope,
		CreatedAt:        row.CreatedAt,
	}
}
