package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birdieboard/birdieboard/internal/domain/round"
	"github.com/birdieboard/birdieboard/internal/domain/score"
	qb "github.com/birdieboard/birdieboard/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// InsertEvent appends to the event log and refreshes the per-hole read
// model; the latest event for a (participant, hole) pair wins.
func (r *ScoreRepository) InsertEvent(ctx context.Context, e score.Event) error {
	eventModel := scoreEventInsertModel{
		PublicID:            e.ID,
		RoundPublicID:       e.RoundID,
		ParticipantPublicID: e.ParticipantID,
		HoleNumber:          e.HoleNumber,
		Strokes:             e.Strokes,
		RecordedBy:          e.RecordedBy,
		RecordedAt:          timeToUnixMicro(e.RecordedAt),
	}
	query, args, err := qb.InsertModel("score_events", eventModel, "")
	if err != nil {
		return fmt.Errorf("build insert score event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert score event: %w", err)
	}

	cacheModel := holeScoreInsertModel{
		RoundPublicID:       e.RoundID,
		ParticipantPublicID: e.ParticipantID,
		HoleNumber:          e.HoleNumber,
		Strokes:             e.Strokes,
		UpdatedAt:           timeToUnixMicro(e.RecordedAt),
	}
	cacheQuery, cacheArgs, err := qb.InsertModel("hole_scores", cacheModel, `ON CONFLICT (round_public_id, participant_public_id, hole_number)
DO UPDATE SET
    strokes = EXCLUDED.strokes,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert hole score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, cacheQuery, cacheArgs...); err != nil {
		return fmt.Errorf("upsert hole score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) ListEventsByRound(ctx context.Context, roundID string) ([]score.Event, error) {
	query, args, err := qb.Select("*").From("score_events").
		Where(qb.Eq("round_public_id", roundID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score events query: %w", err)
	}

	var rows []scoreEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score events: %w", err)
	}

	out := make([]score.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, score.Event{
			ID:            row.PublicID,
			RoundID:       row.RoundPublicID,
			ParticipantID: row.ParticipantPublicID,
			HoleNumber:    row.HoleNumber,
			Strokes:       row.Strokes,
			RecordedBy:    row.RecordedBy,
			RecordedAt:    unixMicroToTime(row.RecordedAt),
		})
	}
	return out, nil
}

func (r *ScoreRepository) ListHoleScores(ctx context.Context, roundID, participantID string) ([]score.HoleScore, error) {
	query, args, err := qb.Select("*").From("hole_scores").
		Where(
			qb.Eq("round_public_id", roundID),
			qb.Eq("participant_public_id", participantID),
		).
		OrderBy("hole_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hole scores query: %w", err)
	}
	return r.selectHoleScores(ctx, query, args)
}

func (r *ScoreRepository) ListHoleScoresByRound(ctx context.Context, roundID string) ([]score.HoleScore, error) {
	query, args, err := qb.Select("*").From("hole_scores").
		Where(qb.Eq("round_public_id", roundID)).
		OrderBy("participant_public_id", "hole_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hole scores by round query: %w", err)
	}
	return r.selectHoleScores(ctx, query, args)
}

// BestTotalByProfile walks the profile's earlier finished rounds and keeps
// the lowest full-card total. One query per round keeps the SQL simple;
// the generators call this once per finish.
func (r *ScoreRepository) BestTotalByProfile(ctx context.Context, profileID, excludeRoundID string) (int, bool, error) {
	roundsQuery, roundsArgs, err := qb.Select("p.round_public_id", "p.public_id AS participant_public_id", "cs.hole_count").
		From("round_participants p").
		Join("JOIN rounds r ON r.public_id = p.round_public_id").
		Join("JOIN course_snapshots cs ON cs.round_public_id = r.public_id").
		Where(
			qb.Eq("p.profile_public_id", profileID),
			qb.Eq("r.status", string(round.StatusFinished)),
			qb.Expr("r.public_id <> ?", excludeRoundID),
			qb.IsNull("p.deleted_at"),
			qb.IsNull("r.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build finished rounds query: %w", err)
	}

	var seats []struct {
		RoundPublicID       string `db:"round_public_id"`
		ParticipantPublicID string `db:"participant_public_id"`
		HoleCount           int    `db:"hole_count"`
	}
	if err := r.db.SelectContext(ctx, &seats, roundsQuery, roundsArgs...); err != nil {
		return 0, false, fmt.Errorf("list finished rounds for profile: %w", err)
	}

	best := 0
	found := false
	for _, seat := range seats {
		totalQuery, totalArgs, err := qb.Select("COALESCE(SUM(strokes), 0) AS total", "COUNT(*) AS holes").
			From("hole_scores").
			Where(
				qb.Eq("round_public_id", seat.RoundPublicID),
				qb.Eq("participant_public_id", seat.ParticipantPublicID),
			).
			ToSQL()
		if err != nil {
			return 0, false, fmt.Errorf("build round total query: %w", err)
		}

		var agg struct {
			Total int `db:"total"`
			Holes int `db:"holes"`
		}
		if err := r.db.GetContext(ctx, &agg, totalQuery, totalArgs...); err != nil {
			return 0, false, fmt.Errorf("sum round total: %w", err)
		}
		if seat.HoleCount == 0 || agg.Holes < seat.HoleCount {
			continue
		}
		if !found || agg.Total < best {
			best = agg.Total
			found = true
		}
	}
	return best, found, nil
}

func (r *ScoreRepository) DeleteByRound(ctx context.Context, roundID string) error {
	for _, table := range []string{"score_events", "hole_scores"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("round_public_id", roundID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s by round query: %w", table, err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s by round: %w", table, err)
		}
	}
	return nil
}

func (r *ScoreRepository) DeleteByParticipant(ctx context.Context, roundID, participantID string) error {
	for _, table := range []string{"score_events", "hole_scores"} {
		query, args, err := qb.DeleteFrom(table).
			Where(
				qb.Eq("round_public_id", roundID),
				qb.Eq("participant_public_id", participantID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s by participant query: %w", table, err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s by participant: %w", table, err)
		}
	}
	return nil
}

func (r *ScoreRepository) selectHoleScores(ctx context.Context, query string, args []any) ([]score.HoleScore, error) {
	var rows []holeScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list hole scores: %w", err)
	}

	out := make([]score.HoleScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, score.HoleScore{
			RoundID:       row.RoundPublicID,
			ParticipantID: row.ParticipantPublicID,
			HoleNumber:    row.HoleNumber,
			Strokes:       row.Strokes,
			UpdatedAt:     unixMicroToTime(row.UpdatedAt),
		})
	}
	return out, nil
}
