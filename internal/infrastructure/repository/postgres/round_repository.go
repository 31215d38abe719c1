package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/birdieboard/birdieboard/internal/domain/round"
	qb "github.com/birdieboard/birdieboard/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) Insert(ctx context.Context, rnd round.Round) error {
	insertModel := roundInsertModel{
		PublicID:        rnd.ID,
		OwnerProfileID:  rnd.OwnerProfileID,
		Status:          string(rnd.Status),
		CoursePublicID:  rnd.CourseID,
		PendingTeeBoxID: rnd.PendingTeeBoxID,
		ScheduledFor:    timePtrToNullUnixMicro(rnd.ScheduledFor),
		StartedAt:       timePtrToNullUnixMicro(rnd.StartedAt),
		FinishedAt:      timePtrToNullUnixMicro(rnd.FinishedAt),
		CreatedAt:       rnd.CreatedAt,
		UpdatedAt:       rnd.UpdatedAt,
	}
	query, args, err := qb.InsertModel("rounds", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(
			qb.Eq("public_id", roundID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round by id query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by id: %w", err)
	}
	return roundFromRow(row), true, nil
}

func (r *RoundRepository) ListByOwner(ctx context.Context, ownerProfileID string, limit int) ([]round.Round, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(
			qb.Eq("owner_profile_id", ownerProfileID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds by owner query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds by owner: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func (r *RoundRepository) UpdateSelection(ctx context.Context, roundID, courseID, teeBoxID string) (bool, error) {
	query, args, err := qb.Update("rounds").
		Set("course_public_id", courseID).
		Set("pending_tee_public_id", teeBoxID).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", roundID),
			qb.In("status", []any{string(round.StatusDraft), string(round.StatusScheduled)}),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update round selection query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update round selection: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update round selection rows affected: %w", err)
	}
	return affected > 0, nil
}

// ClaimStart is the atomic gate of the start flow: a single conditional
// UPDATE, so under concurrency exactly one caller sees an affected row.
func (r *RoundRepository) ClaimStart(ctx context.Context, roundID string, startedAt time.Time) (bool, error) {
	query, args, err := qb.Update("rounds").
		Set("status", string(round.StatusStarting)).
		Set("started_at", timeToUnixMicro(startedAt)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", roundID),
			qb.NotIn("status", []any{string(round.StatusStarting), string(round.StatusLive), string(round.StatusFinished)}),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build claim round start query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim round start: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim round start rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *RoundRepository) MarkLive(ctx context.Context, roundID string) error {
	query, args, err := qb.Update("rounds").
		Set("status", string(round.StatusLive)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", roundID),
			qb.Eq("status", string(round.StatusStarting)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark round live query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark round live: %w", err)
	}
	return nil
}

func (r *RoundRepository) ClaimFinish(ctx context.Context, roundID string, finishedAt time.Time) (bool, error) {
	query, args, err := qb.Update("rounds").
		Set("status", string(round.StatusFinished)).
		Set("finished_at", timeToUnixMicro(finishedAt)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", roundID),
			qb.In("status", []any{string(round.StatusLive), string(round.StatusStarting)}),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build claim round finish query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim round finish: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim round finish rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *RoundRepository) Delete(ctx context.Context, roundID string) error {
	query, args, err := qb.DeleteFrom("rounds").
		Where(qb.Eq("public_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}

func (r *RoundRepository) InsertParticipant(ctx context.Context, p round.Participant) error {
	insertModel := participantInsertModel{
		PublicID:      p.ID,
		RoundPublicID: p.RoundID,
		ProfileID:     ptrToNullString(p.ProfileID),
		DisplayName:   p.DisplayName,
		Role:          string(p.Role),
		TeeSnapshotID: ptrToNullString(p.TeeSnapshotID),
		CreatedAt:     p.CreatedAt,
	}
	query, args, err := qb.InsertModel("round_participants", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (r *RoundRepository) GetParticipant(ctx context.Context, participantID string) (round.Participant, bool, error) {
	query, args, err := qb.Select("*").From("round_participants").
		Where(
			qb.Eq("public_id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return round.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Participant{}, false, nil
		}
		return round.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}
	return participantFromRow(row), true, nil
}

func (r *RoundRepository) GetParticipantByProfile(ctx context.Context, roundID, profileID string) (round.Participant, bool, error) {
	query, args, err := qb.Select("*").From("round_participants").
		Where(
			qb.Eq("round_public_id", roundID),
			qb.Eq("profile_public_id", profileID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return round.Participant{}, false, fmt.Errorf("build get participant by profile query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Participant{}, false, nil
		}
		return round.Participant{}, false, fmt.Errorf("get participant by profile: %w", err)
	}
	return participantFromRow(row), true, nil
}

func (r *RoundRepository) ListParticipants(ctx context.Context, roundID string) ([]round.Participant, error) {
	query, args, err := qb.Select("*").From("round_participants").
		Where(
			qb.Eq("round_public_id", roundID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]round.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *RoundRepository) AssignTeeSnapshot(ctx context.Context, participantID, teeSnapshotID string) error {
	query, args, err := qb.Update("round_participants").
		Set("tee_snapshot_public_id", teeSnapshotID).
		Where(
			qb.Eq("public_id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign tee snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assign tee snapshot: %w", err)
	}
	return nil
}

func (r *RoundRepository) DeleteParticipant(ctx context.Context, participantID string) error {
	query, args, err := qb.Update("round_participants").
		Set("deleted_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

func (r *RoundRepository) DeleteParticipantsByRound(ctx context.Context, roundID string) error {
	query, args, err := qb.DeleteFrom("round_participants").
		Where(qb.Eq("round_public_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participants by round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete participants by round: %w", err)
	}
	return nil
}

func roundFromRow(row roundTableModel) round.Round {
	return round.Round{
		ID:              row.PublicID,
		OwnerProfileID:  row.OwnerProfileID,
		Status:          round.Status(row.Status),
		CourseID:        row.CoursePublicID,
		PendingTeeBoxID: row.PendingTeeBoxID,
		ScheduledFor:    nullUnixMicroToTimePtr(row.ScheduledFor),
		StartedAt:       nullUnixMicroToTimePtr(row.StartedAt),
		FinishedAt:      nullUnixMicroToTimePtr(row.FinishedAt),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func participantFromRow(row participantTableModel) round.Participant {
	return round.Participant{
		ID:            row.PublicID,
		RoundID:       row.RoundPublicID,
		ProfileID:     nullStringToPtr(row.ProfileID),
		DisplayName:   row.DisplayName,
		Role:          round.ParticipantRole(row.Role),
		TeeSnapshotID: nullStringToPtr(row.TeeSnapshotID),
		CreatedAt:     row.CreatedAt,
	}
}
