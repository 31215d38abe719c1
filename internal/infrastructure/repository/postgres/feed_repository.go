package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/birdieboard/birdieboard/internal/domain/feed"
	"github.com/birdieboard/birdieboard/internal/domain/round"
	qb "github.com/birdieboard/birdieboard/internal/platform/querybuilder"
)

type FeedRepository struct {
	db *sqlx.DB
}

func NewFeedRepository(db *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

func (r *FeedRepository) InsertItem(ctx context.Context, item *feed.Item) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	insertModel := feedItemInsertModel{
		Type:           string(item.Type),
		ActorProfileID: item.ActorProfileID,
		RoundPublicID:  ptrToNullString(item.RoundID),
		GroupKey:       ptrToNullString(item.GroupKey),
		Audience:       string(item.Audience),
		Visibility:     string(item.Visibility),
		Payload:        item.Payload,
		OccurredAt:     timeToUnixMicro(item.OccurredAt),
		CreatedAt:      item.CreatedAt,
	}
	query, args, err := qb.InsertModel("feed_items", insertModel, "RETURNING id")
	if err != nil {
		return fmt.Errorf("build insert feed item query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return fmt.Errorf("insert feed item: %w", err)
	}
	item.ID = id
	return nil
}

func (r *FeedRepository) GetItemByGroupKey(ctx context.Context, groupKey string) (feed.Item, bool, error) {
	query, args, err := qb.Select("*").From("feed_items").
		Where(qb.Eq("group_key", groupKey)).
		ToSQL()
	if err != nil {
		return feed.Item{}, false, fmt.Errorf("build get feed item by group key query: %w", err)
	}

	var row feedItemTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return feed.Item{}, false, nil
		}
		return feed.Item{}, false, fmt.Errorf("get feed item by group key: %w", err)
	}
	return feedItemFromRow(row), true, nil
}

func (r *FeedRepository) GetItem(ctx context.Context, itemID int64) (feed.Item, bool, error) {
	query, args, err := qb.Select("*").From("feed_items").
		Where(qb.Eq("id", itemID)).
		ToSQL()
	if err != nil {
		return feed.Item{}, false, fmt.Errorf("build get feed item query: %w", err)
	}

	var row feedItemTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return feed.Item{}, false, nil
		}
		return feed.Item{}, false, fmt.Errorf("get feed item: %w", err)
	}
	return feedItemFromRow(row), true, nil
}

func (r *FeedRepository) UpdateItemVisibility(ctx context.Context, itemID int64, v feed.Visibility) error {
	query, args, err := qb.Update("feed_items").
		Set("visibility", string(v)).
		Where(qb.Eq("id", itemID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update feed item visibility query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update feed item visibility: %w", err)
	}
	return nil
}

func (r *FeedRepository) ListItemsByRound(ctx context.Context, roundID string) ([]feed.Item, error) {
	query, args, err := qb.Select("*").From("feed_items").
		Where(qb.Eq("round_public_id", roundID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list feed items by round query: %w", err)
	}
	return r.selectItems(ctx, query, args)
}

func (r *FeedRepository) DeleteItemsByRound(ctx context.Context, roundID string) error {
	for _, table := range []string{"feed_deliveries", "feed_subjects"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Expr("item_id IN (SELECT id FROM feed_items WHERE round_public_id = ?)", roundID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s by round query: %w", table, err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s by round: %w", table, err)
		}
	}

	query, args, err := qb.DeleteFrom("feed_items").
		Where(qb.Eq("round_public_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete feed items by round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete feed items by round: %w", err)
	}
	return nil
}

func (r *FeedRepository) InsertSubjects(ctx context.Context, itemID int64, subjects []feed.Subject) error {
	for _, subject := range subjects {
		query, args, err := qb.InsertInto("feed_subjects").
			Columns("item_id", "profile_public_id", "role").
			Values(itemID, subject.ProfileID, string(subject.Role)).
			Suffix("ON CONFLICT (item_id, profile_public_id, role) DO NOTHING").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert feed subject query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert feed subject: %w", err)
		}
	}
	return nil
}

func (r *FeedRepository) ListSubjects(ctx context.Context, itemID int64) ([]feed.Subject, error) {
	query, args, err := qb.Select("item_id", "profile_public_id", "role").From("feed_subjects").
		Where(qb.Eq("item_id", itemID)).
		OrderBy("profile_public_id", "role").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list feed subjects query: %w", err)
	}

	var rows []feedSubjectTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list feed subjects: %w", err)
	}

	out := make([]feed.Subject, 0, len(rows))
	for _, row := range rows {
		out = append(out, feed.Subject{
			ItemID:    row.ItemID,
			ProfileID: row.ProfilePublicID,
			Role:      feed.SubjectRole(row.Role),
		})
	}
	return out, nil
}

func (r *FeedRepository) UpsertDeliveries(ctx context.Context, itemID int64, viewerIDs []string, at time.Time) error {
	for _, viewerID := range viewerIDs {
		query, args, err := qb.InsertInto("feed_deliveries").
			Columns("item_id", "viewer_profile_id", "created_at").
			Values(itemID, viewerID, timeToUnixMicro(at)).
			Suffix("ON CONFLICT (item_id, viewer_profile_id) DO NOTHING").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert feed delivery query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert feed delivery: %w", err)
		}
	}
	return nil
}

func (r *FeedRepository) DeleteDeliveriesByItem(ctx context.Context, itemID int64) error {
	query, args, err := qb.DeleteFrom("feed_deliveries").
		Where(qb.Eq("item_id", itemID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete feed deliveries query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete feed deliveries: %w", err)
	}
	return nil
}

func (r *FeedRepository) ListPageForViewer(ctx context.Context, viewerID string, cursor *feed.Cursor, limit int) ([]feed.Item, error) {
	builder := qb.Select("i.*").
		From("feed_items i").
		Join("LEFT JOIN feed_deliveries d ON d.item_id = i.id AND d.viewer_profile_id = ?", viewerID)

	conditions := []qb.Condition{
		qb.Eq("i.visibility", string(feed.VisibilityVisible)),
		qb.Expr("(d.viewer_profile_id IS NOT NULL OR i.actor_profile_id = ?)", viewerID),
	}
	if cursor != nil {
		// Row-value comparison keeps the (occurred_at, id) order exact
		// across equal timestamps.
		conditions = append(conditions, qb.Expr("(i.occurred_at, i.id) < (?, ?)",
			timeToUnixMicro(cursor.OccurredAt), cursor.ID))
	}

	query, args, err := builder.
		Where(conditions...).
		OrderBy("i.occurred_at DESC", "i.id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list feed page query: %w", err)
	}
	return r.selectItems(ctx, query, args)
}

func (r *FeedRepository) ListLiveItemsForViewer(ctx context.Context, viewerID string, limit int) ([]feed.Item, error) {
	query, args, err := qb.Select("r.public_id", "r.owner_profile_id", "r.started_at", "r.created_at").
		From("rounds r").
		Where(
			qb.Eq("r.status", string(round.StatusLive)),
			qb.IsNull("r.deleted_at"),
			qb.Expr(`(r.owner_profile_id = ? OR r.owner_profile_id IN (
				SELECT followee_profile_id FROM follows WHERE follower_profile_id = ?))`, viewerID, viewerID),
		).
		OrderBy("r.started_at DESC", "r.id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list live rounds query: %w", err)
	}

	var rows []struct {
		PublicID       string        `db:"public_id"`
		OwnerProfileID string        `db:"owner_profile_id"`
		StartedAt      sql.NullInt64 `db:"started_at"`
		CreatedAt      time.Time     `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list live rounds: %w", err)
	}

	out := make([]feed.Item, 0, len(rows))
	for _, row := range rows {
		roundID := row.PublicID
		occurredAt := row.CreatedAt
		if row.StartedAt.Valid {
			occurredAt = unixMicroToTime(row.StartedAt.Int64)
		}
		payload, err := sonic.Marshal(map[string]any{"round_id": roundID, "live": true})
		if err != nil {
			return nil, fmt.Errorf("marshal live card payload: %w", err)
		}
		out = append(out, feed.Item{
			Type:           feed.TypeRoundPlayed,
			ActorProfileID: row.OwnerProfileID,
			RoundID:        &roundID,
			Audience:       feed.AudienceFollowers,
			Visibility:     feed.VisibilityVisible,
			Payload:        payload,
			OccurredAt:     occurredAt,
		})
	}
	return out, nil
}

func (r *FeedRepository) selectItems(ctx context.Context, query string, args []any) ([]feed.Item, error) {
	var rows []feedItemTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select feed items: %w", err)
	}

	out := make([]feed.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, feedItemFromRow(row))
	}
	return out, nil
}

func feedItemFromRow(row feedItemTableModel) feed.Item {
	return feed.Item{
		ID:             row.ID,
		Type:           feed.ItemType(row.Type),
		ActorProfileID: row.ActorProfileID,
		RoundID:        nullStringToPtr(row.RoundPublicID),
		GroupKey:       nullStringToPtr(row.GroupKey),
		Audience:       feed.Audience(row.Audience),
		Visibility:     feed.Visibility(row.Visibility),
		Payload:        row.Payload,
		OccurredAt:     unixMicroToTime(row.OccurredAt),
		CreatedAt:      row.CreatedAt,
	}
}
