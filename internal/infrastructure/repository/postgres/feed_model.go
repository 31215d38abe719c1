package postgres

import (
	"database/sql"
	"time"
)

type feedItemTableModel struct {
	ID             int64          `db:"id"`
	Type           string         `db:"type"`
	ActorProfileID string         `db:"actor_profile_id"`
	RoundPublicID  sql.NullString `db:"round_public_id"`
	GroupKey       sql.NullString `db:"group_key"`
	Audience       string         `db:"audience"`
	Visibility     string         `db:"visibility"`
	Payload        []byte         `db:"payload"`
	OccurredAt     int64          `db:"occurred_at"`
	CreatedAt      time.Time      `db:"created_at"`
}

type feedSubjectTableModel struct {
	ItemID          int64  `db:"item_id"`
	ProfilePublicID string `db:"profile_public_id"`
	Role            string `db:"role"`
}

type feedItemInsertModel struct {
	Type           string         `db:"type"`
	ActorProfileID string         `db:"actor_profile_id"`
	RoundPublicID  sql.NullString `db:"round_public_id"`
	GroupKey       sql.NullString `db:"group_key"`
	Audience       string         `db:"audience"`
	Visibility     string         `db:"visibility"`
	Payload        []byte         `db:"payload"`
	OccurredAt     int64          `db:"occurred_at"`
	CreatedAt      time.Time      `db:"created_at"`
}
