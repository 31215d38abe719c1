package postgres

import (
	"database/sql"
	"time"
)

type roundTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	OwnerProfileID  string         `db:"owner_profile_id"`
	Status          string         `db:"status"`
	CoursePublicID  string         `db:"course_public_id"`
	PendingTeeBoxID string         `db:"pending_tee_public_id"`
	ScheduledFor    sql.NullInt64  `db:"scheduled_for"`
	StartedAt       sql.NullInt64  `db:"started_at"`
	FinishedAt      sql.NullInt64  `db:"finished_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type roundInsertModel struct {
	PublicID        string        `db:"public_id"`
	OwnerProfileID  string        `db:"owner_profile_id"`
	Status          string        `db:"status"`
	CoursePublicID  string        `db:"course_public_id"`
	PendingTeeBoxID string        `db:"pending_tee_public_id"`
	ScheduledFor    sql.NullInt64 `db:"scheduled_for"`
	StartedAt       sql.NullInt64 `db:"started_at"`
	FinishedAt      sql.NullInt64 `db:"finished_at"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type participantTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	RoundPublicID string         `db:"round_public_id"`
	ProfileID     sql.NullString `db:"profile_public_id"`
	DisplayName   string         `db:"display_name"`
	Role          string         `db:"role"`
	TeeSnapshotID sql.NullString `db:"tee_snapshot_public_id"`
	CreatedAt     time.Time      `db:"created_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type participantInsertModel struct {
	PublicID      string         `db:"public_id"`
	RoundPublicID string         `db:"round_public_id"`
	ProfileID     sql.NullString `db:"profile_public_id"`
	DisplayName   string         `db:"display_name"`
	Role          string         `db:"role"`
	TeeSnapshotID sql.NullString `db:"tee_snapshot_public_id"`
	CreatedAt     time.Time      `db:"created_at"`
}
