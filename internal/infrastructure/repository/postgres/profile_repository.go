package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/birdieboard/birdieboard/internal/domain/profile"
	qb "github.com/birdieboard/birdieboard/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"display_name"`
	AvatarURL sql.NullString `db:"avatar_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(
			qb.Eq("public_id", profileID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return profile.Profile{
		ID:          row.PublicID,
		DisplayName: row.Name,
		AvatarURL:   row.AvatarURL.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func (r *ProfileRepository) ListFollowerIDs(ctx context.Context, profileID string) ([]string, error) {
	query, args, err := qb.Select("follower_profile_id").From("follows").
		Where(qb.Eq("followee_profile_id", profileID)).
		OrderBy("follower_profile_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list followers query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return out, nil
}
