package profile

import "context"

type Repository interface {
	GetByID(ctx context.Context, profileID string) (Profile, bool, error)
	ListFollowerIDs(ctx context.Context, profileID string) ([]string, error)
}
