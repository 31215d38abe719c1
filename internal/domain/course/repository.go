package course

import "context"

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, courseID string) (Course, bool, error)
	GetTeeBox(ctx context.Context, teeBoxID string) (TeeBox, bool, error)
	ListTeeBoxesByCourse(ctx context.Context, courseID string) ([]TeeBox, error)
	ListHolesByTeeBox(ctx context.Context, teeBoxID string) ([]Hole, error)
}
