package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/birdieboard/birdieboard/internal/domain/course"
	qb "github.com/birdieboard/birdieboard/internal/platform/querybuilder"
)

type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	City      string     `db:"city"`
	Country   string     `db:"country"`
	HoleCount int        `db:"hole_count"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teeBoxTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	CoursePublicID string     `db:"course_public_id"`
	Name           string     `db:"name"`
	Par            int        `db:"par"`
	Yards          int        `db:"yards"`
	Rating         float64    `db:"rating"`
	Slope          int        `db:"slope"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type holeTableModel struct {
	ID             int64  `db:"id"`
	PublicID       string `db:"public_id"`
	TeeBoxPublicID string `db:"tee_box_public_id"`
	Number         int    `db:"number"`
	Par            int    `db:"par"`
	Yards          int    `db:"yards"`
	StrokeIndex    int    `db:"stroke_index"`
}

func (r *CourseRepository) List(ctx context.Context) ([]course.Course, error) {
	query, args, err := qb.Select("*").From("courses").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list courses query: %w", err)
	}

	var rows []courseTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	out := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		out = append(out, courseFromRow(row))
	}
	return out, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (course.Course, bool, error) {
	query, args, err := qb.Select("*").From("courses").
		Where(
			qb.Eq("public_id", courseID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return course.Course{}, false, fmt.Errorf("build get course query: %w", err)
	}

	var row courseTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.Course{}, false, nil
		}
		return course.Course{}, false, fmt.Errorf("get course: %w", err)
	}
	return courseFromRow(row), true, nil
}

func (r *CourseRepository) GetTeeBox(ctx context.Context, teeBoxID string) (course.TeeBox, bool, error) {
	query, args, err := qb.Select("*").From("tee_boxes").
		Where(
			qb.Eq("public_id", teeBoxID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return course.TeeBox{}, false, fmt.Errorf("build get tee box query: %w", err)
	}

	var row teeBoxTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return course.TeeBox{}, false, nil
		}
		return course.TeeBox{}, false, fmt.Errorf("get tee box: %w", err)
	}
	return teeBoxFromRow(row), true, nil
}

func (r *CourseRepository) ListTeeBoxesByCourse(ctx context.Context, courseID string) ([]course.TeeBox, error) {
	query, args, err := qb.Select("*").From("tee_boxes").
		Where(
			qb.Eq("course_public_id", courseID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tee boxes query: %w", err)
	}

	var rows []teeBoxTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tee boxes: %w", err)
	}

	out := make([]course.TeeBox, 0, len(rows))
	for _, row := range rows {
		out = append(out, teeBoxFromRow(row))
	}
	return out, nil
}

func (r *CourseRepository) ListHolesByTeeBox(ctx context.Context, teeBoxID string) ([]course.Hole, error) {
	query, args, err := qb.Select("*").From("holes").
		Where(qb.Eq("tee_box_public_id", teeBoxID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list holes query: %w", err)
	}

	var rows []holeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list holes: %w", err)
	}

	out := make([]course.Hole, 0, len(rows))
	for _, row := range rows {
		out = append(out, course.Hole{
			ID:          row.PublicID,
			TeeBoxID:    row.TeeBoxPublicID,
			Number:      row.Number,
			Par:         row.Par,
			Yards:       row.Yards,
			StrokeIndex: row.StrokeIndex,
		})
	}
	return out, nil
}

func courseFromRow(row courseTableModel) course.Course {
	return course.Course{
		ID:        row.PublicID,
		Name:      row.Name,
		City:      row.City,
		Country:   row.Country,
		HoleCount: row.HoleCount,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func teeBoxFromRow(row teeBoxTableModel) course.TeeBox {
	return course.TeeBox{
		ID:       row.PublicID,
		CourseID: row.CoursePublicID,
		Name:     row.Name,
		Par:      row.Par,
		Yards:    row.Yards,
		Rating:   row.Rating,
		Slope:    row.Slope,
	}
}
