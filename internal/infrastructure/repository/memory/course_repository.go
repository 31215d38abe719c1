package memory

import (
	"context"
	"sync"

	"github.com/birdieboard/birdieboard/internal/domain/course"
)

type CourseRepository struct {
	mu      sync.RWMutex
	courses map[string]course.Course
	order   []string
	tees    map[string]course.TeeBox
	holes   map[string][]course.Hole
}

func NewCourseRepository(courses []course.Course, tees []course.TeeBox, holes []course.Hole) *CourseRepository {
	r := &CourseRepository{
		courses: make(map[string]course.Course, len(courses)),
		order:   make([]string, 0, len(courses)),
		tees:    make(map[string]course.TeeBox, len(tees)),
		holes:   make(map[string][]course.Hole),
	}
	for _, c := range courses {
		r.courses[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	for _, t := range tees {
		r.tees[t.ID] = t
	}
	for _, h := range holes {
		r.holes[h.TeeBoxID] = append(r.holes[h.TeeBoxID], h)
	}
	return r
}

func (r *CourseRepository) List(_ context.Context) ([]course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]course.Course, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.courses[id])
	}
	return out, nil
}

func (r *CourseRepository) GetByID(_ context.Context, courseID string) (course.Course, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[courseID]
	return c, ok, nil
}

func (r *CourseRepository) GetTeeBox(_ context.Context, teeBoxID string) (course.TeeBox, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tees[teeBoxID]
	return t, ok, nil
}

func (r *CourseRepository) ListTeeBoxesByCourse(_ context.Context, courseID string) ([]course.TeeBox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []course.TeeBox
	for _, t := range r.tees {
		if t.CourseID == courseID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *CourseRepository) ListHolesByTeeBox(_ context.Context, teeBoxID string) ([]course.Hole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holes := r.holes[teeBoxID]
	out := make([]course.Hole, len(holes))
	copy(out, holes)
	return out, nil
}
