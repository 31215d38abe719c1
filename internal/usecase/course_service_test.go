package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/birdieboard/birdieboard/internal/infrastructure/repository/memory"
	"github.com/birdieboard/birdieboard/internal/platform/cache"
)

func TestCourseService_ListCourses(t *testing.T) {
	repo := memory.NewCourseRepository(memory.SeedCourses(), memory.SeedTeeBoxes(), memory.SeedHoles())
	svc := NewCourseService(repo, cache.NewStore(time.Minute))

	courses, err := svc.ListCourses(t.Context())
	if err != nil {
		t.Fatalf("list courses: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 seeded courses, got %d", len(courses))
	}
	if courses[0].ID != memory.CourseIDPineRidge {
		t.Fatalf("unexpected catalog order: %s first", courses[0].ID)
	}
}

func TestCourseService_ListTeesByCourse(t *testing.T) {
	repo := memory.NewCourseRepository(memory.SeedCourses(), memory.SeedTeeBoxes(), memory.SeedHoles())
	svc := NewCourseService(repo, cache.NewStore(time.Minute))

	tees, err := svc.ListTeesByCourse(t.Context(), memory.CourseIDHarborLinks)
	if err != nil {
		t.Fatalf("list tees: %v", err)
	}
	if len(tees) != 1 {
		t.Fatalf("expected one tee, got %d", len(tees))
	}
	if tees[0].TeeBox.ID != memory.TeeIDHarborLinksGold {
		t.Fatalf("unexpected tee %s", tees[0].TeeBox.ID)
	}
	if len(tees[0].Holes) != 9 {
		t.Fatalf("expected 9 holes, got %d", len(tees[0].Holes))
	}
}

func TestCourseService_ListTeesByCourse_Missing(t *testing.T) {
	repo := memory.NewCourseRepository(memory.SeedCourses(), memory.SeedTeeBoxes(), memory.SeedHoles())
	svc := NewCourseService(repo, cache.NewStore(time.Minute))

	if _, err := svc.ListTeesByCourse(t.Context(), "crs-unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ListTeesByCourse(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
