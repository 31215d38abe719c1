package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/birdieboard/birdieboard/internal/domain/course"
	coursemock "github.com/birdieboard/birdieboard/internal/mocks/domain/course"
	"github.com/birdieboard/birdieboard/internal/platform/cache"
)

func TestCourseService_ListCourses_CachesUsingMockery(t *testing.T) {
	t.Parallel()

	courseRepo := coursemock.NewRepository(t)
	svc := NewCourseService(courseRepo, cache.NewStore(time.Minute))

	expected := []course.Course{
		{ID: "crs-pine-ridge", Name: "Pine Ridge Golf Club", HoleCount: 18},
		{ID: "crs-harbor-links", Name: "Harbor Links", HoleCount: 9},
	}

	courseRepo.
		On("List", mock.Anything).
		Return(expected, nil).
		Once()

	for i := 0; i < 2; i++ {
		got, err := svc.ListCourses(t.Context())
		if err != nil {
			t.Fatalf("list courses: %v", err)
		}
		if len(got) != len(expected) {
			t.Fatalf("unexpected course count: got=%d want=%d", len(got), len(expected))
		}
		if got[0].ID != expected[0].ID {
			t.Fatalf("unexpected course id: got=%s want=%s", got[0].ID, expected[0].ID)
		}
	}
}

func TestCourseService_ListTeesByCourse_CourseMissingUsingMockery(t *testing.T) {
	t.Parallel()

	courseRepo := coursemock.NewRepository(t)
	svc := NewCourseService(courseRepo, cache.NewStore(time.Minute))

	courseRepo.
		On("GetByID", mock.Anything, "crs-missing").
		Return(course.Course{}, false, nil).
		Once()

	_, err := svc.ListTeesByCourse(t.Context(), "crs-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCourseService_ListTeesByCourse_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	courseRepo := coursemock.NewRepository(t)
	svc := NewCourseService(courseRepo, cache.NewStore(time.Minute))

	boom := errors.New("catalog store down")
	courseRepo.
		On("GetByID", mock.Anything, "crs-pine-ridge").
		Return(course.Course{ID: "crs-pine-ridge"}, true, nil).
		Once()
	courseRepo.
		On("ListTeeBoxesByCourse", mock.Anything, "crs-pine-ridge").
		Return(nil, boom).
		Once()

	_, err := svc.ListTeesByCourse(t.Context(), "crs-pine-ridge")
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
