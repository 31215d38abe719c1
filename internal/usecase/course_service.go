package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birdieboard/birdieboard/internal/domain/course"
	"github.com/birdieboard/birdieboard/internal/platform/cache"
)

// CourseService serves catalog reads. The catalog changes rarely, so list
// and tee lookups go through the TTL cache.
type CourseService struct {
	courseRepo course.Repository
	cache      *cache.Store
}

func NewCourseService(courseRepo course.Repository, store *cache.Store) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		cache:      store,
	}
}

func (s *CourseService) ListCourses(ctx context.Context) ([]course.Course, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CourseService.ListCourses")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, "courses:list", func(ctx context.Context) (any, error) {
		courses, loadErr := s.courseRepo.List(ctx)
		if loadErr != nil {
			return nil, fmt.Errorf("list courses: %w", loadErr)
		}
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]course.Course), nil
}

// TeeDetail is a tee box with its hole layout.
type TeeDetail struct {
	TeeBox course.TeeBox
	Holes  []course.Hole
}

func (s *CourseService) ListTeesByCourse(ctx context.Context, courseID string) ([]TeeDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CourseService.ListTeesByCourse")
	defer span.End()

	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, fmt.Errorf("%w: course id is required", ErrInvalidInput)
	}

	value, err := s.cache.GetOrLoad(ctx, "courses:tees:"+courseID, func(ctx context.Context) (any, error) {
		_, exists, loadErr := s.courseRepo.GetByID(ctx, courseID)
		if loadErr != nil {
			return nil, fmt.Errorf("get course: %w", loadErr)
		}
		if !exists {
			return nil, fmt.Errorf("%w: course=%s", ErrNotFound, courseID)
		}

		teeBoxes, loadErr := s.courseRepo.ListTeeBoxesByCourse(ctx, courseID)
		if loadErr != nil {
			return nil, fmt.Errorf("list tee boxes: %w", loadErr)
		}

		details := make([]TeeDetail, 0, len(teeBoxes))
		for _, teeBox := range teeBoxes {
			holes, loadErr := s.courseRepo.ListHolesByTeeBox(ctx, teeBox.ID)
			if loadErr != nil {
				return nil, fmt.Errorf("list holes for tee box %s: %w", teeBox.ID, loadErr)
			}
			details = append(details, TeeDetail{TeeBox: teeBox, Holes: holes})
		}
		return details, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]TeeDetail), nil
}
