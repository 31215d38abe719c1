package httpapi

import (
	"net/http"

	"github.com/birdieboard/birdieboard/internal/domain/course"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

type courseDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Country   string `json:"country"`
	HoleCount int    `json:"hole_count"`
}

type teeBoxDTO struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Par    int       `json:"par"`
	Yards  int       `json:"yards"`
	Rating float64   `json:"rating"`
	Slope  int       `json:"slope"`
	Holes  []holeDTO `json:"holes"`
}

type holeDTO struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	Yards       int `json:"yards"`
	StrokeIndex int `json:"stroke_index"`
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCourses")
	defer span.End()

	courses, err := h.courseService.ListCourses(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list courses failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]courseDTO, 0, len(courses))
	for _, c := range courses {
		items = append(items, courseToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeesByCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeesByCourse")
	defer span.End()

	courseID := r.PathValue("courseID")
	tees, err := h.courseService.ListTeesByCourse(ctx, courseID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tees failed", "course_id", courseID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teeBoxDTO, 0, len(tees))
	for _, tee := range tees {
		items = append(items, teeDetailToDTO(tee))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func courseToDTO(c course.Course) courseDTO {
	return courseDTO{
		ID:        c.ID,
		Name:      c.Name,
		City:      c.City,
		Country:   c.Country,
		HoleCount: c.HoleCount,
	}
}

func teeDetailToDTO(tee usecase.TeeDetail) teeBoxDTO {
	holes := make([]holeDTO, 0, len(tee.Holes))
	for _, hole := range tee.Holes {
		holes = append(holes, holeDTO{
			Number:      hole.Number,
			Par:         hole.Par,
			Yards:       hole.Yards,
			StrokeIndex: hole.StrokeIndex,
		})
	}

	return teeBoxDTO{
		ID:     tee.TeeBox.ID,
		Name:   tee.TeeBox.Name,
		Par:    tee.TeeBox.Par,
		Yards:  tee.TeeBox.Yards,
		Rating: tee.TeeBox.Rating,
		Slope:  tee.TeeBox.Slope,
		Holes:  holes,
	}
}
