package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/birdieboard/birdieboard/internal/domain/round"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

type Handler struct {
	courseService    *usecase.CourseService
	roundService     *usecase.RoundService
	feedQueryService *usecase.FeedQueryService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	courseService *usecase.CourseService,
	roundService *usecase.RoundService,
	feedQueryService *usecase.FeedQueryService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		courseService:    courseService,
		roundService:     roundService,
		feedQueryService: feedQueryService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) requirePrincipal(ctx context.Context, w http.ResponseWriter) (string, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.ProfileID == "" {
		writeError(ctx, w, fmt.Errorf("%w: missing principal in request context", usecase.ErrUnauthorized))
		return "", false
	}
	return principal.ProfileID, true
}

type roundDTO struct {
	ID              string     `json:"id"`
	OwnerProfileID  string     `json:"owner_profile_id"`
	Status          string     `json:"status"`
	CourseID        string     `json:"course_id,omitempty"`
	PendingTeeBoxID string     `json:"pending_tee_box_id,omitempty"`
	ScheduledFor    *time.Time `json:"scheduled_for,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type participantDTO struct {
	ID            string  `json:"id"`
	RoundID       string  `json:"round_id"`
	ProfileID     *string `json:"profile_id,omitempty"`
	DisplayName   string  `json:"display_name"`
	Role          string  `json:"role"`
	TeeSnapshotID *string `json:"tee_snapshot_id,omitempty"`
	Guest         bool    `json:"guest"`
}

func roundToDTO(r round.Round) roundDTO {
	return roundDTO{
		ID:              r.ID,
		OwnerProfileID:  r.OwnerProfileID,
		Status:          string(r.Status),
		CourseID:        r.CourseID,
		PendingTeeBoxID: r.PendingTeeBoxID,
		ScheduledFor:    r.ScheduledFor,
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func participantToDTO(p round.Participant) participantDTO {
	return participantDTO{
		ID:            p.ID,
		RoundID:       p.RoundID,
		ProfileID:     p.ProfileID,
		DisplayName:   p.DisplayName,
		Role:          string(p.Role),
		TeeSnapshotID: p.TeeSnapshotID,
		Guest:         p.IsGuest(),
	}
}
