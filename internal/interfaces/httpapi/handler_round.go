package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/birdieboard/birdieboard/internal/domain/round"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

const defaultRoundListLimit = 20

type createRoundRequest struct {
	CourseID     string `json:"course_id" validate:"omitempty,max=64"`
	TeeBoxID     string `json:"tee_box_id" validate:"omitempty,max=64"`
	ScheduledFor string `json:"scheduled_for" validate:"omitempty"`
	DisplayName  string `json:"display_name" validate:"omitempty,max=100"`
}

type setCourseSelectionRequest struct {
	CourseID string `json:"course_id" validate:"required,max=64"`
	TeeBoxID string `json:"tee_box_id" validate:"required,max=64"`
}

type addParticipantRequest struct {
	ProfileID   string `json:"profile_id" validate:"omitempty,max=64"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	Role        string `json:"role" validate:"required,oneof=scorer player"`
}

type recordScoreRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,max=64"`
	HoleNumber    int    `json:"hole_number" validate:"required,gt=0"`
	Strokes       int    `json:"strokes" validate:"required,gt=0"`
}

type roundDetailDTO struct {
	Round        roundDTO         `json:"round"`
	Participants []participantDTO `json:"participants"`
}

type startRoundResponse struct {
	OK            bool   `json:"ok"`
	RoundID       string `json:"round_id"`
	TeeSnapshotID string `json:"tee_snapshot_id"`
}

type removeParticipantResponse struct {
	OK                   bool   `json:"ok"`
	RemovedParticipantID string `json:"removed_participant_id"`
}

type deleteRoundResponse struct {
	OK      bool   `json:"ok"`
	RoundID string `json:"round_id"`
}

func (h *Handler) CreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRound")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createRoundRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreateRoundInput{
		CourseID:    strings.TrimSpace(req.CourseID),
		TeeBoxID:    strings.TrimSpace(req.TeeBoxID),
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if raw := strings.TrimSpace(req.ScheduledFor); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: scheduled_for must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.ScheduledFor = &at
	}

	created, err := h.roundService.CreateRound(ctx, profileID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create round failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(created))
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	limit := defaultRoundListLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	rounds, err := h.roundService.ListRounds(ctx, profileID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list rounds failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundDTO, 0, len(rounds))
	for _, item := range rounds {
		items = append(items, roundToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRound")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	detail, err := h.roundService.GetRound(ctx, profileID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundDetailToDTO(detail))
}

func (h *Handler) SetCourseSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCourseSelection")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req setCourseSelectionRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.roundService.SetCourseSelection(ctx, profileID, roundID, strings.TrimSpace(req.CourseID), strings.TrimSpace(req.TeeBoxID)); err != nil {
		h.logger.WarnContext(ctx, "set course selection failed", "round_id", roundID, "course_id", req.CourseID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddParticipant")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req addParticipantRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	participant, err := h.roundService.AddParticipant(ctx, profileID, roundID, usecase.AddParticipantInput{
		ProfileID:   strings.TrimSpace(req.ProfileID),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Role:        round.ParticipantRole(req.Role),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add participant failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, participantToDTO(participant))
}

func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveParticipant")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	participantID := strings.TrimSpace(r.PathValue("participantID"))
	if err := h.roundService.RemoveParticipant(ctx, profileID, roundID, participantID); err != nil {
		h.logger.WarnContext(ctx, "remove participant failed", "round_id", roundID, "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, removeParticipantResponse{
		OK:                   true,
		RemovedParticipantID: participantID,
	})
}

func (h *Handler) StartRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartRound")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	result, err := h.roundService.Start(ctx, profileID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "start round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startRoundResponse{
		OK:            true,
		RoundID:       result.RoundID,
		TeeSnapshotID: result.TeeSnapshotID,
	})
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScore")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req recordScoreRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.roundService.RecordScore(ctx, profileID, roundID, usecase.RecordScoreInput{
		ParticipantID: strings.TrimSpace(req.ParticipantID),
		HoleNumber:    req.HoleNumber,
		Strokes:       req.Strokes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record score failed", "round_id", roundID, "participant_id", req.ParticipantID, "hole", req.HoleNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) FinishRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishRound")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	if err := h.roundService.Finish(ctx, profileID, roundID); err != nil {
		h.logger.WarnContext(ctx, "finish round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) DeleteDraftRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDraftRound")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	if err := h.roundService.DeleteDraft(ctx, profileID, roundID); err != nil {
		h.logger.WarnContext(ctx, "delete draft round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteRoundResponse{
		OK:      true,
		RoundID: roundID,
	})
}

func roundDetailToDTO(detail usecase.RoundDetail) roundDetailDTO {
	participants := make([]participantDTO, 0, len(detail.Participants))
	for _, p := range detail.Participants {
		participants = append(participants, participantToDTO(p))
	}

	return roundDetailDTO{
		Round:        roundToDTO(detail.Round),
		Participants: participants,
	}
}
