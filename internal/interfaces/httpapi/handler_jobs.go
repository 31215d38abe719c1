package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/birdieboard/birdieboard/internal/usecase"
)

type feedBackfillJobRequest struct {
	RoundID string `json:"round_id" validate:"required,max=64"`
}

// RunFeedBackfillJob re-runs feed generation and fan-out for a finished
// round. The job queue calls it after a finish whose inline publish failed;
// generation is idempotent so repeated deliveries of the same job are safe.
func (h *Handler) RunFeedBackfillJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFeedBackfillJob")
	defer span.End()

	var req feedBackfillJobRequest
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

	roundID := strings.TrimSpace(req.RoundID)
	if err := h.roundService.RunFeedBackfill(ctx, roundID); err != nil {
		h.logger.WarnContext(ctx, "feed backfill job failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "feed backfill job completed", "round_id", roundID)
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}
