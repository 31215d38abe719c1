package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/birdieboard/birdieboard/internal/domain/feed"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

type feedItemDTO struct {
	ID             int64           `json:"id,omitempty"`
	Type           string          `json:"type"`
	ActorProfileID string          `json:"actor_profile_id"`
	RoundID        *string         `json:"round_id,omitempty"`
	Audience       string          `json:"audience"`
	Payload        json.RawMessage `json:"payload"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Live           bool            `json:"live,omitempty"`
}

type feedPageDTO struct {
	Items      []feedItemDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func (h *Handler) ListFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeed")
	defer span.End()

	profileID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	query := r.URL.Query()
	cursor := strings.TrimSpace(query.Get("cursor"))
	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	page, err := h.feedQueryService.ListFeed(ctx, profileID, cursor, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list feed failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feedPageToDTO(page))
}

func feedPageToDTO(page feed.Page) feedPageDTO {
	items := make([]feedItemDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, feedItemToDTO(item))
	}

	return feedPageDTO{
		Items:      items,
		NextCursor: page.NextCursor,
	}
}

func feedItemToDTO(item feed.Item) feedItemDTO {
	return feedItemDTO{
		ID:             item.ID,
		Type:           string(item.Type),
		ActorProfileID: item.ActorProfileID,
		RoundID:        item.RoundID,
		Audience:       string(item.Audience),
		Payload:        json.RawMessage(item.Payload),
		OccurredAt:     item.OccurredAt,
		// Live cards are synthesized per request and carry no stored id.
		Live: item.ID == 0,
	}
}
