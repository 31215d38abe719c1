package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/birdieboard/birdieboard/internal/domain/feed"
)

const (
	defaultFeedPageSize = 20
	maxFeedPageSize     = 50
)

// FeedQueryService reads a viewer's feed through the delivery index with
// opaque cursor pagination.
type FeedQueryService struct {
	feedRepo feed.Repository
}

func NewFeedQueryService(feedRepo feed.Repository) *FeedQueryService {
	return &FeedQueryService{feedRepo: feedRepo}
}

// ListFeed returns one page in (occurred_at, id) descending order. The
// first page additionally surfaces live-round cards from followed rounds;
// those never affect the cursor, which always resumes from the delivered
// index.
func (s *FeedQueryService) ListFeed(ctx context.Context, viewerID, cursorToken string, limit int) (feed.Page, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedQueryService.ListFeed")
	defer span.End()

	if viewerID == "" {
		return feed.Page{}, fmt.Errorf("%w: viewer profile id is required", ErrUnauthorized)
	}
	if limit <= 0 {
		limit = defaultFeedPageSize
	}
	if limit > maxFeedPageSize {
		limit = maxFeedPageSize
	}

	var cursor *feed.Cursor
	if cursorToken != "" {
		decoded, err := feed.DecodeCursor(cursorToken)
		if err != nil {
			if errors.Is(err, feed.ErrInvalidCursor) {
				return feed.Page{}, fmt.Errorf("%w: malformed cursor", ErrInvalidInput)
			}
			return feed.Page{}, fmt.Errorf("decode cursor: %w", err)
		}
		cursor = &decoded
	}

	// Fetch one extra row to learn whether a next page exists.
	items, err := s.feedRepo.ListPageForViewer(ctx, viewerID, cursor, limit+1)
	if err != nil {
		return feed.Page{}, fmt.Errorf("list feed page: %w", err)
	}

	var nextCursor string
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		nextCursor = feed.EncodeCursor(feed.Cursor{OccurredAt: last.OccurredAt, ID: last.ID})
	}

	if cursor == nil {
		merged, err := s.mergeLiveItems(ctx, viewerID, items)
		if err != nil {
			return feed.Page{}, err
		}
		items = merged
	}

	return feed.Page{Items: items, NextCursor: nextCursor}, nil
}

// mergeLiveItems prepends live-round cards to the first page, skipping
// rounds the delivered page already represents and anything the viewer has
// already been handed as a regular item.
func (s *FeedQueryService) mergeLiveItems(ctx context.Context, viewerID string, page []feed.Item) ([]feed.Item, error) {
	liveItems, err := s.feedRepo.ListLiveItemsForViewer(ctx, viewerID, defaultFeedPageSize)
	if err != nil {
		return nil, fmt.Errorf("list live feed items: %w", err)
	}
	if len(liveItems) == 0 {
		return page, nil
	}

	seenRounds := make(map[string]struct{}, len(page))
	seenItems := make(map[int64]struct{}, len(page))
	for _, item := range page {
		seenItems[item.ID] = struct{}{}
		if item.RoundID != nil {
			seenRounds[*item.RoundID] = struct{}{}
		}
	}

	merged := make([]feed.Item, 0, len(liveItems)+len(page))
	for _, item := range liveItems {
		if _, dup := seenItems[item.ID]; dup {
			continue
		}
		if item.RoundID != nil {
			if _, represented := seenRounds[*item.RoundID]; represented {
				continue
			}
		}
		merged = append(merged, item)
	}
	return append(merged, page...), nil
}
