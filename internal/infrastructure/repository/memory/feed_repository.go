package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/birdieboard/birdieboard/internal/domain/feed"
)

type deliveryKey struct {
	itemID   int64
	viewerID string
}

type FeedRepository struct {
	mu         sync.RWMutex
	nextID     int64
	items      map[int64]feed.Item
	subjects   map[int64][]feed.Subject
	deliveries map[deliveryKey]time.Time

	rounds   *RoundRepository
	profiles *ProfileRepository
}

func NewFeedRepository(rounds *RoundRepository, profiles *ProfileRepository) *FeedRepository {
	return &FeedRepository{
		nextID:     1,
		items:      make(map[int64]feed.Item),
		subjects:   make(map[int64][]feed.Subject),
		deliveries: make(map[deliveryKey]time.Time),
		rounds:     rounds,
		profiles:   profiles,
	}
}

func (r *FeedRepository) InsertItem(_ context.Context, item *feed.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *FeedRepository) GetItemByGroupKey(_ context.Context, groupKey string) (feed.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.GroupKey != nil && *item.GroupKey == groupKey {
			return item, true, nil
		}
	}
	return feed.Item{}, false, nil
}

func (r *FeedRepository) GetItem(_ context.Context, itemID int64) (feed.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	return item, ok, nil
}

func (r *FeedRepository) UpdateItemVisibility(_ context.Context, itemID int64, v feed.Visibility) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil
	}
	item.Visibility = v
	r.items[itemID] = item
	return nil
}

func (r *FeedRepository) ListItemsByRound(_ context.Context, roundID string) ([]feed.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []feed.Item
	for _, item := range r.items {
		if item.RoundID != nil && *item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FeedRepository) DeleteItemsByRound(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.RoundID == nil || *item.RoundID != roundID {
			continue
		}
		delete(r.items, id)
		delete(r.subjects, id)
		for key := range r.deliveries {
			if key.itemID == id {
				delete(r.deliveries, key)
			}
		}
	}
	return nil
}

func (r *FeedRepository) InsertSubjects(_ context.Context, itemID int64, subjects []feed.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	type subjectKey struct {
		profileID string
		role      feed.SubjectRole
	}
	existing := make(map[subjectKey]struct{}, len(r.subjects[itemID]))
	for _, s := range r.subjects[itemID] {
		existing[subjectKey{profileID: s.ProfileID, role: s.Role}] = struct{}{}
	}
	for _, s := range subjects {
		key := subjectKey{profileID: s.ProfileID, role: s.Role}
		if _, ok := existing[key]; ok {
			continue
		}
		existing[key] = struct{}{}
		s.ItemID = itemID
		r.subjects[itemID] = append(r.subjects[itemID], s)
	}
	return nil
}

func (r *FeedRepository) ListSubjects(_ context.Context, itemID int64) ([]feed.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feed.Subject, len(r.subjects[itemID]))
	copy(out, r.subjects[itemID])
	return out, nil
}

func (r *FeedRepository) UpsertDeliveries(_ context.Context, itemID int64, viewerIDs []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, viewerID := range viewerIDs {
		key := deliveryKey{itemID: itemID, viewerID: viewerID}
		if _, ok := r.deliveries[key]; ok {
			continue
		}
		r.deliveries[key] = at
	}
	return nil
}

func (r *FeedRepository) DeleteDeliveriesByItem(_ context.Context, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.deliveries {
		if key.itemID == itemID {
			delete(r.deliveries, key)
		}
	}
	return nil
}

func (r *FeedRepository) ListPageForViewer(_ context.Context, viewerID string, cursor *feed.Cursor, limit int) ([]feed.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []feed.Item
	for _, item := range r.items {
		if item.Visibility != feed.VisibilityVisible {
			continue
		}
		_, delivered := r.deliveries[deliveryKey{itemID: item.ID, viewerID: viewerID}]
		if !delivered && item.ActorProfileID != viewerID {
			continue
		}
		if cursor != nil && !beforeCursor(item, *cursor) {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].OccurredAt.UnixMicro(), out[j].OccurredAt.UnixMicro()
		if ti != tj {
			return ti > tj
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// beforeCursor reports whether the item sorts strictly after the cursor in
// descending order. Timestamps compare at microsecond precision, matching
// what the cursor encodes.
func beforeCursor(item feed.Item, c feed.Cursor) bool {
	ti, tc := item.OccurredAt.UnixMicro(), c.OccurredAt.UnixMicro()
	if ti != tc {
		return ti < tc
	}
	return item.ID < c.ID
}

func (r *FeedRepository) ListLiveItemsForViewer(_ context.Context, viewerID string, limit int) ([]feed.Item, error) {
	owners := append(r.profiles.FolloweeIDs(viewerID), viewerID)
	liveRounds := r.rounds.LiveRoundsByOwners(owners)

	out := make([]feed.Item, 0, len(liveRounds))
	for _, rnd := range liveRounds {
		roundID := rnd.ID
		occurredAt := rnd.CreatedAt
		if rnd.StartedAt != nil {
			occurredAt = *rnd.StartedAt
		}
		out = append(out, feed.Item{
			Type:           feed.TypeRoundPlayed,
			ActorProfileID: rnd.OwnerProfileID,
			RoundID:        &roundID,
			Audience:       feed.AudienceFollowers,
			Visibility:     feed.VisibilityVisible,
			Payload:        []byte(fmt.Sprintf(`{"round_id":%q,"live":true}`, roundID)),
			OccurredAt:     occurredAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
