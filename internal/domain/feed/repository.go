package feed

import (
	"context"
	"time"
)

// Repository persists feed items and the per-viewer delivery index.
type Repository interface {
	// InsertItem stores a new item and fills in its assigned ID.
	InsertItem(ctx context.Context, item *Item) error
	// GetItemByGroupKey finds the surviving item for a dedupe key,
	// regardless of visibility.
	GetItemByGroupKey(ctx context.Context, groupKey string) (Item, bool, error)
	GetItem(ctx context.Context, itemID int64) (Item, bool, error)
	UpdateItemVisibility(ctx context.Context, itemID int64, v Visibility) error
	// ListItemsByRound returns a round's generated items, used by draft
	// deletion and by tests.
	ListItemsByRound(ctx context.Context, roundID string) ([]Item, error)
	DeleteItemsByRound(ctx context.Context, roundID string) error

	// InsertSubjects writes the item's subject rows, skipping
	// (profile, role) pairs that already exist.
	InsertSubjects(ctx context.Context, itemID int64, subjects []Subject) error
	ListSubjects(ctx context.Context, itemID int64) ([]Subject, error)

	// UpsertDeliveries writes (item, viewer) rows, silently skipping pairs
	// that already exist.
	UpsertDeliveries(ctx context.Context, itemID int64, viewerIDs []string, at time.Time) error
	DeleteDeliveriesByItem(ctx context.Context, itemID int64) error

	// ListPageForViewer reads one page of the viewer's delivered feed in
	// (occurred_at, id) descending order. A nil cursor means the newest
	// page. Hidden and removed items are excluded.
	ListPageForViewer(ctx context.Context, viewerID string, cursor *Cursor, limit int) ([]Item, error)
	// ListLiveItemsForViewer synthesizes round cards (ID zero, never
	// stored) for currently live rounds owned by the viewer or by profiles
	// the viewer follows. They merge into the first page only.
	ListLiveItemsForViewer(ctx context.Context, viewerID string, limit int) ([]Item, error)
}
