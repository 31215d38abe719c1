package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/birdieboard/birdieboard/internal/domain/feed"
	"github.com/birdieboard/birdieboard/internal/domain/profile"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
)

const (
	defaultFanoutWorkers   = 8
	fanoutDeliveryChunkLen = 200
)

// FanoutService resolves a stored feed item's viewer set and writes the
// (item, viewer) delivery index. Deliveries are idempotent upserts, so
// re-running fan-out for an item is safe.
type FanoutService struct {
	feedRepo    feed.Repository
	profileRepo profile.Repository
	workers     int
	now         func() time.Time
	logger      *logging.Logger
}

func NewFanoutService(feedRepo feed.Repository, profileRepo profile.Repository, workers int, logger *logging.Logger) *FanoutService {
	if workers <= 0 {
		workers = defaultFanoutWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FanoutService{
		feedRepo:    feedRepo,
		profileRepo: profileRepo,
		workers:     workers,
		now:         time.Now,
		logger:      logger,
	}
}

// Deliver writes the item's delivery rows. Subjects always see themselves;
// the rest of the viewer set depends on the audience class.
func (s *FanoutService) Deliver(ctx context.Context, item feed.Item, subjectIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FanoutService.Deliver")
	defer span.End()

	if item.ID == 0 {
		return fmt.Errorf("%w: feed item id is required", ErrInvalidInput)
	}

	viewers, err := s.resolveViewers(ctx, item, subjectIDs)
	if err != nil {
		return err
	}
	if len(viewers) == 0 {
		return nil
	}

	chunks := chunkStrings(viewers, fanoutDeliveryChunkLen)
	if len(chunks) == 1 {
		return s.upsertChunk(ctx, item.ID, chunks[0])
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create fanout pool: %w", err)
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, chunk := range chunks {
		chunk := chunk
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if upsertErr := s.upsertChunk(ctx, item.ID, chunk); upsertErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = upsertErr
				}
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit fanout chunk: %w", err)
		}
	}
	workers.Wait()

	return firstErr
}

func (s *FanoutService) upsertChunk(ctx context.Context, itemID int64, viewerIDs []string) error {
	if err := s.feedRepo.UpsertDeliveries(ctx, itemID, viewerIDs, s.now().UTC()); err != nil {
		return fmt.Errorf("upsert deliveries for item %d: %w", itemID, err)
	}
	return nil
}

// resolveViewers builds the deduplicated, sorted viewer set: the actor,
// the subjects, and whatever the audience class adds on top.
func (s *FanoutService) resolveViewers(ctx context.Context, item feed.Item, subjectIDs []string) ([]string, error) {
	seen := make(map[string]struct{})
	add := func(profileID string) {
		if profileID != "" {
			seen[profileID] = struct{}{}
		}
	}

	add(item.ActorProfileID)
	for _, subjectID := range subjectIDs {
		add(subjectID)
	}

	// One case per audience class; new classes get their own arm.
	switch item.Audience {
	case feed.AudienceFollowers:
		sources := append([]string{item.ActorProfileID}, subjectIDs...)
		for _, sourceID := range sources {
			if sourceID == "" {
				continue
			}
			followerIDs, err := s.profileRepo.ListFollowerIDs(ctx, sourceID)
			if err != nil {
				return nil, fmt.Errorf("list followers of %s: %w", sourceID, err)
			}
			for _, followerID := range followerIDs {
				add(followerID)
			}
		}
	case feed.AudiencePrivate:
		// Actor and subjects only, already collected.
	default:
		return nil, fmt.Errorf("%w: unknown audience %q", ErrInvalidInput, item.Audience)
	}

	viewers := make([]string, 0, len(seen))
	for profileID := range seen {
		viewers = append(viewers, profileID)
	}
	sort.Strings(viewers)
	return viewers, nil
}

func chunkStrings(values []string, size int) [][]string {
	if size <= 0 || len(values) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}
