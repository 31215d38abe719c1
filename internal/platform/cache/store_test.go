package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "courses:all"); ok {
		t.Fatalf("expected a miss on a cold store")
	}

	store.Set(ctx, "courses:all", []string{"crs-pine-ridge"})
	value, ok := store.Get(ctx, "courses:all")
	if !ok {
		t.Fatalf("expected a hit after set")
	}
	if got := value.([]string); len(got) != 1 || got[0] != "crs-pine-ridge" {
		t.Fatalf("unexpected value: %v", got)
	}

	store.Delete(ctx, "courses:all")
	if _, ok := store.Get(ctx, "courses:all"); ok {
		t.Fatalf("expected a miss after delete")
	}
}

func TestStore_EmptyKeyIgnored(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	store.Set(ctx, "", "value")
	if _, ok := store.Get(ctx, ""); ok {
		t.Fatalf("empty keys must never be stored")
	}
}

func TestStore_TTLExpires(t *testing.T) {
	ctx := t.Context()
	store := NewStore(5 * time.Millisecond)

	store.Set(ctx, "tees:crs-pine-ridge", "cached")
	if _, ok := store.Get(ctx, "tees:crs-pine-ridge"); !ok {
		t.Fatalf("expected a hit before expiry")
	}

	time.Sleep(10 * time.Millisecond)
	if _, ok := store.Get(ctx, "tees:crs-pine-ridge"); ok {
		t.Fatalf("expected a miss after expiry")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := t.Context()
	store := NewStore(0)

	store.Set(ctx, "holes:tee-1", "cached")
	time.Sleep(2 * time.Millisecond)
	if _, ok := store.Get(ctx, "holes:tee-1"); !ok {
		t.Fatalf("entries must not expire when the ttl is disabled")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	store.Set(ctx, "tees:crs-pine-ridge", "a")
	store.Set(ctx, "tees:crs-harbor-links", "b")
	store.Set(ctx, "courses:all", "c")

	store.DeletePrefix(ctx, "tees:")

	if _, ok := store.Get(ctx, "tees:crs-pine-ridge"); ok {
		t.Fatalf("expected prefix match to be deleted")
	}
	if _, ok := store.Get(ctx, "tees:crs-harbor-links"); ok {
		t.Fatalf("expected prefix match to be deleted")
	}
	if _, ok := store.Get(ctx, "courses:all"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestStore_GetOrLoadCachesResult(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	var calls atomic.Int64
	loader := func(_ context.Context) (any, error) {
		calls.Add(1)
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "courses:all", loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if value != "loaded" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	boom := errors.New("store down")
	var calls atomic.Int64
	failing := func(_ context.Context) (any, error) {
		calls.Add(1)
		return nil, boom
	}

	if _, err := store.GetOrLoad(ctx, "courses:all", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, err := store.GetOrLoad(ctx, "courses:all", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error on retry, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("failed loads must not be cached, got %d calls", got)
	}
}

func TestStore_GetOrLoadCollapsesConcurrentMisses(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	var calls atomic.Int64
	release := make(chan struct{})
	loader := func(_ context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "loaded", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.GetOrLoad(ctx, "courses:all", loader)
		}(i)
	}

	time.Sleep(5 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if results[i] != "loaded" {
			t.Fatalf("worker %d got %v", i, results[i])
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one collapsed load, got %d", got)
	}
}

func TestStore_GetOrLoadRequiresLoader(t *testing.T) {
	store := NewStore(time.Minute)
	if _, err := store.GetOrLoad(t.Context(), "key", nil); err == nil {
		t.Fatalf("expected an error for a nil loader")
	}
}
