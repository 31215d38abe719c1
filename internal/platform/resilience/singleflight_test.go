package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, _ := g.Do("viewer-feed", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "page", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if value != "page" {
				t.Errorf("unexpected value: %v", value)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_ErrorsShared(t *testing.T) {
	var g SingleFlight
	boom := errors.New("lookup failed")

	_, err, shared := g.Do("bad-key", func() (any, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if shared {
		t.Fatalf("single caller must not report a shared result")
	}

	// The key is released once the call resolves, so a retry runs again.
	var ran bool
	_, err, _ = g.Do("bad-key", func() (any, error) {
		ran = true
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if !ran {
		t.Fatalf("expected retry to execute the function")
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	a, err, _ := g.Do("key-a", func() (any, error) { return "a", nil })
	if err != nil || a != "a" {
		t.Fatalf("key-a: %v %v", a, err)
	}
	b, err, _ := g.Do("key-b", func() (any, error) { return "b", nil })
	if err != nil || b != "b" {
		t.Fatalf("key-b: %v %v", b, err)
	}
}
