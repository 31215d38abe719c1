package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; late arrivals block and receive the leader's result. The
// third return value reports whether the result was shared.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightCall
}

type flightCall struct {
	done sync.WaitGroup
	val  any
	err  error
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightCall)
	}

	if leader, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		leader.done.Wait()
		return leader.val, leader.err, true
	}

	fc := &flightCall{}
	fc.done.Add(1)
	g.inflight[key] = fc
	g.mu.Unlock()

	fc.val, fc.err = fn()
	fc.done.Done()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return fc.val, fc.err, false
}
