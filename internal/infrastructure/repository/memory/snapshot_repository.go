package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/birdieboard/birdieboard/internal/domain/snapshot"
)

type SnapshotRepository struct {
	mu      sync.RWMutex
	courses map[string]snapshot.CourseSnapshot
	tees    map[string]snapshot.TeeSnapshot
	holes   map[string][]snapshot.HoleSnapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		courses: make(map[string]snapshot.CourseSnapshot),
		tees:    make(map[string]snapshot.TeeSnapshot),
		holes:   make(map[string][]snapshot.HoleSnapshot),
	}
}

func (r *SnapshotRepository) GetCourseSnapshotByRound(_ context.Context, roundID string) (snapshot.CourseSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cs := range r.courses {
		if cs.RoundID == roundID {
			return cs, true, nil
		}
	}
	return snapshot.CourseSnapshot{}, false, nil
}

func (r *SnapshotRepository) EnsureCourseSnapshot(_ context.Context, cs snapshot.CourseSnapshot) (snapshot.CourseSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.courses {
		if existing.RoundID == cs.RoundID && existing.CourseID == cs.CourseID {
			return existing, nil
		}
	}
	r.courses[cs.ID] = cs
	return cs, nil
}

func (r *SnapshotRepository) GetTeeSnapshot(_ context.Context, teeSnapshotID string) (snapshot.TeeSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts, ok := r.tees[teeSnapshotID]
	return ts, ok, nil
}

func (r *SnapshotRepository) GetTeeSnapshotByNaturalKey(_ context.Context, courseSnapshotID, teeBoxID string) (snapshot.TeeSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ts := range r.tees {
		if ts.CourseSnapshotID == courseSnapshotID && ts.TeeBoxID == teeBoxID {
			return ts, true, nil
		}
	}
	return snapshot.TeeSnapshot{}, false, nil
}

func (r *SnapshotRepository) EnsureTeeSnapshot(_ context.Context, ts snapshot.TeeSnapshot) (snapshot.TeeSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tees {
		if existing.CourseSnapshotID == ts.CourseSnapshotID && existing.TeeBoxID == ts.TeeBoxID {
			return existing, nil
		}
	}
	r.tees[ts.ID] = ts
	return ts, nil
}

func (r *SnapshotRepository) ListTeeSnapshotsByCourseSnapshot(_ context.Context, courseSnapshotID string) ([]snapshot.TeeSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []snapshot.TeeSnapshot
	for _, ts := range r.tees {
		if ts.CourseSnapshotID == courseSnapshotID {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SnapshotRepository) EnsureHoleSnapshots(_ context.Context, teeSnapshotID string, holes []snapshot.HoleSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]struct{}, len(r.holes[teeSnapshotID]))
	for _, h := range r.holes[teeSnapshotID] {
		existing[h.HoleID] = struct{}{}
	}
	for _, h := range holes {
		if _, ok := existing[h.HoleID]; ok {
			continue
		}
		h.TeeSnapshotID = teeSnapshotID
		r.holes[teeSnapshotID] = append(r.holes[teeSnapshotID], h)
	}
	return nil
}

func (r *SnapshotRepository) ListHoleSnapshots(_ context.Context, teeSnapshotID string) ([]snapshot.HoleSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holes := r.holes[teeSnapshotID]
	out := make([]snapshot.HoleSnapshot, len(holes))
	copy(out, holes)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *SnapshotRepository) DeleteByRound(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for courseSnapshotID, cs := range r.courses {
		if cs.RoundID != roundID {
			continue
		}
		for teeSnapshotID, ts := range r.tees {
			if ts.CourseSnapshotID != courseSnapshotID {
				continue
			}
			delete(r.holes, teeSnapshotID)
			delete(r.tees, teeSnapshotID)
		}
		delete(r.courses, courseSnapshotID)
	}
	return nil
}

// CountByRound reports how many snapshot rows of each kind a round owns.
// Test helper for claim and cascade scenarios.
func (r *SnapshotRepository) CountByRound(roundID string) (courses, tees, holes int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for courseSnapshotID, cs := range r.courses {
		if cs.RoundID != roundID {
			continue
		}
		courses++
		for teeSnapshotID, ts := range r.tees {
			if ts.CourseSnapshotID != courseSnapshotID {
				continue
			}
			tees++
			holes += len(r.holes[teeSnapshotID])
		}
	}
	return courses, tees, holes
}
