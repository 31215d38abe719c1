package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/birdieboard/birdieboard/internal/domain/score"
)

type holeKey struct {
	roundID       string
	participantID string
	holeNumber    int
}

type ScoreRepository struct {
	mu     sync.RWMutex
	events []score.Event
	latest map[holeKey]score.HoleScore
	// finishedTotals maps profile id to full-round stroke totals from
	// earlier finished rounds, keyed by round id. Seeded by tests for the
	// personal-best rule.
	finishedTotals map[string]map[string]int
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{
		latest:         make(map[holeKey]score.HoleScore),
		finishedTotals: make(map[string]map[string]int),
	}
}

func (r *ScoreRepository) InsertEvent(_ context.Context, e score.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	r.latest[holeKey{e.RoundID, e.ParticipantID, e.HoleNumber}] = score.HoleScore{
		RoundID:       e.RoundID,
		ParticipantID: e.ParticipantID,
		HoleNumber:    e.HoleNumber,
		Strokes:       e.Strokes,
		UpdatedAt:     e.RecordedAt,
	}
	return nil
}

func (r *ScoreRepository) ListEventsByRound(_ context.Context, roundID string) ([]score.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []score.Event
	for _, e := range r.events {
		if e.RoundID == roundID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *ScoreRepository) ListHoleScores(_ context.Context, roundID, participantID string) ([]score.HoleScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []score.HoleScore
	for key, hs := range r.latest {
		if key.roundID == roundID && key.participantID == participantID {
			out = append(out, hs)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HoleNumber < out[j].HoleNumber })
	return out, nil
}

func (r *ScoreRepository) ListHoleScoresByRound(_ context.Context, roundID string) ([]score.HoleScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []score.HoleScore
	for key, hs := range r.latest {
		if key.roundID == roundID {
			out = append(out, hs)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ParticipantID != out[j].ParticipantID {
			return out[i].ParticipantID < out[j].ParticipantID
		}
		return out[i].HoleNumber < out[j].HoleNumber
	})
	return out, nil
}

func (r *ScoreRepository) BestTotalByProfile(_ context.Context, profileID, excludeRoundID string) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := 0
	found := false
	for roundID, total := range r.finishedTotals[profileID] {
		if roundID == excludeRoundID {
			continue
		}
		if !found || total < best {
			best = total
			found = true
		}
	}
	return best, found, nil
}

func (r *ScoreRepository) DeleteByRound(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, e := range r.events {
		if e.RoundID != roundID {
			kept = append(kept, e)
		}
	}
	r.events = kept
	for key := range r.latest {
		if key.roundID == roundID {
			delete(r.latest, key)
		}
	}
	return nil
}

func (r *ScoreRepository) DeleteByParticipant(_ context.Context, roundID, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, e := range r.events {
		if e.RoundID != roundID || e.ParticipantID != participantID {
			kept = append(kept, e)
		}
	}
	r.events = kept
	for key := range r.latest {
		if key.roundID == roundID && key.participantID == participantID {
			delete(r.latest, key)
		}
	}
	return nil
}

// SeedFinishedTotal records a historical full-round total for the
// personal-best rule.
func (r *ScoreRepository) SeedFinishedTotal(profileID, roundID string, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finishedTotals[profileID] == nil {
		r.finishedTotals[profileID] = make(map[string]int)
	}
	r.finishedTotals[profileID][roundID] = total
}
