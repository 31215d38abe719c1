package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/birdieboard/birdieboard/internal/domain/round"
)

type RoundRepository struct {
	mu           sync.RWMutex
	rounds       map[string]round.Round
	participants map[string]round.Participant
}

func NewRoundRepository() *RoundRepository {
	return &RoundRepository{
		rounds:       make(map[string]round.Round),
		participants: make(map[string]round.Participant),
	}
}

func (r *RoundRepository) Insert(_ context.Context, rnd round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rounds[rnd.ID] = rnd
	return nil
}

func (r *RoundRepository) GetByID(_ context.Context, roundID string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rnd, ok := r.rounds[roundID]
	return rnd, ok, nil
}

func (r *RoundRepository) ListByOwner(_ context.Context, ownerProfileID string, limit int) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []round.Round
	for _, rnd := range r.rounds {
		if rnd.OwnerProfileID == ownerProfileID {
			out = append(out, rnd)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RoundRepository) UpdateSelection(_ context.Context, roundID, courseID, teeBoxID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rnd, ok := r.rounds[roundID]
	if !ok || !rnd.Status.Editable() {
		return false, nil
	}
	rnd.CourseID = courseID
	rnd.PendingTeeBoxID = teeBoxID
	rnd.UpdatedAt = time.Now().UTC()
	r.rounds[roundID] = rnd
	return true, nil
}

func (r *RoundRepository) ClaimStart(_ context.Context, roundID string, startedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rnd, ok := r.rounds[roundID]
	if !ok {
		return false, nil
	}
	if rnd.Status == round.StatusStarting || rnd.Status == round.StatusLive || rnd.Status == round.StatusFinished {
		return false, nil
	}
	rnd.Status = round.StatusStarting
	rnd.StartedAt = &startedAt
	rnd.UpdatedAt = time.Now().UTC()
	r.rounds[roundID] = rnd
	return true, nil
}

func (r *RoundRepository) MarkLive(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rnd, ok := r.rounds[roundID]
	if !ok {
		return nil
	}
	rnd.Status = round.StatusLive
	rnd.UpdatedAt = time.Now().UTC()
	r.rounds[roundID] = rnd
	return nil
}

func (r *RoundRepository) ClaimFinish(_ context.Context, roundID string, finishedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rnd, ok := r.rounds[roundID]
	if !ok {
		return false, nil
	}
	if rnd.Status != round.StatusLive && rnd.Status != round.StatusStarting {
		return false, nil
	}
	rnd.Status = round.StatusFinished
	rnd.FinishedAt = &finishedAt
	rnd.UpdatedAt = time.Now().UTC()
	r.rounds[roundID] = rnd
	return true, nil
}

func (r *RoundRepository) Delete(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rounds, roundID)
	return nil
}

// LiveRoundsByOwners returns live rounds owned by any of the given
// profiles. The feed repository uses it to build live cards.
func (r *RoundRepository) LiveRoundsByOwners(ownerProfileIDs []string) []round.Round {
	owners := make(map[string]struct{}, len(ownerProfileIDs))
	for _, id := range ownerProfileIDs {
		owners[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []round.Round
	for _, rnd := range r.rounds {
		if rnd.Status != round.StatusLive {
			continue
		}
		if _, ok := owners[rnd.OwnerProfileID]; ok {
			out = append(out, rnd)
		}
	}
	return out
}

func (r *RoundRepository) InsertParticipant(_ context.Context, p round.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participants[p.ID] = p
	return nil
}

func (r *RoundRepository) GetParticipant(_ context.Context, participantID string) (round.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[participantID]
	return p, ok, nil
}

func (r *RoundRepository) GetParticipantByProfile(_ context.Context, roundID, profileID string) (round.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.participants {
		if p.RoundID == roundID && !p.IsGuest() && *p.ProfileID == profileID {
			return p, true, nil
		}
	}
	return round.Participant{}, false, nil
}

func (r *RoundRepository) ListParticipants(_ context.Context, roundID string) ([]round.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []round.Participant
	for _, p := range r.participants {
		if p.RoundID == roundID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RoundRepository) AssignTeeSnapshot(_ context.Context, participantID, teeSnapshotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return nil
	}
	p.TeeSnapshotID = &teeSnapshotID
	r.participants[participantID] = p
	return nil
}

func (r *RoundRepository) DeleteParticipant(_ context.Context, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.participants, participantID)
	return nil
}

func (r *RoundRepository) DeleteParticipantsByRound(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.participants {
		if p.RoundID == roundID {
			delete(r.participants, id)
		}
	}
	return nil
}
