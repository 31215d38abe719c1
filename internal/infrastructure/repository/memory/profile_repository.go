package memory

import (
	"context"
	"sync"

	"github.com/birdieboard/birdieboard/internal/domain/profile"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
	// followers maps followee id to the set of follower ids.
	followers map[string]map[string]struct{}
}

func NewProfileRepository(profiles []profile.Profile, follows []profile.Follow) *ProfileRepository {
	r := &ProfileRepository{
		profiles:  make(map[string]profile.Profile, len(profiles)),
		followers: make(map[string]map[string]struct{}),
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	for _, f := range follows {
		if r.followers[f.FolloweeID] == nil {
			r.followers[f.FolloweeID] = make(map[string]struct{})
		}
		r.followers[f.FolloweeID][f.FollowerID] = struct{}{}
	}
	return r
}

func (r *ProfileRepository) GetByID(_ context.Context, profileID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[profileID]
	return p, ok, nil
}

func (r *ProfileRepository) ListFollowerIDs(_ context.Context, profileID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.followers[profileID]
	out := make([]string, 0, len(set))
	for followerID := range set {
		out = append(out, followerID)
	}
	return out, nil
}

// FolloweeIDs returns the profiles a follower is subscribed to. The feed
// repository uses it to surface live rounds from followed owners.
func (r *ProfileRepository) FolloweeIDs(followerID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for followeeID, followers := range r.followers {
		if _, ok := followers[followerID]; ok {
			out = append(out, followeeID)
		}
	}
	return out
}

// AddFollow wires a follower edge after construction, for tests that grow
// the graph mid-scenario.
func (r *ProfileRepository) AddFollow(followerID, followeeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.followers[followeeID] == nil {
		r.followers[followeeID] = make(map[string]struct{})
	}
	r.followers[followeeID][followerID] = struct{}{}
}
