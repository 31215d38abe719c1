package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sourcegraph/conc"

	"github.com/birdieboard/birdieboard/internal/domain/feed"
	"github.com/birdieboard/birdieboard/internal/domain/round"
	"github.com/birdieboard/birdieboard/internal/domain/score"
	"github.com/birdieboard/birdieboard/internal/domain/snapshot"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
)

// Hole event kinds, ordered by rarity. A single stroke always classifies
// as a hole in one, even on a par 4 where it would also be an albatross.
const (
	HoleEventHoleInOne = "hole_in_one"
	HoleEventAlbatross = "albatross"
	HoleEventEagle     = "eagle"
)

const AchievementPersonalBest = "personal_best"

// AchievementInput is one participant's finished result.
type AchievementInput struct {
	Round       round.Round
	Participant round.Participant
	Card        score.Card
	HoleCount   int
}

type AchievementCandidate struct {
	Kind    string
	Payload any
}

// AchievementRule derives zero or more achievements from a finished
// result. Rules must be deterministic: replays re-evaluate them and rely
// on group keys to dedupe.
type AchievementRule interface {
	Evaluate(ctx context.Context, in AchievementInput) ([]AchievementCandidate, error)
}

// GeneratedItem couples a stored feed item with its role-tagged subjects;
// fan-out derives the viewer set from their profile ids.
type GeneratedItem struct {
	Item     feed.Item
	Subjects []feed.Subject
}

type candidate struct {
	item     feed.Item
	subjects []feed.Subject
}

// FeedGeneratorService derives feed items from a finished round. Every
// candidate carries a deterministic group key and storage is
// get-by-key-then-insert, so generating the same round twice yields the
// same items.
type FeedGeneratorService struct {
	roundRepo    round.Repository
	snapshotRepo snapshot.Repository
	scoreRepo    score.Repository
	feedRepo     feed.Repository
	rules        []AchievementRule
	logger       *logging.Logger
}

func NewFeedGeneratorService(
	roundRepo round.Repository,
	snapshotRepo snapshot.Repository,
	scoreRepo score.Repository,
	feedRepo feed.Repository,
	rules []AchievementRule,
	logger *logging.Logger,
) *FeedGeneratorService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedGeneratorService{
		roundRepo:    roundRepo,
		snapshotRepo: snapshotRepo,
		scoreRepo:    scoreRepo,
		feedRepo:     feedRepo,
		rules:        rules,
		logger:       logger,
	}
}

func (s *FeedGeneratorService) GenerateForRound(ctx context.Context, roundID string) ([]GeneratedItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedGeneratorService.GenerateForRound")
	defer span.End()

	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if r.Status != round.StatusFinished {
		return nil, fmt.Errorf("%w: round %s is not finished", ErrInvalidInput, roundID)
	}

	participants, err := s.roundRepo.ListParticipants(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	holeScores, err := s.scoreRepo.ListHoleScoresByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list hole scores: %w", err)
	}
	courseSnap, hasSnapshot, err := s.snapshotRepo.GetCourseSnapshotByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("get course snapshot: %w", err)
	}

	parByHole, err := s.loadPars(ctx, participants)
	if err != nil {
		return nil, err
	}

	occurredAt := r.CreatedAt
	if r.FinishedAt != nil {
		occurredAt = *r.FinishedAt
	}
	cards := buildCards(holeScores)

	var (
		mu         sync.Mutex
		candidates []candidate
		genErrs    []error
	)
	collect := func(cands []candidate, err error) {
		mu.Lock()
		defer mu.Unlock()
		candidates = append(candidates, cands...)
		if err != nil {
			genErrs = append(genErrs, err)
		}
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		cands := s.roundPlayedCandidates(r, participants, cards, courseSnap, hasSnapshot, occurredAt)
		collect(cands, nil)
	})
	wg.Go(func() {
		cands := s.holeEventCandidates(r, participants, cards, parByHole, occurredAt)
		collect(cands, nil)
	})
	wg.Go(func() {
		cands, err := s.achievementCandidates(ctx, r, participants, cards, courseSnap.HoleCount, occurredAt)
		collect(cands, err)
	})
	wg.Wait()

	if len(genErrs) > 0 {
		return nil, fmt.Errorf("evaluate achievement rules: %w", genErrs[0])
	}

	stored := make([]GeneratedItem, 0, len(candidates))
	for _, cand := range candidates {
		item, err := s.storeCandidate(ctx, cand)
		if err != nil {
			return nil, err
		}
		stored = append(stored, GeneratedItem{Item: item, Subjects: cand.subjects})
	}
	return stored, nil
}

// storeCandidate is the idempotent write path: an existing item for the
// group key wins over a new insert.
func (s *FeedGeneratorService) storeCandidate(ctx context.Context, cand candidate) (feed.Item, error) {
	groupKey := *cand.item.GroupKey
	existing, exists, err := s.feedRepo.GetItemByGroupKey(ctx, groupKey)
	if err != nil {
		return feed.Item{}, fmt.Errorf("get feed item by group key: %w", err)
	}
	if exists {
		return existing, nil
	}

	item := cand.item
	if err := s.feedRepo.InsertItem(ctx, &item); err != nil {
		return feed.Item{}, fmt.Errorf("insert feed item %s: %w", groupKey, err)
	}
	if len(cand.subjects) > 0 {
		if err := s.feedRepo.InsertSubjects(ctx, item.ID, cand.subjects); err != nil {
			return feed.Item{}, fmt.Errorf("insert feed subjects for %s: %w", groupKey, err)
		}
	}
	return item, nil
}

type roundPlayedPlayer struct {
	ProfileID    string `json:"profile_id"`
	DisplayName  string `json:"display_name"`
	TotalStrokes int    `json:"total_strokes"`
	HolesPlayed  int    `json:"holes_played"`
}

type roundPlayedPayload struct {
	RoundID    string              `json:"round_id"`
	CourseName string              `json:"course_name,omitempty"`
	HoleCount  int                 `json:"hole_count,omitempty"`
	Players    []roundPlayedPlayer `json:"players"`
}

// roundPlayedCandidates emits exactly one item per round, with the owner
// as actor and the member players as subjects.
func (s *FeedGeneratorService) roundPlayedCandidates(
	r round.Round,
	participants []round.Participant,
	cards map[string]score.Card,
	courseSnap snapshot.CourseSnapshot,
	hasSnapshot bool,
	occurredAt time.Time,
) []candidate {
	payload := roundPlayedPayload{RoundID: r.ID}
	if hasSnapshot {
		payload.CourseName = courseSnap.Name
		payload.HoleCount = courseSnap.HoleCount
	}

	var subjects []feed.Subject
	for _, p := range participants {
		if p.IsGuest() || p.Role != round.RolePlayer {
			continue
		}
		subjects = append(subjects, feed.Subject{ProfileID: *p.ProfileID, Role: feed.SubjectRolePlayer})
		card := cards[p.ID]
		payload.Players = append(payload.Players, roundPlayedPlayer{
			ProfileID:    *p.ProfileID,
			DisplayName:  p.DisplayName,
			TotalStrokes: card.TotalStrokes,
			HolesPlayed:  card.HolesPlayed,
		})
	}

	groupKey := fmt.Sprintf("round_played:%s", r.ID)
	return []candidate{{
		item: feed.Item{
			Type:           feed.TypeRoundPlayed,
			ActorProfileID: r.OwnerProfileID,
			RoundID:        &r.ID,
			GroupKey:       &groupKey,
			Audience:       feed.AudienceFollowers,
			Visibility:     feed.VisibilityVisible,
			Payload:        mustPayload(payload),
			OccurredAt:     occurredAt,
		},
		subjects: subjects,
	}}
}

type holeEventPayload struct {
	RoundID    string `json:"round_id"`
	ProfileID  string `json:"profile_id"`
	HoleNumber int    `json:"hole_number"`
	Strokes    int    `json:"strokes"`
	Par        int    `json:"par"`
	Kind       string `json:"kind"`
}

// holeEventCandidates scans every scored hole of every member participant.
// Guests never emit feed items.
func (s *FeedGeneratorService) holeEventCandidates(
	r round.Round,
	participants []round.Participant,
	cards map[string]score.Card,
	parByHole map[string]map[int]int,
	occurredAt time.Time,
) []candidate {
	var out []candidate
	for _, p := range participants {
		if p.IsGuest() || p.TeeSnapshotID == nil {
			continue
		}
		pars := parByHole[*p.TeeSnapshotID]
		for _, hs := range cards[p.ID].Scores {
			par, ok := pars[hs.HoleNumber]
			if !ok {
				continue
			}
			kind, notable := classifyHoleEvent(hs.Strokes, par)
			if !notable {
				continue
			}
			groupKey := fmt.Sprintf("hole_event:%s:%s:h%d:%s", r.ID, *p.ProfileID, hs.HoleNumber, kind)
			out = append(out, candidate{
				item: feed.Item{
					Type:           feed.TypeHoleEvent,
					ActorProfileID: *p.ProfileID,
					RoundID:        &r.ID,
					GroupKey:       &groupKey,
					Audience:       feed.AudienceFollowers,
					Visibility:     feed.VisibilityVisible,
					Payload: mustPayload(holeEventPayload{
						RoundID:    r.ID,
						ProfileID:  *p.ProfileID,
						HoleNumber: hs.HoleNumber,
						Strokes:    hs.Strokes,
						Par:        par,
						Kind:       kind,
					}),
					OccurredAt: occurredAt,
				},
				subjects: []feed.Subject{{ProfileID: *p.ProfileID, Role: feed.SubjectRolePlayer}},
			})
		}
	}
	return out
}

func classifyHoleEvent(strokes, par int) (string, bool) {
	if strokes == 1 {
		return HoleEventHoleInOne, true
	}
	switch par - strokes {
	case 3:
		return HoleEventAlbatross, true
	case 2:
		return HoleEventEagle, true
	}
	return "", false
}

type achievementPayload struct {
	RoundID   string `json:"round_id"`
	ProfileID string `json:"profile_id"`
	Kind      string `json:"kind"`
	Detail    any    `json:"detail,omitempty"`
}

func (s *FeedGeneratorService) achievementCandidates(
	ctx context.Context,
	r round.Round,
	participants []round.Participant,
	cards map[string]score.Card,
	holeCount int,
	occurredAt time.Time,
) ([]candidate, error) {
	var out []candidate
	for _, p := range participants {
		if p.IsGuest() {
			continue
		}
		in := AchievementInput{
			Round:       r,
			Participant: p,
			Card:        cards[p.ID],
			HoleCount:   holeCount,
		}
		for _, rule := range s.rules {
			results, err := rule.Evaluate(ctx, in)
			if err != nil {
				return nil, err
			}
			for _, result := range results {
				groupKey := fmt.Sprintf("achievement:%s:%s:%s", r.ID, *p.ProfileID, result.Kind)
				out = append(out, candidate{
					item: feed.Item{
						Type:           feed.TypeAchievement,
						ActorProfileID: *p.ProfileID,
						RoundID:        &r.ID,
						GroupKey:       &groupKey,
						Audience:       feed.AudienceFollowers,
						Visibility:     feed.VisibilityVisible,
						Payload: mustPayload(achievementPayload{
							RoundID:   r.ID,
							ProfileID: *p.ProfileID,
							Kind:      result.Kind,
							Detail:    result.Payload,
						}),
						OccurredAt: occurredAt,
					},
					subjects: []feed.Subject{{ProfileID: *p.ProfileID, Role: feed.SubjectRolePlayer}},
				})
			}
		}
	}
	return out, nil
}

// loadPars maps tee snapshot id to hole number to par for every tee the
// roster plays from.
func (s *FeedGeneratorService) loadPars(ctx context.Context, participants []round.Participant) (map[string]map[int]int, error) {
	out := make(map[string]map[int]int)
	for _, p := range participants {
		if p.TeeSnapshotID == nil {
			continue
		}
		teeID := *p.TeeSnapshotID
		if _, ok := out[teeID]; ok {
			continue
		}
		holes, err := s.snapshotRepo.ListHoleSnapshots(ctx, teeID)
		if err != nil {
			return nil, fmt.Errorf("list hole snapshots for tee %s: %w", teeID, err)
		}
		pars := make(map[int]int, len(holes))
		for _, h := range holes {
			pars[h.Number] = h.Par
		}
		out[teeID] = pars
	}
	return out, nil
}

func buildCards(holeScores []score.HoleScore) map[string]score.Card {
	cards := make(map[string]score.Card)
	for _, hs := range holeScores {
		card := cards[hs.ParticipantID]
		card.ParticipantID = hs.ParticipantID
		card.TotalStrokes += hs.Strokes
		card.HolesPlayed++
		card.Scores = append(card.Scores, hs)
		cards[hs.ParticipantID] = card
	}
	return cards
}

func mustPayload(v any) []byte {
	raw, err := sonic.Marshal(v)
	if err != nil {
		// Payload structs are plain data; marshal cannot fail at runtime.
		panic(fmt.Sprintf("marshal feed payload: %v", err))
	}
	return raw
}
