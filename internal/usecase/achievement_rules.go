package usecase

import (
	"context"
	"fmt"

	"github.com/birdieboard/birdieboard/internal/domain/score"
)

// PersonalBestRule flags a full round whose stroke total beats the
// profile's best previous finished round. Partial cards and first-ever
// rounds never qualify.
type PersonalBestRule struct {
	scoreRepo score.Repository
}

func NewPersonalBestRule(scoreRepo score.Repository) *PersonalBestRule {
	return &PersonalBestRule{scoreRepo: scoreRepo}
}

type personalBestDetail struct {
	TotalStrokes int `json:"total_strokes"`
	PreviousBest int `json:"previous_best"`
}

func (r *PersonalBestRule) Evaluate(ctx context.Context, in AchievementInput) ([]AchievementCandidate, error) {
	if in.HoleCount == 0 || in.Card.HolesPlayed < in.HoleCount {
		return nil, nil
	}
	if in.Participant.ProfileID == nil {
		return nil, nil
	}

	best, hasPrior, err := r.scoreRepo.BestTotalByProfile(ctx, *in.Participant.ProfileID, in.Round.ID)
	if err != nil {
		return nil, fmt.Errorf("best total by profile: %w", err)
	}
	if !hasPrior || in.Card.TotalStrokes >= best {
		return nil, nil
	}

	return []AchievementCandidate{{
		Kind: AchievementPersonalBest,
		Payload: personalBestDetail{
			TotalStrokes: in.Card.TotalStrokes,
			PreviousBest: best,
		},
	}}, nil
}
