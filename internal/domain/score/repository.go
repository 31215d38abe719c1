package score

import "context"

type Repository interface {
	// InsertEvent appends a scoring event and upserts the per-hole read
	// model in the same call.
	InsertEvent(ctx context.Context, e Event) error
	ListEventsByRound(ctx context.Context, roundID string) ([]Event, error)

	ListHoleScores(ctx context.Context, roundID, participantID string) ([]HoleScore, error)
	ListHoleScoresByRound(ctx context.Context, roundID string) ([]HoleScore, error)

	// BestTotalByProfile returns the profile's lowest full-round stroke
	// total across finished rounds, excluding excludeRoundID. The second
	// result is false when the profile has no prior finished rounds.
	BestTotalByProfile(ctx context.Context, profileID, excludeRoundID string) (int, bool, error)

	DeleteByRound(ctx context.Context, roundID string) error
	DeleteByParticipant(ctx context.Context, roundID, participantID string) error
}
