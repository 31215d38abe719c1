package jobqueue

import (
	"context"

	"github.com/birdieboard/birdieboard/internal/platform/logging"
)

// NopPublisher satisfies the backfill enqueuer when no queue is configured.
// It logs the dropped job so a failed inline publish is still visible.
type NopPublisher struct {
	logger *logging.Logger
}

func NewNopPublisher(logger *logging.Logger) *NopPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) EnqueueFeedBackfill(ctx context.Context, roundID string) error {
	p.logger.WarnContext(ctx, "job queue disabled, feed backfill dropped", "round_id", roundID)
	return nil
}
