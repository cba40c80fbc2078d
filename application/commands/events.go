package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/domain/core/topology"
)

// publishEvents drains the graph's uncommitted events to the event bus.
// Publish failures are logged and do not fail the triggering command; the
// mutation itself has already been applied.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, graph *topology.Graph) error {
	pending := graph.GetUncommittedEvents()
	if len(pending) == 0 {
		return nil
	}

	if err := publisher.PublishBatch(ctx, pending); err != nil {
		logger.Warn("failed to publish topology events",
			zap.Error(err),
			zap.Int("event_count", len(pending)),
		)
	}
	graph.MarkEventsAsCommitted()
	return nil
}
