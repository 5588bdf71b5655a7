package publishers

import (
	"context"
	"encoding/json"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"go.uber.org/zap"
)

type PurchaseEventPublisher interface {
	Publish(ctx context.Context) error
}

type purchaseEventPublisher struct {
	service   service.PurchaseEventQueueService
	publisher mq.Publisher
	queue     string
	batchSize int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPurchaseEventPublisher(service service.PurchaseEventQueueService, publisher mq.Publisher, cfg *config.Config,
	metrics *metrics.Metrics, logger *zap.Logger,
) PurchaseEventPublisher {
	return &purchaseEventPublisher{
		service:   service,
		publisher: publisher,
		queue:     cfg.Publisher.Queue,
		batchSize: cfg.Publisher.BatchSize,
		metrics:   metrics,
		logger:    logger,
	}
}

// Publish relays one batch of unpublished purchase events. A row is marked
// published only after the broker accepted it, so a crash in between
// publishes it again on the next tick.
func (p *purchaseEventPublisher) Publish(ctx context.Context) error {
	events, err := p.service.FindEventsToQueue(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	p.logger.Info("Publishing purchase events", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to encode purchase event", zap.Error(err), zap.Int64("eventID", event.EventID))
			p.metrics.RecordPurchaseEventQueued("failed")
			continue
		}

		msg := mq.Message{ID: event.TransactionRef, RoutingKey: p.queue, Body: body}
		if err := p.publisher.Publish(ctx, msg); err != nil {
			p.logger.Error("Failed to publish purchase event",
				zap.Error(err),
				zap.Int64("eventID", event.EventID),
				zap.String("transactionRef", event.TransactionRef))
			p.metrics.RecordPurchaseEventQueued("failed")
			continue
		}

		if err := p.service.MarkEventAsQueued(ctx, event.EventID); err != nil {
			p.metrics.RecordPurchaseEventQueued("unmarked")
			continue
		}

		p.metrics.RecordPurchaseEventQueued("published")
		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published purchase events",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
