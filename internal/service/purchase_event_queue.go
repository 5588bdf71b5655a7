package service

import (
	"context"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"go.uber.org/zap"
)

type PurchaseEventQueueService interface {
	FindEventsToQueue(ctx context.Context, limit int) ([]PurchaseCompletedMessage, error)
	MarkEventAsQueued(ctx context.Context, eventID int64) error
}

type purchaseEventQueue struct {
	events repository.PurchaseEventRepository
	logger *zap.Logger
}

func NewPurchaseEventQueueService(eventRepo repository.PurchaseEventRepository, logger *zap.Logger) PurchaseEventQueueService {
	return &purchaseEventQueue{events: eventRepo, logger: logger}
}

func (q *purchaseEventQueue) FindEventsToQueue(ctx context.Context, limit int) ([]PurchaseCompletedMessage, error) {
	q.logger.Debug("Finding purchase events to publish", zap.Int("batchSize", limit))

	events, err := q.events.FindUnpublished(ctx, limit)
	if err != nil {
		q.logger.Error("Failed to find unpublished purchase events", zap.Error(err))
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	messages := make([]PurchaseCompletedMessage, 0, len(events))
	for _, event := range events {
		messages = append(messages, PurchaseCompletedMessage{
			EventID:        event.ID,
			TransactionRef: event.TransactionRef,
			ListingID:      event.ListingID,
			ListingTitle:   event.ListingTitle,
			BuyerID:        event.BuyerID,
			SellerID:       event.SellerID,
			Quantity:       event.Quantity,
			TotalCost:      event.TotalCost.StringFixed(2),
		})
	}

	return messages, nil
}

func (q *purchaseEventQueue) MarkEventAsQueued(ctx context.Context, eventID int64) error {
	if err := q.events.MarkPublished(ctx, eventID, time.Now().UTC()); err != nil {
		q.logger.Error("Failed to mark purchase event as published",
			zap.Error(err),
			zap.Int64("eventID", eventID))
		return err
	}

	q.logger.Debug("Marked purchase event as published", zap.Int64("eventID", eventID))

	return nil
}
