package consumers

import (
	"context"
	"encoding/json"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"go.uber.org/zap"
)

const prefetch = 1

type PurchaseEventConsumer interface {
	Consume(ctx context.Context) error
}

type purchaseEventConsumer struct {
	service  service.NotificationService
	consumer mq.Consumer
	queue    string
	logger   *zap.Logger
}

func NewPurchaseEventConsumer(service service.NotificationService, consumer mq.Consumer, cfg *config.Config,
	logger *zap.Logger,
) PurchaseEventConsumer {
	return &purchaseEventConsumer{service: service, consumer: consumer, queue: cfg.Publisher.Queue, logger: logger}
}

func (p *purchaseEventConsumer) Consume(ctx context.Context) error {
	return p.consumer.Consume(ctx, prefetch, p.queue, p.handleMessage)
}

func (p *purchaseEventConsumer) handleMessage(ctx context.Context, d mq.Delivery) error {
	p.logger.Info("received purchase event",
		zap.String("messageID", d.MessageID),
		zap.Bool("redelivered", d.Redelivered))

	var msg service.PurchaseCompletedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		// Malformed payloads are rejected without requeue.
		p.logger.Warn("invalid purchase event", zap.Error(err), zap.ByteString("body", d.Body))
		return err
	}

	return p.service.NotifySeller(ctx, msg)
}
