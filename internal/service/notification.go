package service

import (
	"context"
	"fmt"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/notifier"
	"go.uber.org/zap"
)

const saleNotificationTitle = "Your listing was purchased"

type NotificationService interface {
	NotifySeller(ctx context.Context, msg PurchaseCompletedMessage) error
}

type notification struct {
	notifier   notifier.Notifier
	enabled    bool
	maxRetry   int
	retryDelay time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewNotificationService(n notifier.Notifier, cfg *config.Config, metrics *metrics.Metrics,
	logger *zap.Logger) NotificationService {
	maxRetry := cfg.Notifier.MaxRetries
	if maxRetry < 1 {
		maxRetry = 1
	}

	return &notification{
		notifier:   n,
		enabled:    cfg.Notifier.Enabled,
		maxRetry:   maxRetry,
		retryDelay: cfg.Notifier.RetryDelay,
		metrics:    metrics,
		logger:     logger,
	}
}

// NotifySeller tells the seller about a completed sale. Permanent rejections
// are dropped; anything else is returned as temporary so the delivery is
// requeued.
func (n *notification) NotifySeller(ctx context.Context, msg PurchaseCompletedMessage) error {
	if !n.enabled {
		n.logger.Debug("Notifier disabled, skipping seller notification",
			zap.String("transactionRef", msg.TransactionRef))
		n.metrics.RecordNotification("skipped")
		return nil
	}

	request := notifier.NotificationRequest{
		RecipientID:    msg.SellerID,
		Title:          saleNotificationTitle,
		Body:           fmt.Sprintf("%d x %s sold for $%s", msg.Quantity, msg.ListingTitle, msg.TotalCost),
		IdempotencyKey: msg.TransactionRef,
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxRetry; attempt++ {
		resp, err := n.notifier.Send(ctx, request)
		if err == nil {
			n.logger.Info("Seller notified",
				zap.String("transactionRef", msg.TransactionRef),
				zap.String("sellerID", msg.SellerID),
				zap.Int("attempt", attempt),
				zap.String("notificationID", resp.Result.NotificationID))
			n.metrics.RecordNotification("sent")
			return nil
		}

		if notifier.IsPermanent(err) {
			n.logger.Warn("Non-retryable error encountered, dropping notification",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.String("transactionRef", msg.TransactionRef),
				zap.String("sellerID", msg.SellerID))
			n.metrics.RecordNotification("dropped")
			return nil
		}

		n.logger.Warn("Notification attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("transactionRef", msg.TransactionRef))
		lastErr = err

		if attempt < n.maxRetry && !n.wait(ctx) {
			lastErr = ctx.Err()
			break
		}
	}

	n.logger.Error("Notifier unavailable after all retries",
		zap.Error(lastErr),
		zap.Int("maxRetries", n.maxRetry),
		zap.String("transactionRef", msg.TransactionRef))
	n.metrics.RecordNotification("failed")

	return mq.Temporary(lastErr)
}

func (n *notification) wait(ctx context.Context) bool {
	if n.retryDelay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(n.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
