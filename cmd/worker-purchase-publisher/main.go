package main

import (
	"context"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/database"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/publishers"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,

			database.NewConnection,
			NewMQConnection,
			NewMQPublisher,

			repository.NewPurchaseEventRepository,

			service.NewPurchaseEventQueueService,

			publishers.NewPurchaseEventPublisher,
		),
		fx.Invoke(runPurchaseEventPublisher),
	).Run()
}

func runPurchaseEventPublisher(cfg *config.Config, publisher publishers.PurchaseEventPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			queues := cfg.Queues()
			if err := rabbit.DeclareTopology(queues); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queues declared", zap.Strings("queues", queues))

			go func() {
				ticker := time.NewTicker(cfg.Publisher.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish purchase events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("purchase event publisher started", zap.Duration("interval", cfg.Publisher.Interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping purchase event publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
