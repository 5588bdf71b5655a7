package main

import (
	"context"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/consumers"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/httpclient"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/notifier"
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
			NewMQConnection,
			NewMQConsumer,

			NewNotifier,
			service.NewNotificationService,

			consumers.NewPurchaseEventConsumer,
		),
		fx.Invoke(runPurchaseEventConsumer),
	).Run()
}

func runPurchaseEventConsumer(cfg *config.Config, consumer consumers.PurchaseEventConsumer, logger *zap.Logger,
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
				if err := consumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("purchase event consumer started", zap.Bool("notifierEnabled", cfg.Notifier.Enabled))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping purchase event consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewNotifier(cfg *config.Config) notifier.Notifier {
	client := httpclient.NewHTTPClient(cfg.Notifier.Timeout)
	return notifier.NewNotifier(cfg.Notifier, client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
