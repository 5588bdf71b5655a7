package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api"
	v1 "github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/v1"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/validator"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/auth"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/database"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
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
			metrics.NewSystemCollector,
			metrics.NewDatabaseMetricsCollector,

			repository.NewAccountRepository,
			repository.NewListingRepository,
			repository.NewPurchaseEventRepository,
			repository.NewTransactionManager,

			service.NewPurchaseService,
			service.NewListingService,
			service.NewIdentityService,

			NewValidator,
			validator.NewXValidator,
			auth.NewMiddleware,
			v1.NewHandler,
			NewApp,
		),
		fx.Invoke(startCollectors, startServer),
	).Run()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewValidator() *playground.Validate {
	return playground.New()
}

func NewApp(cfg *config.Config, m *metrics.Metrics, dbMetrics *metrics.DatabaseMetricsCollector, logger *zap.Logger) *fiber.App {
	return api.NewApp(cfg, m, logger, dbMetrics)
}

func startCollectors(cfg *config.Config, system *metrics.SystemCollector, db *metrics.DatabaseMetricsCollector,
	lc fx.Lifecycle,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			system.Start(cfg.Metrics.Interval)
			db.Start(cfg.Metrics.Interval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			system.Stop()
			db.Stop()
			return nil
		},
	})
}

func startServer(app *fiber.App, handler *v1.Handler, authMiddleware *auth.Middleware, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle,
) {
	api.SetupRoutes(app, handler, authMiddleware.RequireIdentity())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			logger.Info("HTTP server started",
				zap.String("port", cfg.API.Port),
				zap.String("purchaseMode", cfg.Purchase.Mode))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return app.ShutdownWithContext(ctx)
		},
	})
}
