package api

import (
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/v1/middleware"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	apperrors "github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/errors"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const serviceName = "marketplace-api"

func NewApp(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger, checkers ...middleware.HealthChecker) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ReadTimeout:           cfg.API.ReadTimeout,
		WriteTimeout:          cfg.API.WriteTimeout,
		ErrorHandler:          apperrors.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))
	app.Use(middleware.HealthCheckMiddleware(serviceName, checkers...))

	return app
}
