package middleware

import (
	"strconv"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const slowRequestThreshold = time.Second

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	HealthCheck() error
}

// HTTPMetricsMiddleware collects HTTP request metrics
func HTTPMetricsMiddleware(m *metrics.Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		err := c.Next()
		if err != nil {
			// Render now so the recorded status is the one the client sees.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)

		method := c.Method()
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		statusCode := strconv.Itoa(c.Response().StatusCode())
		responseSize := len(c.Response().Body())

		m.RecordHTTPRequest(method, path, statusCode, duration, responseSize)

		if duration > slowRequestThreshold {
			logger.Warn("Slow HTTP request",
				zap.String("method", method),
				zap.String("path", path),
				zap.String("statusCode", statusCode),
				zap.Duration("duration", duration),
				zap.Int("responseSize", responseSize),
			)
		}

		return nil
	}
}

// HealthCheckMiddleware answers /health, reporting 503 while any checker fails.
func HealthCheckMiddleware(serviceName string, checkers ...HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() != "/health" {
			return c.Next()
		}

		for _, checker := range checkers {
			if err := checker.HealthCheck(); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":    "unhealthy",
					"timestamp": time.Now().Unix(),
					"service":   serviceName,
				})
			}
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   serviceName,
		})
	}
}
