package api

import (
	v1 "github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, requireIdentity fiber.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	listings := app.Group("/api/listings")
	listings.Get("/:listingId", handler.GetListing)
	listings.Post("/:listingId/purchase", requireIdentity, handler.Purchase)
}
