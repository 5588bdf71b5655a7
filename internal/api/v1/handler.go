package v1

import (
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/contract"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/api/validator"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/auth"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	listingIDParam   = "listingId"
	purchaseEndpoint = "purchase"
)

type Handler struct {
	logger    *zap.Logger
	purchase  service.PurchaseService
	listings  service.ListingService
	validator validator.IXValidator
}

func NewHandler(logger *zap.Logger, purchase service.PurchaseService, listings service.ListingService,
	validator validator.IXValidator,
) *Handler {
	return &Handler{logger: logger, purchase: purchase, listings: listings, validator: validator}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) GetListing(c *fiber.Ctx) error {
	view, err := h.listings.GetListing(c.UserContext(), c.Params(listingIDParam))
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Success: true, Data: newListingResponse(view)})
}

func (h *Handler) Purchase(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return service.NewServiceError(constants.ErrCodeUnauthorized, nil)
	}

	var request PurchaseRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, nil)
	}

	if err := h.validator.Check(purchaseEndpoint, request); err != nil {
		return err
	}

	listingID := c.Params(listingIDParam)
	result, err := h.purchase.Purchase(ctx, identity, service.PurchaseCommand{
		ListingID: listingID,
		Quantity:  request.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{
		Success: true,
		Message: constants.MsgPurchaseCompleted,
		Data:    newPurchaseResponse(result),
	})
}
