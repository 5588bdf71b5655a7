package errors

import (
	"errors"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const errCodeHTTP = "HTTP_ERROR"

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(Response{
				Kind:    kindForStatus(fiberErr.Code),
				Code:    errCodeHTTP,
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled request error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(Response{
			Kind:    constants.KindInternalError,
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

// handleServiceError renders a service error. Internal failures show only the
// fixed message for their code, never the cause.
func handleServiceError(c *fiber.Ctx, err service.Error) error {
	status := constants.GetHTTPStatus(err.Code)

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = constants.GetErrorMessage(err.Code)
	}

	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}

	return c.Status(status).JSON(Response{
		Kind:    err.Kind(),
		Code:    err.Code,
		Message: message,
	})
}

func kindForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return constants.KindNotFound
	case status == fiber.StatusUnauthorized:
		return constants.KindUnauthenticated
	case status == fiber.StatusForbidden:
		return constants.KindPermissionDenied
	case status >= 400 && status < 500:
		return constants.KindInvalidArgument
	default:
		return constants.KindInternalError
	}
}
