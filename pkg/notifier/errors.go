package notifier

import (
	"errors"
	"net/http"
)

const (
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeRecipientNotFound = "RECIPIENT_NOT_FOUND"
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeServerError       = "SERVER_ERROR"
)

var (
	ErrValidationFailed  = errors.New(ErrCodeValidationFailed)
	ErrRecipientNotFound = errors.New(ErrCodeRecipientNotFound)
	ErrTimeout           = errors.New(ErrCodeTimeout)
	ErrServerError       = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	http.StatusNotFound:            ErrRecipientNotFound,
	http.StatusUnprocessableEntity: ErrValidationFailed,
	http.StatusBadRequest:          ErrValidationFailed,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}

// IsPermanent reports whether resending the same notification can never
// succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrRecipientNotFound) || errors.Is(err, ErrValidationFailed)
}
