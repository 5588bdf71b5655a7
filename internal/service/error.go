package service

import (
	"errors"
	"fmt"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	if cause == nil {
		cause = errors.New(constants.GetErrorMessage(code))
	}

	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

func (e Error) Kind() string {
	return constants.GetErrorKind(e.Code)
}

func newError(code string) error {
	return NewServiceError(code, nil)
}

func newErrorf(code string, format string, args ...any) error {
	return NewServiceError(code, fmt.Errorf(format, args...))
}

// wrapError keeps the default message for code in front of the underlying
// cause.
func wrapError(code string, err error) error {
	return NewServiceError(code, fmt.Errorf("%s: %w", constants.GetErrorMessage(code), err))
}

// asServiceError passes service errors through and turns anything else into
// an internal error.
func asServiceError(err error) error {
	var svcErr Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	return wrapError(constants.ErrCodeInternalError, err)
}

// ErrorCode returns the code carried by err, or INTERNAL_ERROR.
func ErrorCode(err error) string {
	var svcErr Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}

	return constants.ErrCodeInternalError
}
