package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/constants"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/service"
	"github.com/go-playground/validator/v10"
)

const (
	sep = " and "
)

type Error struct {
	FailedField string
	Tag         string
	Param       string
	Value       interface{}
}

func (e Error) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed on the '%s=%s' rule", e.FailedField, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed on the '%s' rule", e.FailedField, e.Tag)
}

type IXValidator interface {
	Check(endpoint string, data any) error
	Validate(data any) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validate *validator.Validate, metrics *metrics.Metrics) IXValidator {
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &XValidator{
		validator: validate,
		metrics:   metrics,
	}
}

// Check validates data and returns a VALIDATION_FAILED service error listing
// every failed field.
func (x XValidator) Check(endpoint string, data any) error {
	start := time.Now()

	errs := x.Validate(data)
	if len(errs) == 0 {
		if x.metrics != nil {
			x.metrics.RecordValidationDuration(endpoint, time.Since(start))
		}
		return nil
	}

	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, err.String())

		if x.metrics != nil {
			x.metrics.RecordValidationError(err.FailedField, err.Tag)
		}
	}

	if x.metrics != nil {
		x.metrics.RecordValidationDuration(endpoint, time.Since(start))
	}

	return service.NewServiceError(constants.ErrCodeValidationFailed, errors.New(strings.Join(errMsgs, sep)))
}

func (x XValidator) Validate(data any) []Error {
	var validationErrors []Error

	err := x.validator.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []Error{{FailedField: "body", Tag: "struct", Value: data}}
	}

	for _, fieldErr := range errs {
		validationErrors = append(validationErrors, Error{
			FailedField: fieldErr.Field(),
			Tag:         fieldErr.Tag(),
			Param:       fieldErr.Param(),
			Value:       fieldErr.Value(),
		})
	}
	return validationErrors
}
