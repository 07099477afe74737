package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"medibook/review-svc/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput runs struct tag validation and converts failures into a
// *domain.ValidationError keyed by JSON field name.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	verr := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = messageFor(fe)
	}
	return verr
}

// validateCreateInput adds an unparseable appointmentDate to the field
// errors reported by validateInput.
func validateCreateInput(input *domain.CreateReviewInput) error {
	err := validateInput(input)
	if !input.AppointmentDate.Invalid {
		return err
	}

	verr := &domain.ValidationError{Fields: map[string]string{}}
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	verr.Fields["appointmentDate"] = "must be an RFC 3339 timestamp or a YYYY-MM-DD date"
	return verr
}

func messageFor(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "is required"
	}
	if fe.Field() == "rating" {
		return "must be an integer between 1 and 5"
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
