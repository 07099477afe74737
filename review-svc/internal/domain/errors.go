package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateReview   = errors.New("review already exists for this appointment")
	ErrReviewNotFound    = errors.New("review not found")
	ErrEditWindowExpired = errors.New("reviews can only be edited or deleted within 24 hours of creation")
	ErrAggregation       = errors.New("failed to aggregate review stats")
)

// ValidationError lists the offending input fields and why each failed.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	var missing, invalid []string
	for field, msg := range e.Fields {
		if msg == "is required" {
			missing = append(missing, field)
			continue
		}
		invalid = append(invalid, field+" "+msg)
	}
	sort.Strings(missing)
	sort.Strings(invalid)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	parts = append(parts, invalid...)
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AggregationError reports that stats for DoctorID could not be computed.
type AggregationError struct {
	DoctorID string
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate stats for doctor %s: %v", e.DoctorID, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

func (e *AggregationError) Is(target error) bool {
	return target == ErrAggregation
}
