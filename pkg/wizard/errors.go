package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when a field name is not part of FormRecord.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrInvalidValue is returned when a value cannot be stored in a field
	// (wrong type, unparseable number, interest outside the catalog).
	ErrInvalidValue = errors.New("wizard: invalid field value")
	// ErrValidation signals that one or more fields failed their rule.
	ErrValidation = errors.New("wizard: validation failed")
	// ErrNotOnReviewStep is returned when submit is attempted before the
	// review step.
	ErrNotOnReviewStep = errors.New("wizard: submit is only allowed from the review step")
	// ErrSubmissionInFlight is returned while a submission is running.
	ErrSubmissionInFlight = errors.New("wizard: submission in progress")
	// ErrAlreadySubmitted is returned once the session has succeeded; call
	// Reset to start over.
	ErrAlreadySubmitted = errors.New("wizard: already submitted")
	// ErrSubmitFailed wraps transport failures.
	ErrSubmitFailed = errors.New("wizard: submission failed")
)

// ValidationError lists the fields that blocked an operation. It unwraps to
// ErrValidation.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range fieldOrder {
		if _, ok := e.Fields[f]; ok {
			names = append(names, string(f))
		}
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldReporter is implemented by transport errors that carry field-level
// feedback from the receiving side. Keys are field names; unknown keys are
// ignored.
type FieldReporter interface {
	error
	FieldMessages() map[string][]string
	FormMessages() []string
}

func invalidValue(f Field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, f, fmt.Sprintf(format, args...))
}
