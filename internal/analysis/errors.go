package analysis

import "errors"

var (
	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid analysis input")

	// ErrInputTooShort indicates the text is below MinTextLength after trimming.
	ErrInputTooShort = errors.New("input too short")

	// ErrGeneration wraps a model gateway failure that aborted the run.
	ErrGeneration = errors.New("analysis failed")

	// ErrCanceled indicates the caller went away between stages.
	ErrCanceled = errors.New("analysis canceled")
)

// ValidationError is a caller-input problem detected before any model call.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
