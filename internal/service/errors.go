package service

import "errors"

var (
	// ErrMissingField is wrapped by validation errors for required request fields.
	ErrMissingField = errors.New("required field missing")

	// ErrPersistenceDisabled is returned by read use cases when no store is configured.
	ErrPersistenceDisabled = errors.New("persistence disabled")
)
