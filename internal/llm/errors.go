package llm

import "errors"

var (
	// ErrUnavailable indicates the generation backend is unreachable.
	ErrUnavailable = errors.New("llm backend unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUnauthorized indicates the backend rejected the credentials.
	ErrUnauthorized = errors.New("llm credentials rejected")

	// ErrRateLimited indicates the backend asked the caller to slow down.
	ErrRateLimited = errors.New("llm rate limited")

	// ErrBackend indicates the backend returned a non-success response.
	ErrBackend = errors.New("llm backend error")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrUnknownProvider indicates an unsupported backend name.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrMissingAPIKey indicates a hosted provider was selected without credentials.
	ErrMissingAPIKey = errors.New("llm api key missing")
)
