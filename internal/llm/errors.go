package llm

import "errors"

var (
	// ErrEndpointUnavailable indicates the model endpoint is unreachable.
	ErrEndpointUnavailable = errors.New("model endpoint unavailable")

	// ErrTimeout indicates the model request exceeded the configured timeout.
	ErrTimeout = errors.New("model request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrGenerationFailed indicates the model call failed after all
	// configured attempts; the cause is wrapped.
	ErrGenerationFailed = errors.New("model generation failed")
)
