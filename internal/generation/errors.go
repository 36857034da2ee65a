package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when sentence generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate example sentence")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrDisabled is returned when generation is requested but no generator
	// is configured
	ErrDisabled = errors.New("example sentence generation is disabled")
)
