package tracking

import "errors"

// Error definitions for the tracking package.
var (
	// ErrInvalidConfig is returned when the carrier client configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid tracking provider configuration")

	// ErrEmptyCode is returned when a lookup is attempted with an empty tracking code.
	ErrEmptyCode = errors.New("tracking code cannot be empty")

	// ErrLookupFailed is returned when the carrier request fails at the
	// transport level or the carrier responds with an unexpected status.
	// The service layer treats this the same as an empty result.
	ErrLookupFailed = errors.New("carrier lookup failed")
)
