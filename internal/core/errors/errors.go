// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Generation errors.
var (
	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and requests are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("empty response")

	// ErrProviderNotConfigured indicates no generation provider has credentials.
	ErrProviderNotConfigured = errors.New("provider not configured")
)

// Plan response parsing errors.
var (
	// ErrNoJSONObject indicates no JSON object could be located in the model response.
	ErrNoJSONObject = errors.New("no JSON object in response")

	// ErrInvalidPlanJSON indicates the located span is not valid JSON.
	ErrInvalidPlanJSON = errors.New("invalid plan JSON")

	// ErrPlanShape indicates the parsed plan is missing required days or meal types.
	ErrPlanShape = errors.New("plan shape invalid")
)

// Validation errors.
var (
	// ErrInvalidWeekDate indicates a week-start date that could not be parsed.
	ErrInvalidWeekDate = errors.New("invalid week start date")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
