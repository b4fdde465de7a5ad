// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for payloads or HTTPError for API responses)
// to ensure the client receive meaningful and consistent
// error messages.
//
//   - Return consistent error shapes to API clients (JSON).
//   - Support field-level validation errors for payloads.
//   - Provide errors that play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "username", "error": "is required" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "username").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Kind is the error taxonomy exposed to clients as "error_kind".
type Kind string

const (
	KindValidation Kind = "ValidationError"
	KindNotFound   Kind = "NotFoundError"
	KindConflict   Kind = "ConflictError"
	KindRateLimit  Kind = "RateLimitError"
	KindInternal   Kind = "InternalError"
)

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// It is designed to be serialized directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "USER_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Kind: coarse category the client can switch on.
//   - Override: the message is safe to show to end users as is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Kind     Kind   `json:"error_kind"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// This does NOT compare Code/Status/etc.
// It only checks whether the other thing is the same *type* (*HTTPError).
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
