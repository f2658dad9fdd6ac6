// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Inkpress.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable ErrorCode and client-safe messages.
  - Taxonomy: Validation, Unauthorized, Forbidden, NotFound, Conflict, Internal.
  - Mapping: Explicit mapping from AppError to HTTP status codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// StatusValidationFailed is the fixed status code for schema validation
// failures. It is intentionally non-standard (inherited from the public API
// contract) and must stay consistent across every route.
const StatusValidationFailed = 420

// AppError is the canonical error type for the Inkpress API.
//
// It carries an HTTP status code, a machine-readable code, client-safe
// messages, and an optional ordered slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string
	// Message is a human-readable description safe to return to the client.
	Message string
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int
	// Cause is the underlying error, used for server-side logging only.
	Cause error
	// Details holds per-field validation errors, in declaration order.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Messages flattens the error into the client-facing `{"error": [...]}` list.
// Validation errors yield one "<field>: <message>" entry per violated field;
// every other kind yields its single message.
func (e *AppError) Messages() []string {
	if len(e.Details) == 0 {
		return []string{e.Message}
	}
	messages := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		messages = append(messages, detail.Field+": "+detail.Message)
	}
	return messages
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found."
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found.",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a [StatusValidationFailed] [AppError] with ordered
// per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: StatusValidationFailed,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && ae.HTTPStatus == http.StatusNotFound
}
