// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package apperr defines the centralized error handling framework for Assetdeck.

It provides a rich error type that bridges the gap between low-level transport
failures and the notifications shown to the user.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: Transport failures, authentication failures, client-side validation
    failures, and backend-reported business errors are distinct codes.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent user-facing behavior.
*/
package apperr

import (
	"errors"
	"net/http"
)

// GenericMessage is shown when a failure carries no backend-provided message.
const GenericMessage = "Something went wrong, please try again."

// AppError is the canonical error type for Assetdeck.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never rendered to
// users to avoid leaking internal implementation details.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "TRANSPORT_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Failure Taxonomy

// Transport creates an [AppError] for a network-level failure (connection
// refused, timeout, malformed response body). The backend was never reached
// or never answered coherently, so the message is always the generic one.
func Transport(cause error) *AppError {
	return &AppError{
		Code:       "TRANSPORT_ERROR",
		Message:    GenericMessage,
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Unauthenticated creates an [AppError] for an expired or invalid token.
//
// Callers holding session state must clear it when they see this code.
func Unauthenticated(msg string) *AppError {
	if msg == "" {
		msg = "Your session has expired. Please log in again."
	}
	return &AppError{
		Code:       "UNAUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Not-found is a distinct condition from transport failure: screens render a
// dedicated affordance for it rather than a generic error notification.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
//
// Validation failures are raised locally, before any network dispatch.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Remote creates an [AppError] carrying a business error reported by the
// backend API. The backend's message is surfaced verbatim when present.
func Remote(httpStatus int, msg string) *AppError {
	if msg == "" {
		msg = GenericMessage
	}
	return &AppError{
		Code:       "REMOTE_ERROR",
		Message:    msg,
		HTTPStatus: httpStatus,
	}
}

// Conflict creates a 409 [AppError] for lost-update conditions, e.g. a stale
// response trying to overwrite a newer session state.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    GenericMessage,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given machine-readable code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
