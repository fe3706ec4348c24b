// Package apperr carries the service error taxonomy across layer boundaries.
// Repositories and services attach a code to every error they return; handlers
// translate the code into an HTTP status. Underlying storage errors stay wrapped
// and never reach the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping.
type Code string

const (
	CodeUnauthenticated  Code = "unauthenticated"
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeValidation       Code = "validation"
	CodeNotFound         Code = "not_found"
	CodeRestrictedDelete Code = "restricted_delete"
	CodeInternal         Code = "internal"
)

// Error is a code-carrying error. Message is safe to show to callers; the
// wrapped cause is for logs only.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NotFound reports that a resource id did not resolve.
func NotFound(resource string, id any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

// Validation reports a missing required field or malformed optional field.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// Unauthenticated reports a missing, invalid, or expired token.
func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: message}
}

// Unauthorized reports rejected credentials or an absent session.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// Forbidden reports a role check failure.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// RestrictedDelete reports a delete blocked by referencing rows.
func RestrictedDelete(message string) *Error {
	return &Error{Code: CodeRestrictedDelete, Message: message}
}

// Internal wraps an unexpected failure, typically from storage.
func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, Message: message, cause: err}
}

// CodeOf extracts the code from an error chain. Unclassified errors are
// treated as internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from an error chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error chain to an HTTP status code.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeUnauthenticated, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRestrictedDelete:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
