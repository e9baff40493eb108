// Package dErrors defines the typed error taxonomy shared by all roomgate modules.
//
// Every failure a service can return is classified with a Code at the layer that
// detected it. Codes propagate verbatim: no layer reclassifies an error raised
// below it, so callers (the HTTP transport, tests) can branch on HasCode without
// string matching.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and retry decisions.
type Code string

const (
	// CodeBadRequest marks malformed or missing caller input, detected before
	// any store lookup runs. Always recoverable by resubmitting correctly.
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks a lookup that yielded no matching record.
	CodeNotFound Code = "not_found"

	// CodeForbidden marks an authorization denial (e.g. a banned member).
	CodeForbidden Code = "forbidden"

	// CodeConflict marks an entity in a state that forbids the operation.
	CodeConflict Code = "conflict"

	// CodeUnauthorized marks missing or invalid caller credentials.
	CodeUnauthorized Code = "unauthorized"

	// CodeInternal marks an unexpected failure inside roomgate itself.
	CodeInternal Code = "internal"

	// CodeUnavailable marks a boundary collaborator (store, broker, signer)
	// erroring or timing out. It is the only class callers may retry without
	// changing inputs, so it must stay distinguishable from denials.
	CodeUnavailable Code = "unavailable"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a domain error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// chain for errors.Is / errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that never passed through this package.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to the transport status the HTTP layer returns.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
