// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Validation is returned when the input is malformed, missing or out of range.
var Validation = errors.New("validation failed")

// NotFound indicates that a referenced entity does not exist.
var NotFound = errors.New("not found")

// Conflict indicates a uniqueness or state precondition violation.
var Conflict = errors.New("conflict")

// Unauthorized indicates a missing, invalid or expired token.
var Unauthorized = errors.New("unauthorized")

// Forbidden indicates that the caller's role is not permitted.
var Forbidden = errors.New("forbidden")

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// New builds an *Error of the given kind with a formatted message.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Message returns the client-facing message of err, or fallback when err is
// not an *Error.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}

// HTTPStatus maps the kind of err to the status code sent to the caller.
// Errors without a kind map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, Validation), errors.Is(err, Conflict):
		return http.StatusBadRequest
	case errors.Is(err, NotFound):
		return http.StatusNotFound
	case errors.Is(err, Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, Forbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
