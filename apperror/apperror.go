// Package apperror carries the HTTP-facing error taxonomy shared by services
// and handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure with a client-safe message and the status it maps to
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure; the cause is logged, never returned to clients
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "An internal error occurred.", Err: err}
}

// StatusOf returns the HTTP status for err, 500 for anything unclassified
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
