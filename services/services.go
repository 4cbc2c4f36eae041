// Package services holds the business operations behind the HTTP handlers.
// Every operation takes the authenticated caller explicitly and returns
// *apperror.Error values for failures a client can act on.
package services

import (
	"errors"
	"math"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/repository"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// lookup maps a repository miss to a 404 with msg and anything else to a 500
func lookup(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Internal(err)
}

// passthrough keeps application errors raised inside a transaction and wraps the rest
func passthrough(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
