// Package errdef defines the error kinds that cross the service boundary. Handlers attach them to
// the gin context and middleware.ErrorHandler translates each kind into a status code.
package errdef

import (
	"errors"
	"fmt"
)

// NewBadRequest creates an error describing a violated input constraint.
func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

func (e badRequest) Unwrap() error { return e.error }

// IsBadRequest returns true if err is a validation error.
func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}

// NewNotFound creates an error representing a resource that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

func (e notFound) Unwrap() error { return e.error }

// IsNotFound returns true if err is an error representing a resource that could not be found and false otherwise.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// NewDuplicated creates an error for a write rejected by a uniqueness rule.
func NewDuplicated(format string, a ...any) error {
	return duplicated{fmt.Errorf(format, a...)}
}

type duplicated struct{ error }

func (e duplicated) Unwrap() error { return e.error }

func IsDuplicated(err error) bool {
	var e duplicated
	return errors.As(err, &e)
}

// NewGeocoding creates an error for a failed geocoding provider call.
func NewGeocoding(format string, a ...any) error {
	return geocoding{fmt.Errorf(format, a...)}
}

type geocoding struct{ error }

func (e geocoding) Unwrap() error { return e.error }

func IsGeocoding(err error) bool {
	var e geocoding
	return errors.As(err, &e)
}

func NewUnauthorized(format string, a ...any) error {
	return unauthorized{fmt.Errorf(format, a...)}
}

type unauthorized struct{ error }

func IsUnauthorized(err error) bool {
	var e unauthorized
	return errors.As(err, &e)
}

func NewForbidden(format string, a ...any) error {
	return forbidden{fmt.Errorf(format, a...)}
}

type forbidden struct{ error }

func IsForbidden(err error) bool {
	var e forbidden
	return errors.As(err, &e)
}
