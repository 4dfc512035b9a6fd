package models

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteInput        = errors.New("incomplete input")
	ErrNotANumber             = errors.New("not a number")
	ErrInvalidCoordinateRange = errors.New("coordinate out of range")
	ErrUnvalidated            = errors.New("coordinate not validated")
	ErrPermissionDenied       = errors.New("location permission denied")
	ErrLocationUnavailable    = errors.New("location unavailable")
	ErrPassFetch              = errors.New("failed to fetch passes")
	ErrRequestInFlight        = errors.New("request already in flight")
)

// CoordinateError describes why a coordinate field failed validation.
// Kind is one of ErrIncompleteInput, ErrNotANumber, ErrInvalidCoordinateRange
// or ErrUnvalidated.
type CoordinateError struct {
	Field Field
	Value string
	Kind  error
}

func (e *CoordinateError) Error() string {
	switch e.Kind {
	case ErrIncompleteInput:
		return fmt.Sprintf("%s is missing", e.Field)
	case ErrNotANumber:
		return fmt.Sprintf("%s %q is not a number", e.Field, e.Value)
	case ErrInvalidCoordinateRange:
		min, max := e.Field.Bounds()
		return fmt.Sprintf("%s must be between %g and %g, got %s", e.Field, min, max, e.Value)
	case ErrUnvalidated:
		return "coordinates have not been validated"
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

func (e *CoordinateError) Unwrap() error {
	return e.Kind
}

// IsInvalidCoordinate reports whether err came from coordinate validation
// for a reason other than missing input.
func IsInvalidCoordinate(err error) bool {
	return errors.Is(err, ErrNotANumber) ||
		errors.Is(err, ErrInvalidCoordinateRange) ||
		errors.Is(err, ErrUnvalidated)
}
