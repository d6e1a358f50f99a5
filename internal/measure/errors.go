package measure

import (
	"errors"
	"fmt"
)

// Domain errors for unit and quantity operations.
var (
	// ErrIncommensurable indicates a conversion between units of different dimension.
	ErrIncommensurable = errors.New("measure: incommensurable units")

	// ErrDimensionMismatch indicates a unit whose dimension disagrees with the quantity kind.
	ErrDimensionMismatch = errors.New("measure: unit dimension does not match quantity kind")

	// ErrInvalidConverter indicates a non-invertible or undefined transform.
	ErrInvalidConverter = errors.New("measure: invalid converter")

	// ErrArithmetic indicates a result that cannot be represented.
	ErrArithmetic = errors.New("measure: arithmetic error")
)

// ConversionError wraps an error with the units involved in the conversion.
type ConversionError struct {
	From    string
	To      string
	Wrapped error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s to %s: %v", e.From, e.To, e.Wrapped)
}

func (e *ConversionError) Unwrap() error {
	return e.Wrapped
}

// ErrZeroRoot is returned when a root of index zero is requested. It matches
// both ErrArithmetic and ErrInvalidConverter.
var ErrZeroRoot = fmt.Errorf("%w: %w (root index 0)", ErrArithmetic, ErrInvalidConverter)
