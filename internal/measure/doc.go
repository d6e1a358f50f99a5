// Package measure holds the error taxonomy shared by the unit engine.
//
// The engine itself is split across a few packages, leaves first:
//
//   - [dimension]: formal products of base dimensions
//   - [converter]: invertible numeric transforms between unit scales
//   - [physics]: pluggable policy mapping base units to dimensions
//   - [unit]: base, alternate, transformed and product units
//   - [quantity]: immutable (value, unit) pairs tagged with a kind
//
// Every failure in those packages wraps one of the sentinels below, so
// callers can branch with [errors.Is] regardless of where it was raised.
//
// # Example
//
//	_, err := unit.ConverterTo(ctx, unit.Metre, unit.Kilogram)
//	if errors.Is(err, measure.ErrIncommensurable) {
//	    // metre and kilogram measure different things
//	}
//
// [dimension]: github.com/san-kum/unitlab/internal/dimension
// [converter]: github.com/san-kum/unitlab/internal/converter
// [physics]: github.com/san-kum/unitlab/internal/physics
// [unit]: github.com/san-kum/unitlab/internal/unit
// [quantity]: github.com/san-kum/unitlab/internal/quantity
package measure
