// Package physics provides the policy that maps base units to dimensions.
//
// A [Model] answers two questions about a base unit, identified by its
// symbol: which [dimension.Dimension] it measures, and which converter
// takes a value in that unit to the standard unit of that dimension.
//
//   - [Standard]: the SI table with identity transforms
//   - [Relativistic]: length measured in time (c = 1)
//   - [New]: any model overriding selected base units
//
// # Scoping
//
// The active model travels in a [context.Context]. [Select] pushes a model
// and [Restore] pops it; [Within] runs a function under a model. Because
// contexts are immutable values, the caller's context still sees the
// previous model once the call returns, on every exit path, and goroutines
// holding different contexts never observe each other's selection.
//
//	err := physics.Within(ctx, physics.Relativistic, func(ctx context.Context) error {
//	    d := unit.Dimension(ctx, unit.Metre) // [T]
//	    ...
//	})
package physics
