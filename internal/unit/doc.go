// Package unit implements units of measurement and the conversions
// between them.
//
// A [Unit] is one of four kinds:
//
//   - base: an irreducible named unit ([Metre], [Kilogram], ...)
//   - alternate: a named system unit over a product ([Newton], [Joule])
//   - transformed: a parent unit plus a converter ([Kilometre], [Celsius])
//   - product: base, alternate or transformed units raised to integer powers
//
// Units form a DAG rooted at base units. [ConverterTo] strips every unit
// down to its system unit, so any two commensurable units convert through
// a single pivot instead of a pairwise table. Dimensions are looked up
// through the [physics.Model] active in the context.
//
// # Example
//
//	c, err := unit.ConverterTo(ctx, unit.Centimetre, unit.Foot)
//	if err != nil {
//	    return err
//	}
//	ft := c.Convert(30.48) // 1
package unit
