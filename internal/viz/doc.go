// Package viz renders units, dimensions and conversions for the terminal.
//
// Output is styled with lipgloss using one of the built-in [Theme]s.
// Conversion curves are drawn with asciigraph:
//
//	t, _ := store.Sample(ctx, unit.Celsius, unit.Fahrenheit, store.Linspace(-40, 100, 60))
//	fmt.Println(viz.PlotConversion(t, 12, 70))
//
// Rendering never fails; values that cannot be converted are shown as
// errors in the theme's error color.
package viz
