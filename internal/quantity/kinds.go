package quantity

import "github.com/san-kum/unitlab/internal/dimension"

// Kind tags a Quantity with the dimension its unit must have. Kinds are
// empty structs used only as type arguments.
type Kind interface {
	Name() string
	Dimension() dimension.Dimension
}

type (
	Length            struct{}
	Mass              struct{}
	Duration          struct{}
	Current           struct{}
	Temperature       struct{}
	AmountOfSubstance struct{}
	LuminousIntensity struct{}
	Dimensionless     struct{}
	Area              struct{}
	Volume            struct{}
	Velocity          struct{}
	Acceleration      struct{}
	Force             struct{}
	Energy            struct{}
	Power             struct{}
	Pressure          struct{}
	Frequency         struct{}

	// Any accepts every unit. Arithmetic results are tagged Any; use As to
	// narrow them back to a checked kind.
	Any struct{}
)

var (
	force  = dimension.Mass.Multiply(dimension.Length).Divide(dimension.Time.Pow(2))
	energy = force.Multiply(dimension.Length)
)

func (Length) Name() string            { return "length" }
func (Mass) Name() string              { return "mass" }
func (Duration) Name() string          { return "duration" }
func (Current) Name() string           { return "current" }
func (Temperature) Name() string       { return "temperature" }
func (AmountOfSubstance) Name() string { return "amount of substance" }
func (LuminousIntensity) Name() string { return "luminous intensity" }
func (Dimensionless) Name() string     { return "dimensionless" }
func (Area) Name() string              { return "area" }
func (Volume) Name() string            { return "volume" }
func (Velocity) Name() string          { return "velocity" }
func (Acceleration) Name() string      { return "acceleration" }
func (Force) Name() string             { return "force" }
func (Energy) Name() string            { return "energy" }
func (Power) Name() string             { return "power" }
func (Pressure) Name() string          { return "pressure" }
func (Frequency) Name() string         { return "frequency" }
func (Any) Name() string               { return "any" }

func (Length) Dimension() dimension.Dimension            { return dimension.Length }
func (Mass) Dimension() dimension.Dimension              { return dimension.Mass }
func (Duration) Dimension() dimension.Dimension          { return dimension.Time }
func (Current) Dimension() dimension.Dimension           { return dimension.Current }
func (Temperature) Dimension() dimension.Dimension       { return dimension.Temperature }
func (AmountOfSubstance) Dimension() dimension.Dimension { return dimension.AmountOfSubstance }
func (LuminousIntensity) Dimension() dimension.Dimension { return dimension.LuminousIntensity }
func (Dimensionless) Dimension() dimension.Dimension     { return dimension.None }
func (Area) Dimension() dimension.Dimension              { return dimension.Length.Pow(2) }
func (Volume) Dimension() dimension.Dimension            { return dimension.Length.Pow(3) }
func (Velocity) Dimension() dimension.Dimension          { return dimension.Length.Divide(dimension.Time) }
func (Acceleration) Dimension() dimension.Dimension      { return dimension.Length.Divide(dimension.Time.Pow(2)) }
func (Force) Dimension() dimension.Dimension             { return force }
func (Energy) Dimension() dimension.Dimension            { return energy }
func (Power) Dimension() dimension.Dimension             { return energy.Divide(dimension.Time) }
func (Pressure) Dimension() dimension.Dimension          { return force.Divide(dimension.Length.Pow(2)) }
func (Frequency) Dimension() dimension.Dimension         { return dimension.None.Divide(dimension.Time) }
func (Any) Dimension() dimension.Dimension               { return dimension.None }

func isAny[K Kind]() bool {
	var k K
	_, ok := any(k).(Any)
	return ok
}
