package unit

import (
	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/dimension"
)

// SI base units.
var (
	Metre    = Must(NewBase("m"))
	Kilogram = Must(NewBase("kg"))
	Second   = Must(NewBase("s"))
	Ampere   = Must(NewBase("A"))
	Kelvin   = Must(NewBase("K"))
	Mole     = Must(NewBase("mol"))
	Candela  = Must(NewBase("cd"))
)

// Named SI units.
var (
	Radian    = Must(NewAlternate("rad", One))
	Steradian = Must(NewAlternate("sr", One))
	Hertz     = Must(NewAlternate("Hz", One.Per(Second)))
	Newton    = Must(NewAlternate("N", Kilogram.Multiply(Metre).Per(Second.Pow(2))))
	Pascal    = Must(NewAlternate("Pa", Newton.Per(Metre.Pow(2))))
	Joule     = Must(NewAlternate("J", Newton.Multiply(Metre)))
	Watt      = Must(NewAlternate("W", Joule.Per(Second)))
	Coulomb   = Must(NewAlternate("C", Ampere.Multiply(Second)))
	Volt      = Must(NewAlternate("V", Watt.Per(Ampere)))
	Ohm       = Must(NewAlternate("Ω", Volt.Per(Ampere)))
	Lumen     = Must(NewAlternate("lm", Candela.Multiply(Steradian)))
)

var (
	SquareMetre           = named("m2", Metre.Pow(2))
	CubicMetre            = named("m3", Metre.Pow(3))
	MetresPerSecond       = named("m/s", Metre.Per(Second))
	MetresPerSquareSecond = named("m/s2", Metre.Per(Second.Pow(2)))
)

// Units outside the SI, defined exactly in terms of SI units.
var (
	Gram         = named("g", scaled(Kilogram, "1/1000"))
	Minute       = named("min", scaled(Second, "60"))
	Hour         = named("h", scaled(Second, "3600"))
	Day          = named("d", scaled(Second, "86400"))
	Year         = named("a", scaled(Second, "31557600"))
	Inch         = named("in", scaled(Metre, "0.0254"))
	Foot         = named("ft", scaled(Metre, "0.3048"))
	Yard         = named("yd", scaled(Metre, "0.9144"))
	Mile         = named("mi", scaled(Metre, "1609.344"))
	NauticalMile = named("nmi", scaled(Metre, "1852"))
	Pound        = named("lb", scaled(Kilogram, "0.45359237"))
	Litre        = named("L", scaled(CubicMetre, "1/1000"))
	Celsius      = named("°C", shifted(Kelvin, "1", "273.15"))
	Fahrenheit   = named("°F", shifted(Kelvin, "5/9", "45967/180"))
	Electronvolt = named("eV", scaled(Joule, "1.602176634e-19"))
	Calorie      = named("cal", scaled(Joule, "4.184"))
	Bar          = named("bar", scaled(Pascal, "100000"))
	Atmosphere   = named("atm", scaled(Pascal, "101325"))
	Percent      = named("%", scaled(One, "1/100"))

	KilometresPerHour = named("km/h", Kilo(Metre).Per(Hour))
	Knot              = named("kn", NauticalMile.Per(Hour))

	// Decibel is a power ratio: x dB is 10^(x/10).
	Decibel = named("dB", One.Transform(converter.Chain(
		converter.Must(converter.Rational(1, 10)),
		converter.Must(converter.Exp(10)),
	)))
)

func init() {
	SetStandard(dimension.BaseLength, Metre)
	SetStandard(dimension.BaseMass, Kilogram)
	SetStandard(dimension.BaseTime, Second)
	SetStandard(dimension.BaseCurrent, Ampere)
	SetStandard(dimension.BaseTemperature, Kelvin)
	SetStandard(dimension.BaseAmount, Mole)
	SetStandard(dimension.BaseLuminousIntensity, Candela)
}

func scaled(u *Unit, scale string) *Unit {
	return u.Transform(converter.Must(converter.Exact(scale, "")))
}

func shifted(u *Unit, scale, offset string) *Unit {
	return u.Transform(converter.Must(converter.Exact(scale, offset)))
}
