package unit

import (
	"strconv"

	"github.com/san-kum/unitlab/internal/converter"
)

// SIPrefix is a decimal scaling of a unit, 10^Exp.
type SIPrefix struct {
	Symbol string
	Name   string
	Exp    int
}

// Of scales u by the prefix. When u has a label the result is registered
// as prefix symbol + label, unless that symbol already names another unit.
func (p SIPrefix) Of(u *Unit) *Unit {
	v := u.Transform(converter.Must(converter.Exact("1e"+strconv.Itoa(p.Exp), "")))
	if l, ok := labelOf(u); ok {
		_ = Register(p.Symbol+l, v)
	}
	return v
}

var Prefixes = []SIPrefix{
	{"Y", "yotta", 24}, {"Z", "zetta", 21}, {"E", "exa", 18}, {"P", "peta", 15},
	{"T", "tera", 12}, {"G", "giga", 9}, {"M", "mega", 6}, {"k", "kilo", 3},
	{"h", "hecto", 2}, {"da", "deca", 1}, {"d", "deci", -1}, {"c", "centi", -2},
	{"m", "milli", -3}, {"µ", "micro", -6}, {"n", "nano", -9}, {"p", "pico", -12},
	{"f", "femto", -15}, {"a", "atto", -18}, {"z", "zepto", -21}, {"y", "yocto", -24},
}

// Prefix scales u by an arbitrary factor.
func Prefix(u *Unit, factor float64) (*Unit, error) {
	return u.Times(factor)
}

func prefixOf(exp int) SIPrefix {
	for _, p := range Prefixes {
		if p.Exp == exp {
			return p
		}
	}
	panic("unit: no SI prefix for 1e" + strconv.Itoa(exp))
}

func Yotta(u *Unit) *Unit { return prefixOf(24).Of(u) }
func Zetta(u *Unit) *Unit { return prefixOf(21).Of(u) }
func Exa(u *Unit) *Unit   { return prefixOf(18).Of(u) }
func Peta(u *Unit) *Unit  { return prefixOf(15).Of(u) }
func Tera(u *Unit) *Unit  { return prefixOf(12).Of(u) }
func Giga(u *Unit) *Unit  { return prefixOf(9).Of(u) }
func Mega(u *Unit) *Unit  { return prefixOf(6).Of(u) }
func Kilo(u *Unit) *Unit  { return prefixOf(3).Of(u) }
func Hecto(u *Unit) *Unit { return prefixOf(2).Of(u) }
func Deca(u *Unit) *Unit  { return prefixOf(1).Of(u) }
func Deci(u *Unit) *Unit  { return prefixOf(-1).Of(u) }
func Centi(u *Unit) *Unit { return prefixOf(-2).Of(u) }
func Milli(u *Unit) *Unit { return prefixOf(-3).Of(u) }
func Micro(u *Unit) *Unit { return prefixOf(-6).Of(u) }
func Nano(u *Unit) *Unit  { return prefixOf(-9).Of(u) }
func Pico(u *Unit) *Unit  { return prefixOf(-12).Of(u) }
func Femto(u *Unit) *Unit { return prefixOf(-15).Of(u) }
func Atto(u *Unit) *Unit  { return prefixOf(-18).Of(u) }
func Zepto(u *Unit) *Unit { return prefixOf(-21).Of(u) }
func Yocto(u *Unit) *Unit { return prefixOf(-24).Of(u) }

// Common prefixed units.
var (
	Kilometre   = Kilo(Metre)
	Centimetre  = Centi(Metre)
	Millimetre  = Milli(Metre)
	Kilojoule   = Kilo(Joule)
	Kilowatt    = Kilo(Watt)
	Kilopascal  = Kilo(Pascal)
	Milligram   = Milli(Gram)
	Millisecond = Milli(Second)
)
