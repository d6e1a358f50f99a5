package converter

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/san-kum/unitlab/internal/measure"
)

// Converter is an invertible transform between two unit scales.
// Implementations are immutable and hold no hidden state.
type Converter interface {
	Convert(x float64) float64
	Inverse() Converter
	IsIdentity() bool
	// IsLinear reports whether the transform is a pure scale (no offset),
	// which is required for converters used inside product units.
	IsLinear() bool
	Equal(other Converter) bool
	String() string
}

type identity struct{}

var identityConverter Converter = identity{}

func Identity() Converter { return identityConverter }

func (identity) Convert(x float64) float64  { return x }
func (identity) Inverse() Converter         { return identityConverter }
func (identity) IsIdentity() bool           { return true }
func (identity) IsLinear() bool             { return true }
func (identity) String() string             { return "x" }
func (identity) Equal(other Converter) bool { return other.IsIdentity() }

// affine computes y = x*scale + offset with exact rational coefficients.
type affine struct {
	scale  *big.Rat
	offset *big.Rat

	num, den float64
	ratio    float64
	off      float64
}

const maxExactFloat = 1 << 53

func newAffine(scale, offset *big.Rat) Converter {
	if scale.Cmp(ratOne) == 0 && offset.Sign() == 0 {
		return identityConverter
	}
	a := &affine{scale: scale, offset: offset, den: 1}
	n, d := scale.Num(), scale.Denom()
	if n.IsInt64() && d.IsInt64() && abs64(n.Int64()) <= maxExactFloat && d.Int64() <= maxExactFloat {
		a.num, a.den = float64(n.Int64()), float64(d.Int64())
	} else {
		a.num, _ = scale.Float64()
	}
	a.ratio, _ = scale.Float64()
	a.off, _ = offset.Float64()
	return a
}

var ratOne = big.NewRat(1, 1)

func (a *affine) Convert(x float64) float64 {
	y := x * a.num
	if a.den != 1 {
		if math.IsInf(y, 0) && !math.IsInf(x, 0) {
			// x*num overflowed but the result may still be finite
			y = x * a.ratio
		} else {
			y /= a.den
		}
	}
	if a.offset.Sign() != 0 {
		y += a.off
	}
	return y
}

func (a *affine) Inverse() Converter {
	inv := new(big.Rat).Inv(a.scale)
	off := new(big.Rat).Mul(a.offset, inv)
	return newAffine(inv, off.Neg(off))
}

func (a *affine) IsIdentity() bool { return false }
func (a *affine) IsLinear() bool   { return a.offset.Sign() == 0 }

func (a *affine) Equal(other Converter) bool {
	o, ok := other.(*affine)
	return ok && a.scale.Cmp(o.scale) == 0 && a.offset.Cmp(o.offset) == 0
}

func (a *affine) String() string {
	var b strings.Builder
	b.WriteString("x")
	if a.scale.Cmp(ratOne) != 0 {
		b.WriteString("*")
		b.WriteString(a.scale.RatString())
	}
	switch a.offset.Sign() {
	case 1:
		b.WriteString("+")
		b.WriteString(a.offset.RatString())
	case -1:
		b.WriteString("-")
		b.WriteString(new(big.Rat).Abs(a.offset).RatString())
	}
	return b.String()
}

// Linear returns y = x*scale.
func Linear(scale float64) (Converter, error) {
	return Affine(scale, 0)
}

// Affine returns y = x*scale + offset. The scale must be finite and non-zero.
func Affine(scale, offset float64) (Converter, error) {
	s, err := ratFromFloat(scale)
	if err != nil {
		return nil, err
	}
	o, err := ratFromFloat(offset)
	if err != nil {
		return nil, err
	}
	return fromRats(s, o)
}

// Offset returns y = x + offset.
func Offset(offset float64) (Converter, error) {
	return Affine(1, offset)
}

// Rational returns y = x*num/den, exact for decimal prefixes.
func Rational(num, den int64) (Converter, error) {
	if den == 0 {
		return nil, fmt.Errorf("%w: zero denominator", measure.ErrInvalidConverter)
	}
	return fromRats(big.NewRat(num, den), new(big.Rat))
}

// Exact parses decimal or fractional coefficients ("0.3048", "5/9") without
// going through binary floating point. An empty offset means zero.
func Exact(scale, offset string) (Converter, error) {
	s, ok := new(big.Rat).SetString(scale)
	if !ok {
		return nil, fmt.Errorf("%w: bad scale %q", measure.ErrInvalidConverter, scale)
	}
	o := new(big.Rat)
	if offset != "" {
		if _, ok := o.SetString(offset); !ok {
			return nil, fmt.Errorf("%w: bad offset %q", measure.ErrInvalidConverter, offset)
		}
	}
	return fromRats(s, o)
}

func fromRats(scale, offset *big.Rat) (Converter, error) {
	if scale.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero scale is not invertible", measure.ErrInvalidConverter)
	}
	return newAffine(scale, offset), nil
}

func ratFromFloat(f float64) (*big.Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite coefficient %v", measure.ErrInvalidConverter, f)
	}
	return new(big.Rat).SetFloat64(f), nil
}

// Must panics if err is non-nil. It is meant for package-level unit tables.
func Must(c Converter, err error) Converter {
	if err != nil {
		panic(err)
	}
	return c
}

// Coefficients returns copies of the scale and offset of an affine or
// identity converter; ok is false for any other converter.
func Coefficients(c Converter) (scale, offset *big.Rat, ok bool) {
	switch v := c.(type) {
	case identity:
		return big.NewRat(1, 1), new(big.Rat), true
	case *affine:
		return new(big.Rat).Set(v.scale), new(big.Rat).Set(v.offset), true
	}
	return nil, nil, false
}

// Pow raises a linear converter to an integer power.
func Pow(c Converter, n int) (Converter, error) {
	if n == 0 || c.IsIdentity() {
		return identityConverter, nil
	}
	a, ok := c.(*affine)
	if !ok || !a.IsLinear() {
		return nil, fmt.Errorf("%w: %s is not linear and cannot be raised to a power", measure.ErrInvalidConverter, c)
	}
	k := n
	if k < 0 {
		k = -k
	}
	s := new(big.Rat).SetInt64(1)
	for i := 0; i < k; i++ {
		s.Mul(s, a.scale)
	}
	if n < 0 {
		s.Inv(s)
	}
	return newAffine(s, new(big.Rat)), nil
}

type logConverter struct{ base float64 }

type expConverter struct{ base float64 }

func checkBase(base float64) error {
	if !(base > 0) || base == 1 || math.IsInf(base, 0) {
		return fmt.Errorf("%w: logarithm base %v", measure.ErrInvalidConverter, base)
	}
	return nil
}

// Log returns y = log_base(x).
func Log(base float64) (Converter, error) {
	if err := checkBase(base); err != nil {
		return nil, err
	}
	return logConverter{base: base}, nil
}

// Exp returns y = base^x.
func Exp(base float64) (Converter, error) {
	if err := checkBase(base); err != nil {
		return nil, err
	}
	return expConverter{base: base}, nil
}

func (l logConverter) Convert(x float64) float64 {
	if l.base == math.E {
		return math.Log(x)
	}
	return math.Log(x) / math.Log(l.base)
}

func (l logConverter) Inverse() Converter { return expConverter(l) }
func (l logConverter) IsIdentity() bool   { return false }
func (l logConverter) IsLinear() bool     { return false }
func (l logConverter) String() string     { return "log_" + formatBase(l.base) + "(x)" }

func (l logConverter) Equal(other Converter) bool {
	o, ok := other.(logConverter)
	return ok && o.base == l.base
}

func (e expConverter) Convert(x float64) float64 {
	if e.base == math.E {
		return math.Exp(x)
	}
	return math.Pow(e.base, x)
}

func (e expConverter) Inverse() Converter { return logConverter(e) }
func (e expConverter) IsIdentity() bool   { return false }
func (e expConverter) IsLinear() bool     { return false }
func (e expConverter) String() string     { return formatBase(e.base) + "^x" }

func (e expConverter) Equal(other Converter) bool {
	o, ok := other.(expConverter)
	return ok && o.base == e.base
}

func formatBase(b float64) string {
	if b == math.E {
		return "e"
	}
	return strconv.FormatFloat(b, 'g', -1, 64)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
