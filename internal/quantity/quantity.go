package quantity

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/unitlab/internal/measure"
	"github.com/san-kum/unitlab/internal/unit"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Number is any value a quantity can be built from or narrowed to.
type Number interface {
	constraints.Integer | constraints.Float
}

// Measure is the read side of a quantity of any kind.
type Measure interface {
	Value() float64
	Unit() *unit.Unit
}

// Quantity is an immutable value in a unit whose dimension matches K.
type Quantity[K Kind] struct {
	value float64
	unit  *unit.Unit
}

// New builds a quantity of kind K. The unit's dimension under the standard
// model must equal K's dimension unless K is Any; a model selected on a
// context is not consulted. Use NewContext to check under the active model.
func New[K Kind, N Number](v N, u *unit.Unit) (Quantity[K], error) {
	return NewContext[K](context.Background(), v, u)
}

// NewContext is New with the dimension checked under the model active in ctx.
func NewContext[K Kind, N Number](ctx context.Context, v N, u *unit.Unit) (Quantity[K], error) {
	if u == nil {
		return Quantity[K]{}, fmt.Errorf("quantity: nil unit")
	}
	if !isAny[K]() {
		var k K
		got := unit.Dimension(ctx, u)
		if !got.Equal(k.Dimension()) {
			return Quantity[K]{}, fmt.Errorf("%w: %s has dimension %s, %s needs %s",
				measure.ErrDimensionMismatch, u, got, k.Name(), k.Dimension())
		}
	}
	return Quantity[K]{value: float64(v), unit: u}, nil
}

// Must panics if err is non-nil.
func Must[K Kind](q Quantity[K], err error) Quantity[K] {
	if err != nil {
		panic(err)
	}
	return q
}

// As re-tags m as kind K, checking the dimension again.
func As[K Kind](m Measure) (Quantity[K], error) {
	return New[K](m.Value(), m.Unit())
}

func (q Quantity[K]) Value() float64   { return q.value }
func (q Quantity[K]) Unit() *unit.Unit { return q.unit }

// ValueIn returns the value converted to u under the standard model.
func (q Quantity[K]) ValueIn(u *unit.Unit) (float64, error) {
	return q.ValueInContext(context.Background(), u)
}

// ValueInContext returns the value converted to u under the model active
// in ctx.
func (q Quantity[K]) ValueInContext(ctx context.Context, u *unit.Unit) (float64, error) {
	return unit.Convert(ctx, q.value, q.unit, u)
}

// To expresses q in another unit of the same kind.
func (q Quantity[K]) To(u *unit.Unit) (Quantity[K], error) {
	v, err := q.ValueIn(u)
	if err != nil {
		return Quantity[K]{}, err
	}
	return Quantity[K]{value: v, unit: u}, nil
}

// ValueAs converts q to u and narrows the result to N. Integer targets
// truncate toward zero; values outside the range of N fail with
// ErrArithmetic.
func ValueAs[N Number, K Kind](q Quantity[K], u *unit.Unit) (N, error) {
	v, err := q.ValueIn(u)
	if err != nil {
		return 0, err
	}
	return narrow[N](v)
}

func narrow[N Number](v float64) (N, error) {
	half := 0.5
	if N(half) != 0 {
		n := N(v)
		if math.IsInf(float64(n), 0) && !math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v overflows %T", measure.ErrArithmetic, v, n)
		}
		return n, nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		var zero N
		return 0, fmt.Errorf("%w: %v has no integer value for %T", measure.ErrArithmetic, v, zero)
	}
	t := math.Trunc(v)
	n := N(t)
	if float64(n) != t {
		return 0, fmt.Errorf("%w: %v overflows %T", measure.ErrArithmetic, v, n)
	}
	return n, nil
}

// Equal reports whether q and o have the same unit and the same value.
// Quantities of equal magnitude in different units are not Equal; use
// Compare for that.
func (q Quantity[K]) Equal(o Quantity[K]) bool {
	return q.unit.Equal(o.unit) && totalOrder(q.value) == totalOrder(o.value)
}

// Compare converts o into q's unit and orders the values by the IEEE-754
// total order: -NaN < -Inf < ... < -0 < +0 < ... < +Inf < +NaN.
func (q Quantity[K]) Compare(o Quantity[K]) (int, error) {
	return q.CompareContext(context.Background(), o)
}

func (q Quantity[K]) CompareContext(ctx context.Context, o Quantity[K]) (int, error) {
	v, err := unit.Convert(ctx, o.value, o.unit, q.unit)
	if err != nil {
		return 0, err
	}
	a, b := totalOrder(q.value), totalOrder(v)
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

// totalOrder maps float bits onto uint64 so that unsigned comparison
// follows the IEEE-754 totalOrder predicate.
func totalOrder(f float64) uint64 {
	b := math.Float64bits(f)
	if b>>63 == 1 {
		return ^b
	}
	return b | 1<<63
}

// Hash is consistent with Equal.
func (q Quantity[K]) Hash() uint64 {
	var buf [16]byte
	if q.unit != nil {
		binary.LittleEndian.PutUint64(buf[:8], q.unit.Hash())
	}
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(q.value))
	return xxh3.Hash(buf[:])
}

// Multiply composes the units; no conversion happens first.
func (q Quantity[K]) Multiply(o Measure) Quantity[Any] {
	return Quantity[Any]{value: q.value * o.Value(), unit: q.unit.Multiply(o.Unit())}
}

func (q Quantity[K]) Divide(o Measure) Quantity[Any] {
	return Quantity[Any]{value: q.value / o.Value(), unit: q.unit.Per(o.Unit())}
}

func (q Quantity[K]) Pow(n int) Quantity[Any] {
	return Quantity[Any]{value: math.Pow(q.value, float64(n)), unit: q.unit.Pow(n)}
}

// Root fails with ErrArithmetic when the unit has no integral n-th root.
func (q Quantity[K]) Root(n int) (Quantity[Any], error) {
	u, err := q.unit.Root(n)
	if err != nil {
		return Quantity[Any]{}, err
	}
	var v float64
	switch n {
	case 2:
		v = math.Sqrt(q.value)
	case 3:
		v = math.Cbrt(q.value)
	default:
		v = math.Pow(q.value, 1/float64(n))
	}
	return Quantity[Any]{value: v, unit: u}, nil
}

// Add converts o into q's unit and adds it.
func (q Quantity[K]) Add(o Measure) (Quantity[K], error) {
	v, err := unit.Convert(context.Background(), o.Value(), o.Unit(), q.unit)
	if err != nil {
		return Quantity[K]{}, err
	}
	return Quantity[K]{value: q.value + v, unit: q.unit}, nil
}

func (q Quantity[K]) Subtract(o Measure) (Quantity[K], error) {
	v, err := unit.Convert(context.Background(), o.Value(), o.Unit(), q.unit)
	if err != nil {
		return Quantity[K]{}, err
	}
	return Quantity[K]{value: q.value - v, unit: q.unit}, nil
}

func (q Quantity[K]) Scale(f float64) Quantity[K] {
	return Quantity[K]{value: q.value * f, unit: q.unit}
}

func (q Quantity[K]) Negate() Quantity[K] {
	return Quantity[K]{value: -q.value, unit: q.unit}
}

func (q Quantity[K]) String() string {
	s := strconv.FormatFloat(q.value, 'g', -1, 64)
	if q.unit == nil || q.unit == unit.One {
		return s
	}
	return s + " " + q.unit.String()
}
