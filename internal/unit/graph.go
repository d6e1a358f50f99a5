package unit

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/dimension"
	"github.com/san-kum/unitlab/internal/measure"
	"github.com/san-kum/unitlab/internal/physics"
)

// Dimension returns the dimension of u under the model active in ctx.
func Dimension(ctx context.Context, u *Unit) dimension.Dimension {
	return dimensionIn(physics.Active(ctx), u)
}

func dimensionIn(m physics.Model, u *Unit) dimension.Dimension {
	switch u.kind {
	case KindBase:
		return m.Dimension(u.symbol)
	case KindAlternate, KindTransformed:
		return dimensionIn(m, u.parent)
	}
	d := dimension.None
	for _, e := range u.elements {
		d = d.Multiply(dimensionIn(m, e.Unit).Pow(e.Pow))
	}
	return d
}

// SystemUnit strips every transform from u, leaving base and alternate
// units only. It does not depend on the physical model.
func (u *Unit) SystemUnit() *Unit {
	switch u.kind {
	case KindBase, KindAlternate:
		return u
	case KindTransformed:
		return u.parent.SystemUnit()
	}
	s := One
	for _, e := range u.elements {
		s = s.Multiply(e.Unit.SystemUnit().Pow(e.Pow))
	}
	return s
}

// ToSystem converts values of u into u.SystemUnit(). Products only accept
// linear factors; a product holding an offset unit such as °C·m fails.
func (u *Unit) ToSystem() (converter.Converter, error) {
	switch u.kind {
	case KindBase, KindAlternate:
		return converter.Identity(), nil
	case KindTransformed:
		p, err := u.parent.ToSystem()
		if err != nil {
			return nil, err
		}
		return converter.Compose(u.toParent, p), nil
	}
	c := converter.Identity()
	for _, e := range u.elements {
		ec, err := e.Unit.ToSystem()
		if err != nil {
			return nil, err
		}
		pc, err := converter.Pow(ec, e.Pow)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", e.Unit, u, err)
		}
		c = converter.Compose(c, pc)
	}
	return c, nil
}

// transformIn applies the model's dimensional transforms to a system unit.
func transformIn(m physics.Model, u *Unit) (converter.Converter, error) {
	switch u.kind {
	case KindBase:
		return m.Transform(u.symbol), nil
	case KindAlternate:
		return transformIn(m, u.parent)
	case KindTransformed:
		return nil, fmt.Errorf("unit: %s is not a system unit", u)
	}
	c := converter.Identity()
	for _, e := range u.elements {
		ec, err := transformIn(m, e.Unit)
		if err != nil {
			return nil, err
		}
		pc, err := converter.Pow(ec, e.Pow)
		if err != nil {
			return nil, err
		}
		c = converter.Compose(c, pc)
	}
	return c, nil
}

// ConverterTo returns the converter from one unit to another under the
// model active in ctx. Units sharing a system unit convert without the
// model; others must have equal dimensions and are routed through the
// model's dimensional transforms.
func ConverterTo(ctx context.Context, from, to *Unit) (converter.Converter, error) {
	if from.Equal(to) {
		return converter.Identity(), nil
	}
	wrap := func(err error) error {
		return &measure.ConversionError{From: from.String(), To: to.String(), Wrapped: err}
	}

	fc, err := from.ToSystem()
	if err != nil {
		return nil, wrap(err)
	}
	tc, err := to.ToSystem()
	if err != nil {
		return nil, wrap(err)
	}

	fs, ts := from.SystemUnit(), to.SystemUnit()
	if fs.Equal(ts) {
		return converter.Compose(fc, tc.Inverse()), nil
	}

	m := physics.Active(ctx)
	fd, td := dimensionIn(m, fs), dimensionIn(m, ts)
	if !fd.Equal(td) {
		return nil, wrap(fmt.Errorf("%w: %s is %s, %s is %s", measure.ErrIncommensurable, from, fd, to, td))
	}

	ft, err := transformIn(m, fs)
	if err != nil {
		return nil, wrap(err)
	}
	tt, err := transformIn(m, ts)
	if err != nil {
		return nil, wrap(err)
	}
	return converter.Chain(fc, ft, tt.Inverse(), tc.Inverse()), nil
}

// Convert converts v from one unit to another.
func Convert(ctx context.Context, v float64, from, to *Unit) (float64, error) {
	c, err := ConverterTo(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return c.Convert(v), nil
}

// Commensurable reports whether values of a and b can be converted.
func Commensurable(ctx context.Context, a, b *Unit) bool {
	m := physics.Active(ctx)
	return dimensionIn(m, a).Equal(dimensionIn(m, b))
}

var standardBases sync.Map // *dimension.Base -> *Unit

// SetStandard makes u the pivot unit for base dimension b.
func SetStandard(b *dimension.Base, u *Unit) {
	standardBases.Store(b, u)
}

// StandardUnit returns the SI-style product of pivot units for d.
func StandardUnit(d dimension.Dimension) (*Unit, error) {
	s := One
	for _, t := range d.Terms() {
		v, ok := standardBases.Load(t.Base)
		if !ok {
			return nil, fmt.Errorf("unit: no standard unit for %s", t.Base)
		}
		s = s.Multiply(v.(*Unit).Pow(t.Exp))
	}
	return s, nil
}

// ToStandard converts values of u into the standard unit of its dimension
// under the model active in ctx.
func ToStandard(ctx context.Context, u *Unit) (converter.Converter, error) {
	s, err := StandardUnit(Dimension(ctx, u))
	if err != nil {
		return nil, err
	}
	return ConverterTo(ctx, u, s)
}
