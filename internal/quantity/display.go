package quantity

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/san-kum/unitlab/internal/dimension"
	"github.com/san-kum/unitlab/internal/measure"
	"github.com/san-kum/unitlab/internal/unit"
)

var display sync.Map // dimension key -> *unit.Unit

// Register makes u the display unit for quantities of dimension d.
func Register(d dimension.Dimension, u *unit.Unit) error {
	if got := unit.Dimension(context.Background(), u); !got.Equal(d) {
		return fmt.Errorf("%w: %s is %s, not %s", measure.ErrDimensionMismatch, u, got, d)
	}
	display.Store(d.Key(), u)
	return nil
}

// DisplayUnit returns the registered display unit for d, falling back to
// the standard unit.
func DisplayUnit(d dimension.Dimension) (*unit.Unit, error) {
	if u, ok := display.Load(d.Key()); ok {
		return u.(*unit.Unit), nil
	}
	return unit.StandardUnit(d)
}

// Display renders q in the display unit of its dimension, or as-is when
// no conversion is possible.
func (q Quantity[K]) Display() string {
	u, err := DisplayUnit(unit.Dimension(context.Background(), q.unit))
	if err != nil {
		return q.String()
	}
	v, err := q.ValueIn(u)
	if err != nil {
		return q.String()
	}
	if u == unit.One {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64) + " " + u.String()
}

func init() {
	for _, u := range []*unit.Unit{unit.Newton, unit.Joule, unit.Watt, unit.Pascal, unit.Hertz, unit.Coulomb, unit.Volt, unit.Ohm} {
		if err := Register(unit.Dimension(context.Background(), u), u); err != nil {
			panic(err)
		}
	}
}
