package dimension

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/san-kum/unitlab/internal/measure"
	"github.com/zeebo/xxh3"
)

// Base is an irreducible dimension. Bases compare by identity; NewBase
// returns the already registered atom when a symbol is reused.
type Base struct {
	symbol string
	name   string
	seq    uint64
}

var (
	baseSeq  atomic.Uint64
	registry sync.Map // symbol -> *Base
)

func NewBase(symbol, name string) *Base {
	if b, ok := registry.Load(symbol); ok {
		return b.(*Base)
	}
	b := &Base{symbol: symbol, name: name, seq: baseSeq.Add(1)}
	actual, _ := registry.LoadOrStore(symbol, b)
	return actual.(*Base)
}

// LookupBase finds a registered base dimension by symbol.
func LookupBase(symbol string) (*Base, bool) {
	b, ok := registry.Load(symbol)
	if !ok {
		return nil, false
	}
	return b.(*Base), true
}

func (b *Base) Symbol() string { return b.symbol }
func (b *Base) Name() string   { return b.name }
func (b *Base) String() string { return "[" + b.symbol + "]" }

var (
	BaseLength            = NewBase("L", "length")
	BaseMass              = NewBase("M", "mass")
	BaseTime              = NewBase("T", "time")
	BaseCurrent           = NewBase("I", "electric current")
	BaseTemperature       = NewBase("Θ", "temperature")
	BaseAmount            = NewBase("N", "amount of substance")
	BaseLuminousIntensity = NewBase("J", "luminous intensity")
)

var (
	None              = Dimension{}
	Length            = Of(BaseLength)
	Mass              = Of(BaseMass)
	Time              = Of(BaseTime)
	Current           = Of(BaseCurrent)
	Temperature       = Of(BaseTemperature)
	AmountOfSubstance = Of(BaseAmount)
	LuminousIntensity = Of(BaseLuminousIntensity)
)

// Term is one factor of a dimension: a base raised to a non-zero exponent.
type Term struct {
	Base *Base
	Exp  int
}

// Dimension is a product of base dimensions raised to integer powers.
// The zero value is dimensionless. Terms are kept sorted by base creation
// order with no zero exponents, so equal dimensions have equal terms.
type Dimension struct {
	terms []Term
}

func Of(b *Base) Dimension {
	return Dimension{terms: []Term{{Base: b, Exp: 1}}}
}

// FromMap builds a normalized dimension from base exponents.
func FromMap(m map[*Base]int) Dimension {
	terms := make([]Term, 0, len(m))
	for b, e := range m {
		if e != 0 {
			terms = append(terms, Term{Base: b, Exp: e})
		}
	}
	return normalize(terms)
}

// FromSymbols builds a dimension from base symbols such as {"L": 1, "T": -2}.
func FromSymbols(m map[string]int) (Dimension, error) {
	bases := make(map[*Base]int, len(m))
	for sym, e := range m {
		b, ok := LookupBase(sym)
		if !ok {
			return None, fmt.Errorf("dimension: unknown base %q", sym)
		}
		bases[b] += e
	}
	return FromMap(bases), nil
}

func normalize(terms []Term) Dimension {
	if len(terms) == 0 {
		return None
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Base.seq < terms[j].Base.seq })
	return Dimension{terms: terms}
}

func (d Dimension) IsDimensionless() bool { return len(d.terms) == 0 }

// Terms returns the normalized factors in a stable order.
func (d Dimension) Terms() []Term {
	out := make([]Term, len(d.terms))
	copy(out, d.terms)
	return out
}

// Decompose returns the base exponents. Dimensionless yields an empty map.
func (d Dimension) Decompose() map[*Base]int {
	m := make(map[*Base]int, len(d.terms))
	for _, t := range d.terms {
		m[t.Base] = t.Exp
	}
	return m
}

// Exponent returns the exponent of b, zero when absent.
func (d Dimension) Exponent(b *Base) int {
	for _, t := range d.terms {
		if t.Base == b {
			return t.Exp
		}
	}
	return 0
}

func (d Dimension) Multiply(other Dimension) Dimension {
	if len(other.terms) == 0 {
		return d
	}
	if len(d.terms) == 0 {
		return other
	}
	m := d.Decompose()
	for _, t := range other.terms {
		m[t.Base] += t.Exp
	}
	return FromMap(m)
}

func (d Dimension) Divide(other Dimension) Dimension {
	return d.Multiply(other.Pow(-1))
}

func (d Dimension) Pow(n int) Dimension {
	if n == 0 || len(d.terms) == 0 {
		return None
	}
	terms := make([]Term, len(d.terms))
	for i, t := range d.terms {
		terms[i] = Term{Base: t.Base, Exp: t.Exp * n}
	}
	return Dimension{terms: terms}
}

// Root divides every exponent by n. Fractional exponents are rejected.
func (d Dimension) Root(n int) (Dimension, error) {
	if n == 0 {
		return None, measure.ErrZeroRoot
	}
	terms := make([]Term, len(d.terms))
	for i, t := range d.terms {
		if t.Exp%n != 0 {
			return None, fmt.Errorf("%w: %s has no integral root of index %d", measure.ErrArithmetic, d, n)
		}
		terms[i] = Term{Base: t.Base, Exp: t.Exp / n}
	}
	if len(terms) == 0 {
		return None, nil
	}
	return Dimension{terms: terms}, nil
}

func (d Dimension) Equal(other Dimension) bool {
	if len(d.terms) != len(other.terms) {
		return false
	}
	for i, t := range d.terms {
		if other.terms[i] != t {
			return false
		}
	}
	return true
}

// Key is a canonical text form, equal for equal dimensions.
func (d Dimension) Key() string {
	if len(d.terms) == 0 {
		return "1"
	}
	var b strings.Builder
	for i, t := range d.terms {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(t.Base.symbol)
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(t.Exp))
	}
	return b.String()
}

func (d Dimension) Hash() uint64 {
	return xxh3.HashString(d.Key())
}

// String renders the dimension as "[L][T]^-1".
func (d Dimension) String() string {
	if len(d.terms) == 0 {
		return "[1]"
	}
	var b strings.Builder
	for _, t := range d.terms {
		b.WriteString(t.Base.String())
		if t.Exp != 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(t.Exp))
		}
	}
	return b.String()
}
