package unit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/measure"
	"github.com/zeebo/xxh3"
)

type Kind int

const (
	KindBase Kind = iota
	KindAlternate
	KindTransformed
	KindProduct
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindAlternate:
		return "alternate"
	case KindTransformed:
		return "transformed"
	case KindProduct:
		return "product"
	}
	return "unknown"
}

// Element is one factor of a product unit.
type Element struct {
	Unit *Unit
	Pow  int
}

// Unit is an immutable unit of measurement. Units are interned by their
// structural key, so structurally equal units are usually the same pointer;
// Equal compares keys and is always safe to use.
type Unit struct {
	kind     Kind
	symbol   string
	parent   *Unit
	toParent converter.Converter
	elements []Element
	key      string
	hash     uint64
}

var interned sync.Map // key -> *Unit

func intern(u *Unit) *Unit {
	if existing, ok := interned.Load(u.key); ok {
		return existing.(*Unit)
	}
	u.hash = xxh3.HashString(u.key)
	actual, _ := interned.LoadOrStore(u.key, u)
	return actual.(*Unit)
}

// One is the dimensionless unit.
var One = intern(&Unit{kind: KindProduct, key: "p:"})

// NewBase returns the base unit with the given symbol, creating it on first
// use. Its dimension comes from the active physical model.
func NewBase(symbol string) (*Unit, error) {
	if symbol == "" {
		return nil, fmt.Errorf("unit: empty base symbol")
	}
	u := intern(&Unit{kind: KindBase, symbol: symbol, key: "b:" + symbol})
	if err := Register(symbol, u); err != nil {
		return nil, err
	}
	return u, nil
}

// NewAlternate names a system unit, e.g. newton for kg·m/s². The parent
// must not contain transformed units.
func NewAlternate(symbol string, parent *Unit) (*Unit, error) {
	if symbol == "" {
		return nil, fmt.Errorf("unit: empty alternate symbol")
	}
	if !parent.IsSystem() {
		return nil, fmt.Errorf("unit: alternate %q needs a system unit parent, got %s", symbol, parent)
	}
	u := intern(&Unit{kind: KindAlternate, symbol: symbol, parent: parent, key: "a:" + symbol})
	if !u.parent.Equal(parent) {
		return nil, fmt.Errorf("unit: alternate %q already defined over %s", symbol, u.parent)
	}
	if err := Register(symbol, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Must panics if err is non-nil. It is meant for package-level unit tables.
func Must(u *Unit, err error) *Unit {
	if err != nil {
		panic(err)
	}
	return u
}

func (u *Unit) Kind() Kind { return u.kind }

// Symbol is the own symbol of a base or alternate unit, empty otherwise.
func (u *Unit) Symbol() string { return u.symbol }

// Parent is the unit an alternate or transformed unit is defined over.
func (u *Unit) Parent() *Unit { return u.parent }

// ToParent converts values of a transformed unit into its parent. It is the
// identity for every other kind.
func (u *Unit) ToParent() converter.Converter {
	if u.toParent == nil {
		return converter.Identity()
	}
	return u.toParent
}

// Elements returns the factors of a product unit, or the unit itself with
// exponent one for any other kind. One has no elements.
func (u *Unit) Elements() []Element {
	if u.kind != KindProduct {
		return []Element{{Unit: u, Pow: 1}}
	}
	out := make([]Element, len(u.elements))
	copy(out, u.elements)
	return out
}

func (u *Unit) Key() string  { return u.key }
func (u *Unit) Hash() uint64 { return u.hash }

func (u *Unit) Equal(other *Unit) bool {
	if u == other {
		return true
	}
	return u != nil && other != nil && u.key == other.key
}

// IsSystem reports whether u is built only from base and alternate units.
func (u *Unit) IsSystem() bool {
	switch u.kind {
	case KindBase, KindAlternate:
		return true
	case KindTransformed:
		return false
	}
	for _, e := range u.elements {
		if !e.Unit.IsSystem() {
			return false
		}
	}
	return true
}

// Transform returns the unit whose values convert into u through c.
// Nested transforms collapse onto the innermost parent.
func (u *Unit) Transform(c converter.Converter) *Unit {
	if c.IsIdentity() {
		return u
	}
	parent, conv := u, c
	if u.kind == KindTransformed {
		parent = u.parent
		conv = converter.Compose(c, u.toParent)
		if conv.IsIdentity() {
			return parent
		}
	}
	return intern(&Unit{
		kind:     KindTransformed,
		parent:   parent,
		toParent: conv,
		key:      "t:{" + parent.key + "}" + conv.String(),
	})
}

// Times returns u scaled by factor: Metre.Times(1000) is the kilometre.
func (u *Unit) Times(factor float64) (*Unit, error) {
	c, err := converter.Linear(factor)
	if err != nil {
		return nil, err
	}
	return u.Transform(c), nil
}

// DividedBy returns u divided by factor: Kilogram.DividedBy(1000) is the gram.
func (u *Unit) DividedBy(factor float64) (*Unit, error) {
	c, err := converter.Linear(factor)
	if err != nil {
		return nil, err
	}
	return u.Transform(c.Inverse()), nil
}

// Plus returns u shifted by offset: Kelvin.Plus(273.15) is degree Celsius.
func (u *Unit) Plus(offset float64) (*Unit, error) {
	c, err := converter.Offset(offset)
	if err != nil {
		return nil, err
	}
	return u.Transform(c), nil
}

func (u *Unit) Multiply(other *Unit) *Unit {
	elems := append(u.Elements(), other.Elements()...)
	return product(elems)
}

// Per divides u by other. u.Per(u) is One.
func (u *Unit) Per(other *Unit) *Unit {
	return u.Multiply(other.Pow(-1))
}

func (u *Unit) Inverse() *Unit {
	return u.Pow(-1)
}

// Pow raises u to an integer power. Pow(0) is One.
func (u *Unit) Pow(n int) *Unit {
	if n == 0 {
		return One
	}
	elems := u.Elements()
	for i := range elems {
		elems[i].Pow *= n
	}
	return product(elems)
}

// Root takes the n-th root of u. Every exponent must be divisible by n.
func (u *Unit) Root(n int) (*Unit, error) {
	if n == 0 {
		return nil, measure.ErrZeroRoot
	}
	elems := u.Elements()
	for i := range elems {
		if elems[i].Pow%n != 0 {
			return nil, fmt.Errorf("%w: %s has no integral root of index %d", measure.ErrArithmetic, u, n)
		}
		elems[i].Pow /= n
	}
	return product(elems), nil
}

func product(elems []Element) *Unit {
	merged := make(map[string]*Element, len(elems))
	order := make([]string, 0, len(elems))
	for _, e := range elems {
		if m, ok := merged[e.Unit.key]; ok {
			m.Pow += e.Pow
			continue
		}
		cp := e
		merged[e.Unit.key] = &cp
		order = append(order, e.Unit.key)
	}
	sort.Strings(order)

	out := make([]Element, 0, len(order))
	for _, k := range order {
		if e := merged[k]; e.Pow != 0 {
			out = append(out, *e)
		}
	}
	switch {
	case len(out) == 0:
		return One
	case len(out) == 1 && out[0].Pow == 1:
		return out[0].Unit
	}

	var b strings.Builder
	b.WriteString("p:")
	for i, e := range out {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString("{" + e.Unit.key + "}^" + strconv.Itoa(e.Pow))
	}
	return intern(&Unit{kind: KindProduct, elements: out, key: b.String()})
}

// String returns the registered label of u, or a structural rendering such
// as "m·s^-2" or "m[x*1000]".
func (u *Unit) String() string {
	if u == nil {
		return "<nil>"
	}
	if l, ok := labelOf(u); ok {
		return l
	}
	switch u.kind {
	case KindBase, KindAlternate:
		return u.symbol
	case KindTransformed:
		return u.parent.String() + "[" + u.toParent.String() + "]"
	}
	if len(u.elements) == 0 {
		return "1"
	}
	parts := make([]string, len(u.elements))
	for i, e := range u.elements {
		parts[i] = e.Unit.String()
		if e.Pow != 1 {
			parts[i] += "^" + strconv.Itoa(e.Pow)
		}
	}
	return strings.Join(parts, "·")
}
