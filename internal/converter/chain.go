package converter

import (
	"math/big"
	"strings"
)

// chain applies its steps in order. Steps are never identities and no two
// adjacent steps can be folded into one.
type chain []Converter

// Compose returns a converter equivalent to applying a then b. Adjacent
// affine steps are folded exactly, and a logarithm next to the exponential
// of the same base cancels, so chains stay short.
func Compose(a, b Converter) Converter {
	if a.IsIdentity() {
		return b
	}
	if b.IsIdentity() {
		return a
	}
	all := append(steps(a), steps(b)...)
	return simplify(all)
}

// Chain composes converters left to right.
func Chain(cs ...Converter) Converter {
	out := identityConverter
	for _, c := range cs {
		out = Compose(out, c)
	}
	return out
}

func steps(c Converter) []Converter {
	if ch, ok := c.(chain); ok {
		out := make([]Converter, len(ch))
		copy(out, ch)
		return out
	}
	return []Converter{c}
}

func simplify(in []Converter) Converter {
	out := make([]Converter, 0, len(in))
	for _, s := range in {
		for len(out) > 0 && !s.IsIdentity() {
			merged, ok := merge(out[len(out)-1], s)
			if !ok {
				break
			}
			out = out[:len(out)-1]
			s = merged
		}
		if s.IsIdentity() {
			continue
		}
		out = append(out, s)
	}
	switch len(out) {
	case 0:
		return identityConverter
	case 1:
		return out[0]
	}
	return chain(out)
}

func merge(first, second Converter) (Converter, bool) {
	switch f := first.(type) {
	case *affine:
		if s, ok := second.(*affine); ok {
			// (x*s1 + o1)*s2 + o2
			scale := new(big.Rat).Mul(f.scale, s.scale)
			offset := new(big.Rat).Mul(f.offset, s.scale)
			offset.Add(offset, s.offset)
			return newAffine(scale, offset), true
		}
	case logConverter:
		if s, ok := second.(expConverter); ok && s.base == f.base {
			return identityConverter, true
		}
	case expConverter:
		if s, ok := second.(logConverter); ok && s.base == f.base {
			return identityConverter, true
		}
	}
	return nil, false
}

func (c chain) Convert(x float64) float64 {
	for _, s := range c {
		x = s.Convert(x)
	}
	return x
}

func (c chain) Inverse() Converter {
	inv := make([]Converter, len(c))
	for i, s := range c {
		inv[len(c)-1-i] = s.Inverse()
	}
	return simplify(inv)
}

func (c chain) IsIdentity() bool { return false }
func (c chain) IsLinear() bool   { return false }

func (c chain) Equal(other Converter) bool {
	o, ok := other.(chain)
	if !ok || len(o) != len(c) {
		return false
	}
	for i := range c {
		if !c[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (c chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}
