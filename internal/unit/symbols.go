package unit

import (
	"fmt"
	"sort"
	"sync"
)

var (
	labels   sync.Map // key -> symbol
	bySymbol sync.Map // symbol -> *Unit
)

// Register binds symbol to u for Lookup and uses it as the label of u when
// u has none yet. A symbol bound to a different unit is an error.
func Register(symbol string, u *Unit) error {
	if existing, loaded := bySymbol.LoadOrStore(symbol, u); loaded && !existing.(*Unit).Equal(u) {
		return fmt.Errorf("unit: symbol %q already names %s", symbol, existing.(*Unit).key)
	}
	labels.LoadOrStore(u.key, symbol)
	return nil
}

func Lookup(symbol string) (*Unit, bool) {
	u, ok := bySymbol.Load(symbol)
	if !ok {
		return nil, false
	}
	return u.(*Unit), true
}

// Symbols lists every registered symbol in sorted order.
func Symbols() []string {
	var out []string
	bySymbol.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	sort.Strings(out)
	return out
}

func labelOf(u *Unit) (string, bool) {
	l, ok := labels.Load(u.key)
	if !ok {
		return "", false
	}
	return l.(string), true
}

func named(symbol string, u *Unit) *Unit {
	if err := Register(symbol, u); err != nil {
		panic(err)
	}
	return u
}
