package store

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/unitlab/internal/physics"
	"github.com/san-kum/unitlab/internal/unit"
)

// Catalog is the structural view of every registered unit, as consumed by
// a formatting layer.
type Catalog struct {
	Model string      `json:"model"`
	Units []UnitEntry `json:"units"`
}

type UnitEntry struct {
	Symbol     string         `json:"symbol"`
	Kind       string         `json:"kind"`
	Dimension  string         `json:"dimension"`
	Terms      map[string]int `json:"terms,omitempty"`
	SystemUnit string         `json:"system_unit"`
	Parent     string         `json:"parent,omitempty"`
	ToParent   string         `json:"to_parent,omitempty"`
	ToSystem   string         `json:"to_system,omitempty"`
	Elements   []ElementEntry `json:"elements,omitempty"`
}

type ElementEntry struct {
	Unit string `json:"unit"`
	Pow  int    `json:"pow"`
}

// BuildCatalog describes the registered units under the model active in ctx.
func BuildCatalog(ctx context.Context) Catalog {
	symbols := unit.Symbols()
	c := Catalog{
		Model: physics.Active(ctx).Name(),
		Units: make([]UnitEntry, 0, len(symbols)),
	}
	for _, sym := range symbols {
		u, _ := unit.Lookup(sym)
		c.Units = append(c.Units, Describe(ctx, sym, u))
	}
	return c
}

// Describe builds the catalog entry for one unit.
func Describe(ctx context.Context, symbol string, u *unit.Unit) UnitEntry {
	d := unit.Dimension(ctx, u)
	e := UnitEntry{
		Symbol:     symbol,
		Kind:       u.Kind().String(),
		Dimension:  d.String(),
		SystemUnit: u.SystemUnit().String(),
	}
	if terms := d.Terms(); len(terms) > 0 {
		e.Terms = make(map[string]int, len(terms))
		for _, t := range terms {
			e.Terms[t.Base.Symbol()] = t.Exp
		}
	}
	if p := u.Parent(); p != nil {
		e.Parent = p.String()
	}
	if u.Kind() == unit.KindTransformed {
		e.ToParent = u.ToParent().String()
	}
	if c, err := u.ToSystem(); err == nil && !c.IsIdentity() {
		e.ToSystem = c.String()
	}
	if u.Kind() == unit.KindProduct {
		for _, el := range u.Elements() {
			e.Elements = append(e.Elements, ElementEntry{Unit: el.Unit.String(), Pow: el.Pow})
		}
	}
	return e
}

func WriteJSON(w io.Writer, c Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func ExportJSON(path string, c Catalog) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, c)
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
