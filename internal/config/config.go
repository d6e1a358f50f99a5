package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/dimension"
	"github.com/san-kum/unitlab/internal/physics"
	"github.com/san-kum/unitlab/internal/unit"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel     = "standard"
	DefaultLogLevel  = "info"
	DefaultPrecision = 10
	DefaultSamples   = 60
)

type Config struct {
	Model      string            `yaml:"model"`
	LogLevel   string            `yaml:"log_level"`
	Precision  int               `yaml:"precision"`
	Samples    int               `yaml:"samples"`
	Dimensions []DimensionConfig `yaml:"dimensions,omitempty"`
	Units      []UnitConfig      `yaml:"units,omitempty"`
	Models     []ModelConfig     `yaml:"models,omitempty"`
}

// DimensionConfig declares a new base dimension. Standard names the unit
// symbol used as its pivot once units are registered.
type DimensionConfig struct {
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Standard string `yaml:"standard,omitempty"`
}

// UnitConfig declares a unit. Without Of it is a new base unit; with
// Alternate it names the system unit Of; otherwise it is Of transformed
// by Scale and Offset (exact decimals or fractions).
type UnitConfig struct {
	Symbol    string `yaml:"symbol"`
	Of        string `yaml:"of,omitempty"`
	Scale     string `yaml:"scale,omitempty"`
	Offset    string `yaml:"offset,omitempty"`
	Alternate bool   `yaml:"alternate,omitempty"`
}

type ModelConfig struct {
	Name      string           `yaml:"name"`
	Base      string           `yaml:"base,omitempty"`
	Overrides []OverrideConfig `yaml:"overrides"`
}

// OverrideConfig maps a base unit to a dimension given as base dimension
// symbol -> exponent, with an optional scale into that dimension.
type OverrideConfig struct {
	Unit      string         `yaml:"unit"`
	Dimension map[string]int `yaml:"dimension"`
	Scale     string         `yaml:"scale,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     DefaultModel,
		LogLevel:  DefaultLogLevel,
		Precision: DefaultPrecision,
		Samples:   DefaultSamples,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Merge appends the declarations of p to c. A non-empty model in p wins.
func (c *Config) Merge(p *Config) {
	if p == nil {
		return
	}
	if p.Model != "" {
		c.Model = p.Model
	}
	c.Dimensions = append(c.Dimensions, p.Dimensions...)
	c.Units = append(c.Units, p.Units...)
	c.Models = append(c.Models, p.Models...)
}

// applied holds the model declarations registered by Apply, by name.
var applied sync.Map

// Apply registers the declared dimensions, units and models, in that
// order. Units may refer to units declared earlier in the same list.
// Applying the same declarations again is a no-op; redeclaring a model
// name with a different definition fails.
func (c *Config) Apply() error {
	for _, d := range c.Dimensions {
		if d.Symbol == "" {
			return fmt.Errorf("config: dimension with empty symbol")
		}
		dimension.NewBase(d.Symbol, d.Name)
	}
	for _, uc := range c.Units {
		if err := applyUnit(uc); err != nil {
			return fmt.Errorf("config: unit %q: %w", uc.Symbol, err)
		}
	}
	for _, d := range c.Dimensions {
		if d.Standard == "" {
			continue
		}
		u, ok := unit.Lookup(d.Standard)
		if !ok {
			return fmt.Errorf("config: dimension %q: unknown standard unit %q", d.Symbol, d.Standard)
		}
		b, _ := dimension.LookupBase(d.Symbol)
		unit.SetStandard(b, u)
	}
	for _, mc := range c.Models {
		if prev, ok := applied.Load(mc.Name); ok {
			if cmp.Equal(prev.(ModelConfig), mc, cmpopts.EquateEmpty()) {
				continue
			}
			return fmt.Errorf("config: model %q already declared with a different definition", mc.Name)
		}
		m, err := buildModel(mc)
		if err != nil {
			return fmt.Errorf("config: model %q: %w", mc.Name, err)
		}
		if err := physics.Register(m); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		applied.Store(mc.Name, mc)
	}
	return nil
}

func applyUnit(uc UnitConfig) error {
	if uc.Symbol == "" {
		return fmt.Errorf("empty symbol")
	}
	if uc.Of == "" {
		_, err := unit.NewBase(uc.Symbol)
		return err
	}
	parent, ok := unit.Lookup(uc.Of)
	if !ok {
		return fmt.Errorf("unknown unit %q", uc.Of)
	}
	if uc.Alternate {
		_, err := unit.NewAlternate(uc.Symbol, parent)
		return err
	}
	scale := uc.Scale
	if scale == "" {
		scale = "1"
	}
	c, err := converter.Exact(scale, uc.Offset)
	if err != nil {
		return err
	}
	return unit.Register(uc.Symbol, parent.Transform(c))
}

func buildModel(mc ModelConfig) (physics.Model, error) {
	if mc.Name == "" {
		return nil, fmt.Errorf("empty name")
	}
	base := physics.Standard
	if mc.Base != "" {
		m, ok := physics.Lookup(mc.Base)
		if !ok {
			return nil, fmt.Errorf("unknown base model %q", mc.Base)
		}
		base = m
	}
	overrides := make(map[string]physics.Mapping, len(mc.Overrides))
	for _, o := range mc.Overrides {
		d, err := dimension.FromSymbols(o.Dimension)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", o.Unit, err)
		}
		mapping := physics.Mapping{Dimension: d}
		if o.Scale != "" {
			t, err := converter.Exact(o.Scale, "")
			if err != nil {
				return nil, fmt.Errorf("unit %q: %w", o.Unit, err)
			}
			mapping.Transform = t
		}
		overrides[o.Unit] = mapping
	}
	return physics.New(mc.Name, base, overrides), nil
}

// ActiveModel resolves the configured model name.
func (c *Config) ActiveModel() (physics.Model, error) {
	name := c.Model
	if name == "" {
		name = DefaultModel
	}
	m, ok := physics.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("config: unknown model %q (available: %v)", name, physics.Names())
	}
	return m, nil
}
