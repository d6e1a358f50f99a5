package config

import "sort"

// Presets are unit packs that can be merged into any config.
var Presets = map[string]*Config{
	"imperial": {
		Units: []UnitConfig{
			{Symbol: "ch", Of: "m", Scale: "20.1168"},
			{Symbol: "fur", Of: "m", Scale: "201.168"},
			{Symbol: "oz", Of: "kg", Scale: "0.028349523125"},
			{Symbol: "st", Of: "kg", Scale: "6.35029318"},
			{Symbol: "gal", Of: "m3", Scale: "0.003785411784"},
			{Symbol: "mph", Of: "m/s", Scale: "0.44704"},
			{Symbol: "°R", Of: "K", Scale: "5/9"},
		},
	},
	"astronomy": {
		Units: []UnitConfig{
			{Symbol: "au", Of: "m", Scale: "149597870700"},
			{Symbol: "ly", Of: "m", Scale: "9460730472580800"},
			{Symbol: "pc", Of: "au", Scale: "206264.80624709636"},
			{Symbol: "M☉", Of: "kg", Scale: "1.98847e30"},
		},
	},
	"nautical": {
		Units: []UnitConfig{
			{Symbol: "ftm", Of: "m", Scale: "1.8288"},
			{Symbol: "cable", Of: "nmi", Scale: "1/10"},
			{Symbol: "lea", Of: "nmi", Scale: "3"},
		},
	},
	"information": {
		Model: "information",
		Dimensions: []DimensionConfig{
			{Symbol: "D", Name: "information", Standard: "bit"},
		},
		Units: []UnitConfig{
			{Symbol: "bit"},
			{Symbol: "byte", Of: "bit", Scale: "8"},
			{Symbol: "KiB", Of: "byte", Scale: "1024"},
			{Symbol: "MiB", Of: "KiB", Scale: "1024"},
		},
		Models: []ModelConfig{
			{Name: "information", Overrides: []OverrideConfig{
				{Unit: "bit", Dimension: map[string]int{"D": 1}},
			}},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
