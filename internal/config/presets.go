package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Output: DefaultOutput, Dim: DefaultDimension, Steps: 12,
		GIF: GIFConfig{Delay: 20, Palette: "exact"},
	},
	"folded": {
		Output: "BakerFolded.gif", Dim: DefaultDimension, Steps: 12, Folded: true,
		GIF: GIFConfig{Delay: 20, Palette: "exact"},
	},
	"noise": {
		Output: "BakerNoise.gif", Dim: 128, Steps: 8, Random: true, Seed: 1,
		GIF: GIFConfig{Delay: 25, Palette: "kmeans", Dither: true},
	},
	"noise-folded": {
		Output: "BakerNoiseFolded.gif", Dim: 128, Steps: 8, Random: true, Folded: true, Seed: 1,
		GIF: GIFConfig{Delay: 25, Palette: "kmeans", Dither: true},
	},
	"large": {
		Output: "BakerLarge.gif", Dim: 400, Steps: 16,
		GIF: GIFConfig{Delay: 15, Palette: "auto"},
	},
}

// GetPreset returns a copy of the named preset with the data directory
// filled in, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
