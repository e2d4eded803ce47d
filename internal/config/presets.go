package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		Length: 300, Dx: 0.5, Diffusivity: 100, Steps: 5000, Profile: "step",
	},
	"short": {
		Length: 300, Dx: 0.5, Diffusivity: 100, Steps: 500, Profile: "step",
	},
	"fine": {
		Length: 300, Dx: 0.25, Diffusivity: 100, Steps: 20000, Profile: "step", SnapshotEvery: 2000,
	},
	"slow": {
		Length: 300, Dx: 0.5, Diffusivity: 10, Steps: 5000, Profile: "step",
	},
	"threshold": {
		Length: 300, Dx: 0.5, Diffusivity: 100, Steps: 5000, Profile: "threshold",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
