package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": withField(func(f *FieldConfig) {
		f.SeedCount = 15
		f.BurstSize = 6
		f.SpawnProbability = 0.1
		f.AttractStrength = 0.04
		f.Speed = 0.5
		f.MinLife, f.MaxLife = 60, 150
	}),
	"storm": withField(func(f *FieldConfig) {
		f.SeedCount = 60
		f.BurstSize = 40
		f.SpawnProbability = 0.8
		f.AttractStrength = 0.25
		f.Speed = 2.5
		f.Damping = 0.97
		f.MinLife, f.MaxLife = 20, 50
	}),
	"dense": withField(func(f *FieldConfig) {
		f.SeedCount = 300
		f.BurstSize = 30
		f.LinkRadius = 60
		f.LinkOpacity = 0.12
		f.MinLife, f.MaxLife = 120, 240
	}),
}

func withField(mutate func(f *FieldConfig)) *Config {
	cfg := DefaultConfig()
	mutate(&cfg.Field)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Field.Palette = append([]string(nil), cfg.Field.Palette...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
