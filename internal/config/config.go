package config

import (
	"fmt"
	"os"

	"github.com/san-kum/sparkfield/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 60
	DefaultFrames = 600
	DefaultTheme  = "dark"
	DefaultDriver = "orbit"
)

type Config struct {
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	FPS     int           `yaml:"fps"`
	Frames  int           `yaml:"frames"`
	Seed    int64         `yaml:"seed"`
	Theme   string        `yaml:"theme"`
	Pointer PointerConfig `yaml:"pointer"`
	Field   FieldConfig   `yaml:"field"`
}

type PointerConfig struct {
	Driver     string  `yaml:"driver"`
	Script     string  `yaml:"script,omitempty"`
	ClickEvery int     `yaml:"click_every"`
	Radius     float64 `yaml:"radius"`
	Speed      float64 `yaml:"speed"`
}

// FieldConfig mirrors field.Params with yaml names and hex colours.
type FieldConfig struct {
	SeedCount        int      `yaml:"seed_count"`
	BurstSize        int      `yaml:"burst_size"`
	SpawnProbability float64  `yaml:"spawn_probability"`
	Damping          float64  `yaml:"damping"`
	AttractRadius    float64  `yaml:"attract_radius"`
	AttractStrength  float64  `yaml:"attract_strength"`
	LinkRadius       float64  `yaml:"link_radius"`
	LinkOpacity      float64  `yaml:"link_opacity"`
	LinkWidth        float64  `yaml:"link_width"`
	TrailLife        int      `yaml:"trail_life"`
	TrailCap         int      `yaml:"trail_cap"`
	TrailOpacity     float64  `yaml:"trail_opacity"`
	MinLife          int      `yaml:"min_life"`
	MaxLife          int      `yaml:"max_life"`
	MinRadius        float64  `yaml:"min_radius"`
	MaxRadius        float64  `yaml:"max_radius"`
	MinOpacity       float64  `yaml:"min_opacity"`
	MaxOpacity       float64  `yaml:"max_opacity"`
	Speed            float64  `yaml:"speed"`
	MoveJitter       float64  `yaml:"move_jitter"`
	BurstJitter      float64  `yaml:"burst_jitter"`
	GlowScale        float64  `yaml:"glow_scale"`
	GridThreshold    int      `yaml:"grid_threshold"`
	Palette          []string `yaml:"palette"`
	TrailColor       string   `yaml:"trail_color"`
}

func DefaultFieldConfig() FieldConfig {
	p := field.DefaultParams()
	return FieldConfig{
		SeedCount:        p.SeedCount,
		BurstSize:        p.BurstSize,
		SpawnProbability: p.SpawnProbability,
		Damping:          p.Damping,
		AttractRadius:    p.AttractRadius,
		AttractStrength:  p.AttractStrength,
		LinkRadius:       p.LinkRadius,
		LinkOpacity:      p.LinkOpacity,
		LinkWidth:        p.LinkWidth,
		TrailLife:        p.TrailLife,
		TrailCap:         p.TrailCap,
		TrailOpacity:     p.TrailOpacity,
		MinLife:          p.MinLife,
		MaxLife:          p.MaxLife,
		MinRadius:        p.MinRadius,
		MaxRadius:        p.MaxRadius,
		MinOpacity:       p.MinOpacity,
		MaxOpacity:       p.MaxOpacity,
		Speed:            p.Speed,
		MoveJitter:       p.MoveJitter,
		BurstJitter:      p.BurstJitter,
		GlowScale:        p.GlowScale,
		GridThreshold:    p.GridThreshold,
		Palette:          append([]string(nil), field.DefaultPalette...),
		TrailColor:       field.DefaultTrailColor,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Frames: DefaultFrames,
		Theme:  DefaultTheme,
		Pointer: PointerConfig{
			Driver:     DefaultDriver,
			ClickEvery: 45,
			Radius:     0.3,
			Speed:      0.05,
		},
		Field: DefaultFieldConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Params converts the field block into simulator parameters.
func (c *Config) Params() (field.Params, error) {
	f := c.Field
	palette, err := field.ParsePalette(f.Palette)
	if err != nil {
		return field.Params{}, fmt.Errorf("%w: %v", field.ErrParameterBounds, err)
	}
	trail, err := field.ParsePalette([]string{f.TrailColor})
	if err != nil {
		return field.Params{}, fmt.Errorf("%w: trail_color: %v", field.ErrParameterBounds, err)
	}
	return field.Params{
		SeedCount:        f.SeedCount,
		BurstSize:        f.BurstSize,
		SpawnProbability: f.SpawnProbability,
		Damping:          f.Damping,
		AttractRadius:    f.AttractRadius,
		AttractStrength:  f.AttractStrength,
		LinkRadius:       f.LinkRadius,
		LinkOpacity:      f.LinkOpacity,
		LinkWidth:        f.LinkWidth,
		TrailLife:        f.TrailLife,
		TrailCap:         f.TrailCap,
		TrailOpacity:     f.TrailOpacity,
		MinLife:          f.MinLife,
		MaxLife:          f.MaxLife,
		MinRadius:        f.MinRadius,
		MaxRadius:        f.MaxRadius,
		MinOpacity:       f.MinOpacity,
		MaxOpacity:       f.MaxOpacity,
		Speed:            f.Speed,
		MoveJitter:       f.MoveJitter,
		BurstJitter:      f.BurstJitter,
		GlowScale:        f.GlowScale,
		GridThreshold:    f.GridThreshold,
		Palette:          palette,
		TrailColor:       trail[0],
	}, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: surface %dx%d", field.ErrParameterBounds, c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps = %d", field.ErrParameterBounds, c.FPS)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames = %d", field.ErrParameterBounds, c.Frames)
	case c.Pointer.ClickEvery < 0:
		return fmt.Errorf("%w: pointer.click_every = %d", field.ErrParameterBounds, c.Pointer.ClickEvery)
	}
	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	return nil
}
