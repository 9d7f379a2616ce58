package field

import (
	"fmt"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is the particle palette: blue, emerald, purple, amber, red, cyan.
var DefaultPalette = []string{
	"#3b82f6",
	"#10b981",
	"#8b5cf6",
	"#f59e0b",
	"#ef4444",
	"#06b6d4",
}

// DefaultTrailColor is the pointer trail glow colour.
const DefaultTrailColor = "#3b82f6"

type Params struct {
	SeedCount        int
	BurstSize        int
	SpawnProbability float64
	Damping          float64
	AttractRadius    float64
	AttractStrength  float64
	LinkRadius       float64
	LinkOpacity      float64
	LinkWidth        float64
	TrailLife        int
	TrailCap         int
	TrailOpacity     float64
	MinLife          int
	MaxLife          int
	MinRadius        float64
	MaxRadius        float64
	MinOpacity       float64
	MaxOpacity       float64
	Speed            float64
	MoveJitter       float64
	BurstJitter      float64
	GlowScale        float64
	GridThreshold    int
	Palette          []colorful.Color
	TrailColor       colorful.Color
}

func DefaultParams() Params {
	return Params{
		SeedCount:        30,
		BurstSize:        15,
		SpawnProbability: 0.3,
		Damping:          0.99,
		AttractRadius:    200,
		AttractStrength:  0.1,
		LinkRadius:       100,
		LinkOpacity:      0.2,
		LinkWidth:        0.5,
		TrailLife:        20,
		TrailCap:         10,
		TrailOpacity:     0.3,
		MinLife:          30,
		MaxLife:          90,
		MinRadius:        1,
		MaxRadius:        4,
		MinOpacity:       0.3,
		MaxOpacity:       0.8,
		Speed:            1,
		MoveJitter:       20,
		BurstJitter:      50,
		GlowScale:        2,
		GridThreshold:    64,
		Palette:          MustParsePalette(DefaultPalette),
		TrailColor:       mustHex(DefaultTrailColor),
	}
}

// ParsePalette parses hex colour strings such as "#3b82f6".
func ParsePalette(hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %q: %w", h, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func MustParsePalette(hexes []string) []colorful.Color {
	p, err := ParsePalette(hexes)
	if err != nil {
		panic(err)
	}
	return p
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return c
}

func (p Params) Validate() error {
	bad := func(name string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrParameterBounds, name, v)
	}
	switch {
	case p.SeedCount < 0:
		return bad("seed_count", p.SeedCount)
	case p.BurstSize < 0:
		return bad("burst_size", p.BurstSize)
	case !inRange(p.SpawnProbability, 0, 1):
		return bad("spawn_probability", p.SpawnProbability)
	case !(p.Damping > 0 && p.Damping <= 1):
		return bad("damping", p.Damping)
	case !finiteNonNeg(p.AttractRadius):
		return bad("attract_radius", p.AttractRadius)
	case !finiteNonNeg(p.AttractStrength):
		return bad("attract_strength", p.AttractStrength)
	case !finiteNonNeg(p.LinkRadius):
		return bad("link_radius", p.LinkRadius)
	case !inRange(p.LinkOpacity, 0, 1):
		return bad("link_opacity", p.LinkOpacity)
	case p.TrailLife < 1:
		return bad("trail_life", p.TrailLife)
	case p.TrailCap < 0:
		return bad("trail_cap", p.TrailCap)
	case !inRange(p.TrailOpacity, 0, 1):
		return bad("trail_opacity", p.TrailOpacity)
	case p.MinLife < 1 || p.MaxLife < p.MinLife:
		return bad("life", fmt.Sprintf("[%d, %d]", p.MinLife, p.MaxLife))
	case !(p.MinRadius > 0) || p.MaxRadius < p.MinRadius || math.IsInf(p.MaxRadius, 0):
		return bad("radius", fmt.Sprintf("[%g, %g]", p.MinRadius, p.MaxRadius))
	case !inRange(p.MinOpacity, 0, 1) || !inRange(p.MaxOpacity, p.MinOpacity, 1):
		return bad("opacity", fmt.Sprintf("[%g, %g]", p.MinOpacity, p.MaxOpacity))
	case !finiteNonNeg(p.Speed):
		return bad("speed", p.Speed)
	case !finiteNonNeg(p.MoveJitter):
		return bad("move_jitter", p.MoveJitter)
	case !finiteNonNeg(p.BurstJitter):
		return bad("burst_jitter", p.BurstJitter)
	case len(p.Palette) == 0:
		return bad("palette", "empty")
	}
	return nil
}

func inRange(v, lo, hi float64) bool { return v >= lo && v <= hi }

func finiteNonNeg(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }

var paramSetters = map[string]func(p *Params, v float64){
	"seed_count":        func(p *Params, v float64) { p.SeedCount = int(v) },
	"burst_size":        func(p *Params, v float64) { p.BurstSize = int(v) },
	"spawn_probability": func(p *Params, v float64) { p.SpawnProbability = v },
	"damping":           func(p *Params, v float64) { p.Damping = v },
	"attract_radius":    func(p *Params, v float64) { p.AttractRadius = v },
	"attract_strength":  func(p *Params, v float64) { p.AttractStrength = v },
	"link_radius":       func(p *Params, v float64) { p.LinkRadius = v },
	"link_opacity":      func(p *Params, v float64) { p.LinkOpacity = v },
	"trail_life":        func(p *Params, v float64) { p.TrailLife = int(v) },
	"trail_cap":         func(p *Params, v float64) { p.TrailCap = int(v) },
	"speed":             func(p *Params, v float64) { p.Speed = v },
	"move_jitter":       func(p *Params, v float64) { p.MoveJitter = v },
	"burst_jitter":      func(p *Params, v float64) { p.BurstJitter = v },
}

// SetParam sets a numeric parameter by its config name. Integer parameters
// are truncated.
func (p *Params) SetParam(name string, v float64) error {
	set, ok := paramSetters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	set(p, v)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(paramSetters))
	for name := range paramSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
