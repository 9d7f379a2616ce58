package field

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Field owns the particles, the pointer trail and the cursor of one simulator.
type Field struct {
	params    Params
	rng       Random
	particles []Particle
	trail     []TrailPoint
	cursor    Vec2
	width     float64
	height    float64
	frame     int
	nextID    uint64
	grid      *spatialGrid
}

func NewField(params Params, rng Random) *Field {
	return &Field{
		params:    params,
		rng:       rng,
		particles: make([]Particle, 0, params.SeedCount+params.BurstSize),
		trail:     make([]TrailPoint, 0, params.TrailCap),
	}
}

func (f *Field) Params() Params         { return f.params }
func (f *Field) Frame() int             { return f.frame }
func (f *Field) Cursor() Vec2           { return f.cursor }
func (f *Field) Len() int               { return len(f.particles) }
func (f *Field) Bounds() (w, h float64) { return f.width, f.height }

// Particles returns the active set. The slice is owned by the field and is
// only valid until the next Step or spawn.
func (f *Field) Particles() []Particle { return f.particles }

// Trail returns the live trail points, oldest first.
func (f *Field) Trail() []TrailPoint { return f.trail }

func (f *Field) SetBounds(w, h float64) {
	f.width, f.height = w, h
}

// SetPalette recolours particles spawned from now on. An empty palette falls
// back to the trail colour.
func (f *Field) SetPalette(p []colorful.Color) {
	f.params.Palette = append([]colorful.Color(nil), p...)
}

// Seed spawns SeedCount particles uniformly over the current bounds.
func (f *Field) Seed() {
	for i := 0; i < f.params.SeedCount; i++ {
		f.Spawn(Vec2{f.rng.Float64() * f.width, f.rng.Float64() * f.height})
	}
}

// PointerMove records the cursor, appends a trail point and occasionally
// spawns a particle near it.
func (f *Field) PointerMove(x, y float64) {
	pos := Vec2{x, y}
	f.cursor = pos
	f.trail = append(f.trail, TrailPoint{Pos: pos, Life: f.params.TrailLife})
	if limit := f.params.TrailCap; limit > 0 && len(f.trail) > limit {
		drop := len(f.trail) - limit
		f.trail = append(f.trail[:0], f.trail[drop:]...)
	}
	if f.rng.Float64() < f.params.SpawnProbability {
		f.Spawn(f.jitter(pos, f.params.MoveJitter))
	}
}

// PointerClick spawns a burst of particles around the click.
func (f *Field) PointerClick(x, y float64) {
	pos := Vec2{x, y}
	for i := 0; i < f.params.BurstSize; i++ {
		f.Spawn(f.jitter(pos, f.params.BurstJitter))
	}
}

func (f *Field) jitter(pos Vec2, width float64) Vec2 {
	return Vec2{
		pos.X + (f.rng.Float64()-0.5)*width,
		pos.Y + (f.rng.Float64()-0.5)*width,
	}
}

// Spawn adds one particle at pos with randomised velocity, life, colour,
// radius and opacity.
func (f *Field) Spawn(pos Vec2) Particle {
	p := f.params
	f.nextID++
	pt := Particle{
		ID:  f.nextID,
		Pos: pos,
		Vel: Vec2{
			(f.rng.Float64() - 0.5) * 2 * p.Speed,
			(f.rng.Float64() - 0.5) * 2 * p.Speed,
		},
	}

	life := p.MinLife
	if span := p.MaxLife - p.MinLife; span > 0 {
		life += f.rng.Intn(span + 1)
	}
	if life < 1 {
		life = 1
	}
	pt.MaxLife = life

	if len(p.Palette) > 0 {
		pt.Color = p.Palette[f.rng.Intn(len(p.Palette))]
	} else {
		pt.Color = p.TrailColor
	}

	pt.Radius = positiveOr(p.MinRadius+f.rng.Float64()*(p.MaxRadius-p.MinRadius), p.MinRadius)
	pt.BaseOpacity = clamp01(p.MinOpacity + f.rng.Float64()*(p.MaxOpacity-p.MinOpacity))

	if !pt.Vel.IsValid() {
		pt.Vel = Vec2{}
	}

	f.particles = append(f.particles, pt)
	return pt
}

// Attraction returns the velocity change a particle at pos receives from the
// cursor this frame. Zero at or beyond AttractRadius.
func (f *Field) Attraction(pos Vec2) Vec2 {
	r := f.params.AttractRadius
	d := f.cursor.Sub(pos)
	dist := d.Len()
	if dist >= r || dist == 0 {
		return Vec2{}
	}
	force := (r - dist) / r * f.params.AttractStrength
	return d.Scale(force / dist)
}

// Step advances one frame: integrate, age, damp, attract, expire.
func (f *Field) Step() {
	f.frame++

	damping := f.params.Damping
	n := 0
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = p.Pos.Add(p.Vel)
		p.Age++
		p.Vel = p.Vel.Scale(damping)
		p.Vel = p.Vel.Add(f.Attraction(p.Pos))
		if p.Expired() {
			continue
		}
		f.particles[n] = *p
		n++
	}
	clear(f.particles[n:])
	f.particles = f.particles[:n]

	n = 0
	for i := range f.trail {
		f.trail[i].Life--
		if f.trail[i].Life <= 0 {
			continue
		}
		f.trail[n] = f.trail[i]
		n++
	}
	f.trail = f.trail[:n]
}

// Offset moves every particle by d.
func (f *Field) Offset(d Vec2) {
	for i := range f.particles {
		f.particles[i].Pos = f.particles[i].Pos.Add(d)
	}
}

// Clear drops every particle and trail point.
func (f *Field) Clear() {
	clear(f.particles)
	f.particles = f.particles[:0]
	f.trail = f.trail[:0]
}

// Validate reports the first particle with non-finite state.
func (f *Field) Validate() error {
	for i := range f.particles {
		p := &f.particles[i]
		if !p.Pos.IsValid() || !p.Vel.IsValid() {
			return &FrameError{Frame: f.frame, Wrapped: ErrInvalidParticle}
		}
	}
	return nil
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return v
	}
	if fallback > 0 && !math.IsInf(fallback, 0) {
		return fallback
	}
	return 1
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
