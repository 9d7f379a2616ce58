package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestAttractionBoundary(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
	const eps = 1e-6

	tests := []struct {
		name  string
		pos   Vec2
		force bool
	}{
		{"at radius", Vec2{200, 0}, false},
		{"just outside", Vec2{200 + eps, 0}, false},
		{"far away", Vec2{0, 1000}, false},
		{"just inside", Vec2{200 - eps, 0}, true},
		{"halfway", Vec2{0, 100}, true},
		{"on the cursor", Vec2{0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := f.Attraction(tt.pos)
			got := a.Len() > 0
			if got != tt.force {
				t.Errorf("Attraction(%v) = %v, want force=%v", tt.pos, a, tt.force)
			}
			if got && a.X*tt.pos.X+a.Y*tt.pos.Y >= 0 {
				t.Errorf("Attraction(%v) = %v does not point at the cursor", tt.pos, a)
			}
		})
	}
}

func TestAttractionMagnitude(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
	f.cursor = Vec2{50, 50}

	a := f.Attraction(Vec2{50, 150})
	want := (200.0 - 100.0) / 200.0 * 0.1
	if math.Abs(a.Len()-want) > 1e-12 {
		t.Errorf("magnitude = %v, want %v", a.Len(), want)
	}
	if a.X != 0 || a.Y >= 0 {
		t.Errorf("direction = %v, want straight up", a)
	}
}

func TestStepKinematics(t *testing.T) {
	p := DefaultParams()
	p.AttractRadius = 0
	f := NewField(p, rand.New(rand.NewSource(1)))
	f.particles = append(f.particles, Particle{ID: 1, Pos: Vec2{10, 10}, Vel: Vec2{2, -1}, MaxLife: 5})

	f.Step()

	got := f.particles[0]
	if got.Pos != (Vec2{12, 9}) {
		t.Errorf("Pos = %v, want {12 9}", got.Pos)
	}
	if math.Abs(got.Vel.X-1.98) > 1e-12 || math.Abs(got.Vel.Y+0.99) > 1e-12 {
		t.Errorf("Vel = %v, want {1.98 -0.99}", got.Vel)
	}
	if got.Age != 1 {
		t.Errorf("Age = %d, want 1", got.Age)
	}
}

func TestStepExpiry(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
	f.particles = append(f.particles,
		Particle{ID: 1, MaxLife: 1},
		Particle{ID: 2, MaxLife: 3},
		Particle{ID: 3, Age: 4, MaxLife: 5},
	)

	f.Step()

	if f.Len() != 1 || f.particles[0].ID != 2 {
		t.Fatalf("after one step got %+v, want only particle 2", f.particles)
	}
	f.Step()
	f.Step()
	if f.Len() != 0 {
		t.Errorf("expected all particles expired, got %d", f.Len())
	}
}

func TestTrailLifecycle(t *testing.T) {
	p := DefaultParams()
	p.SpawnProbability = 0
	f := NewField(p, rand.New(rand.NewSource(1)))

	for i := 0; i < 15; i++ {
		f.PointerMove(float64(i), 0)
	}
	if len(f.Trail()) != 10 {
		t.Fatalf("trail length = %d, want cap 10", len(f.Trail()))
	}
	if f.Trail()[0].Pos.X != 5 {
		t.Errorf("oldest trail point x = %v, want 5", f.Trail()[0].Pos.X)
	}
	if f.Cursor() != (Vec2{14, 0}) {
		t.Errorf("cursor = %v, want {14 0}", f.Cursor())
	}

	for i := 0; i < 19; i++ {
		f.Step()
	}
	if len(f.Trail()) != 10 || f.Trail()[0].Life != 1 {
		t.Fatalf("after 19 frames trail = %+v", f.Trail())
	}
	f.Step()
	if len(f.Trail()) != 0 {
		t.Errorf("trail should be empty after 20 frames, got %d", len(f.Trail()))
	}
}

func TestPointerClickBurst(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(3)))
	f.PointerClick(100, 100)

	if f.Len() != 15 {
		t.Fatalf("burst size = %d, want 15", f.Len())
	}
	for _, p := range f.Particles() {
		if math.Abs(p.Pos.X-100) > 25 || math.Abs(p.Pos.Y-100) > 25 {
			t.Errorf("particle %d at %v outside jitter", p.ID, p.Pos)
		}
		if p.Radius < 1 || p.Radius >= 4 {
			t.Errorf("radius %v out of range", p.Radius)
		}
		if p.BaseOpacity < 0.3 || p.BaseOpacity >= 0.8 {
			t.Errorf("opacity %v out of range", p.BaseOpacity)
		}
	}
}

func TestPointerMoveSpawnRate(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(11)))
	const moves = 5000
	for i := 0; i < moves; i++ {
		f.PointerMove(50, 50)
	}
	rate := float64(f.Len()) / moves
	if math.Abs(rate-0.3) > 0.03 {
		t.Errorf("spawn rate = %.3f, want ~0.3", rate)
	}
}

// brokenRandom returns values that would produce degenerate particles.
type brokenRandom struct{}

func (brokenRandom) Float64() float64 { return math.NaN() }
func (brokenRandom) Intn(int) int     { return 0 }

func TestSpawnClampsDegenerateRandomness(t *testing.T) {
	f := NewField(DefaultParams(), brokenRandom{})
	p := f.Spawn(Vec2{1, 1})

	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		t.Errorf("radius = %v, want positive and finite", p.Radius)
	}
	if p.MaxLife < 1 {
		t.Errorf("max life = %d, want >= 1", p.MaxLife)
	}
	if !p.Vel.IsValid() {
		t.Errorf("velocity = %v, want finite", p.Vel)
	}
	if p.BaseOpacity < 0 || p.BaseOpacity > 1 {
		t.Errorf("opacity = %v, want within [0, 1]", p.BaseOpacity)
	}
}

func TestOpacityFades(t *testing.T) {
	p := Particle{BaseOpacity: 0.8, MaxLife: 40}
	prev := p.Opacity()
	for p.Age = 1; p.Age < p.MaxLife; p.Age++ {
		o := p.Opacity()
		if o >= prev {
			t.Fatalf("opacity did not decrease at age %d", p.Age)
		}
		prev = o
	}
	p.Age = 20
	if math.Abs(p.Opacity()-0.4) > 1e-12 {
		t.Errorf("opacity at half life = %v, want 0.4", p.Opacity())
	}
}

func linkSet(f *Field) map[[2]uint64]float64 {
	out := make(map[[2]uint64]float64)
	f.Links(func(i, j int, d float64) {
		out[[2]uint64{f.particles[i].ID, f.particles[j].ID}] = d
	})
	return out
}

func TestLinksGridMatchesBruteForce(t *testing.T) {
	build := func(threshold int) *Field {
		p := DefaultParams()
		p.SeedCount = 250
		p.GridThreshold = threshold
		f := NewField(p, rand.New(rand.NewSource(21)))
		f.SetBounds(600, 400)
		f.Seed()
		f.particles = append(f.particles, Particle{ID: 9999, Pos: Vec2{-150, -30}, MaxLife: 10})
		return f
	}

	brute := linkSet(build(1 << 20))
	grid := linkSet(build(0))

	if len(brute) == 0 {
		t.Fatal("expected some links")
	}
	if len(grid) != len(brute) {
		t.Fatalf("grid found %d links, brute force %d", len(grid), len(brute))
	}
	for k, d := range brute {
		if gd, ok := grid[k]; !ok || gd != d {
			t.Errorf("pair %v: brute %v grid %v (found=%v)", k, d, gd, ok)
		}
	}
}

func TestLinksRespectRadius(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
	f.particles = append(f.particles,
		Particle{ID: 1, Pos: Vec2{0, 0}},
		Particle{ID: 2, Pos: Vec2{99, 0}},
		Particle{ID: 3, Pos: Vec2{190, 0}},
	)
	links := linkSet(f)
	if len(links) != 2 {
		t.Fatalf("links = %v, want 1-2 and 2-3", links)
	}
	if _, ok := links[[2]uint64{1, 3}]; ok {
		t.Error("particles 190px apart should not link")
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"negative seed count", func(p *Params) { p.SeedCount = -1 }},
		{"probability above one", func(p *Params) { p.SpawnProbability = 1.5 }},
		{"NaN probability", func(p *Params) { p.SpawnProbability = math.NaN() }},
		{"zero damping", func(p *Params) { p.Damping = 0 }},
		{"inverted life", func(p *Params) { p.MinLife, p.MaxLife = 90, 30 }},
		{"zero life", func(p *Params) { p.MinLife = 0 }},
		{"zero radius", func(p *Params) { p.MinRadius = 0 }},
		{"infinite radius", func(p *Params) { p.MaxRadius = math.Inf(1) }},
		{"opacity above one", func(p *Params) { p.MaxOpacity = 2 }},
		{"empty palette", func(p *Params) { p.Palette = nil }},
		{"zero trail life", func(p *Params) { p.TrailLife = 0 }},
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrParameterBounds) {
				t.Errorf("Validate() = %v, want ErrParameterBounds", err)
			}
		})
	}
}

func TestParsePalette(t *testing.T) {
	if _, err := ParsePalette([]string{"#3b82f6", "nope"}); err == nil {
		t.Error("expected error for invalid hex")
	}
	p, err := ParsePalette(DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 6 {
		t.Errorf("palette size = %d, want 6", len(p))
	}
}

func TestFrameQueue(t *testing.T) {
	q := NewFrameQueue()
	var order []int

	q.RequestFrame(func() { order = append(order, 1) })
	id := q.RequestFrame(func() { order = append(order, 2) })
	q.RequestFrame(func() {
		order = append(order, 3)
		q.RequestFrame(func() { order = append(order, 4) })
	})
	q.CancelFrame(id)

	if ran := q.Pump(); ran != 2 {
		t.Errorf("first pump ran %d, want 2", ran)
	}
	if q.Pending() != 1 {
		t.Errorf("pending = %d, want 1", q.Pending())
	}
	q.Pump()

	want := []int{1, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFrameQueueCancelDuringPump(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	var second FrameID
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	q.Pump()
	if ran {
		t.Error("callback canceled mid-pump still ran")
	}
}

func TestFrameError(t *testing.T) {
	err := &FrameError{Frame: 12, Wrapped: ErrInvalidParticle}
	if !errors.Is(err, ErrInvalidParticle) {
		t.Error("FrameError does not unwrap")
	}
	want := "frame 12: field: invalid particle (NaN or Inf detected)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidateDetectsNaN(t *testing.T) {
	f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
	f.particles = append(f.particles, Particle{Pos: Vec2{math.NaN(), 0}, MaxLife: 5})
	if err := f.Validate(); !errors.Is(err, ErrInvalidParticle) {
		t.Errorf("Validate() = %v, want ErrInvalidParticle", err)
	}
}

type drawCall struct {
	kind   string
	radius float64
	alpha  float64
	blur   float64
	width  float64
	color  colorful.Color
}

// recordingSurface keeps every draw call since the last Clear.
type recordingSurface struct {
	calls []drawCall
}

func (r *recordingSurface) Size() (int, int) { return 100, 100 }
func (r *recordingSurface) Resize(int, int)  {}
func (r *recordingSurface) Clear()           { r.calls = r.calls[:0] }
func (r *recordingSurface) Release()         {}

func (r *recordingSurface) Glow(_ Vec2, radius float64, c colorful.Color, alpha float64) {
	r.calls = append(r.calls, drawCall{kind: "glow", radius: radius, alpha: alpha, color: c})
}

func (r *recordingSurface) Disc(_ Vec2, radius float64, c colorful.Color, alpha, blur float64) {
	r.calls = append(r.calls, drawCall{kind: "disc", radius: radius, alpha: alpha, blur: blur, color: c})
}

func (r *recordingSurface) Line(_, _ Vec2, c colorful.Color, alpha, width float64) {
	r.calls = append(r.calls, drawCall{kind: "line", alpha: alpha, width: width, color: c})
}

func TestRenderDrawValues(t *testing.T) {
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
	f.trail = append(f.trail, TrailPoint{Pos: Vec2{5, 5}, Life: 10})
	f.particles = append(f.particles,
		Particle{ID: 1, Pos: Vec2{0, 0}, MaxLife: 10, Radius: 2, BaseOpacity: 0.5, Color: red},
		Particle{ID: 2, Pos: Vec2{50, 0}, Age: 5, MaxLife: 10, Radius: 3, BaseOpacity: 0.8, Color: blue},
	)

	s := &recordingSurface{}
	f.Render(s)

	want := []drawCall{
		{kind: "glow", radius: 20, alpha: 0.15, color: f.params.TrailColor},
		{kind: "disc", radius: 2, alpha: 0.5, blur: 4, color: red},
		{kind: "disc", radius: 3, alpha: 0.4, blur: 6, color: blue},
		{kind: "line", alpha: 0.1, width: 0.5, color: red},
	}
	if len(s.calls) != len(want) {
		t.Fatalf("got %d draw calls, want %d: %+v", len(s.calls), len(want), s.calls)
	}

	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	for i, w := range want {
		t.Run(fmt.Sprintf("%d_%s", i, w.kind), func(t *testing.T) {
			g := s.calls[i]
			if g.kind != w.kind {
				t.Fatalf("kind = %s, want %s", g.kind, w.kind)
			}
			if !near(g.radius, w.radius) || !near(g.alpha, w.alpha) || !near(g.blur, w.blur) || !near(g.width, w.width) {
				t.Errorf("got %+v, want %+v", g, w)
			}
			if g.color != w.color {
				t.Errorf("color = %v, want %v", g.color, w.color)
			}
		})
	}
}

func TestTrailGlowShrinksWithLife(t *testing.T) {
	tests := []struct {
		life   int
		radius float64
		alpha  float64
	}{
		{20, 40, 0.3},
		{10, 20, 0.15},
		{1, 2, 0.015},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("life %d", tt.life), func(t *testing.T) {
			f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
			f.trail = append(f.trail, TrailPoint{Life: tt.life})
			s := &recordingSurface{}
			f.Render(s)
			if len(s.calls) != 1 {
				t.Fatalf("got %d draw calls, want 1", len(s.calls))
			}
			g := s.calls[0]
			if math.Abs(g.radius-tt.radius) > 1e-9 || math.Abs(g.alpha-tt.alpha) > 1e-9 {
				t.Errorf("glow radius %v alpha %v, want %v and %v", g.radius, g.alpha, tt.radius, tt.alpha)
			}
		})
	}
}

func TestLinkAlphaFallsWithDistance(t *testing.T) {
	tests := []struct {
		dist  float64
		alpha float64
	}{
		{0, 0.2},
		{25, 0.15},
		{75, 0.05},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.0fpx", tt.dist), func(t *testing.T) {
			f := NewField(DefaultParams(), rand.New(rand.NewSource(1)))
			f.particles = append(f.particles,
				Particle{ID: 1, Pos: Vec2{10, 10}, MaxLife: 10, Radius: 1},
				Particle{ID: 2, Pos: Vec2{10 + tt.dist, 10}, MaxLife: 10, Radius: 1},
			)
			s := &recordingSurface{}
			f.Render(s)
			last := s.calls[len(s.calls)-1]
			if last.kind != "line" {
				t.Fatalf("last draw call = %s, want line", last.kind)
			}
			if math.Abs(last.alpha-tt.alpha) > 1e-9 {
				t.Errorf("link alpha = %v, want %v", last.alpha, tt.alpha)
			}
		})
	}
}

func TestSpatialGridDropsStaleCells(t *testing.T) {
	p := DefaultParams()
	p.GridThreshold = 0
	f := NewField(p, rand.New(rand.NewSource(3)))

	for frame := 0; frame < 200; frame++ {
		f.particles = f.particles[:0]
		for i := 0; i < 4; i++ {
			x := float64(frame*1000 + i*10)
			f.particles = append(f.particles, Particle{ID: uint64(i + 1), Pos: Vec2{x, 0}, MaxLife: 10})
		}
		if got := f.LinkCount(); got != 6 {
			t.Fatalf("frame %d: %d links, want 6", frame, got)
		}
	}

	if n := len(f.grid.cells); n > 40 {
		t.Errorf("grid holds %d cells after moving across the plane", n)
	}
}
