package field

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Particle is a short-lived point mass. Age counts frames since creation.
type Particle struct {
	ID          uint64
	Pos         Vec2
	Vel         Vec2
	Age         int
	MaxLife     int
	Color       colorful.Color
	Radius      float64
	BaseOpacity float64
}

// Opacity fades linearly from BaseOpacity to zero over the particle's life.
func (p *Particle) Opacity() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.BaseOpacity * (1 - float64(p.Age)/float64(p.MaxLife))
}

func (p *Particle) Expired() bool { return p.Age >= p.MaxLife }

// TrailPoint marks where the pointer passed. Life counts down to zero.
type TrailPoint struct {
	Pos  Vec2
	Life int
}

// Random is the randomness source of a field. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Surface is a 2D drawing target. Alpha values are in [0, 1].
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	// Glow draws a radial gradient disc, alpha at the centre fading to zero at radius.
	Glow(center Vec2, radius float64, c colorful.Color, alpha float64)
	// Disc draws a filled circle with a soft halo of the given blur width.
	Disc(center Vec2, radius float64, c colorful.Color, alpha, blur float64)
	Line(from, to Vec2, c colorful.Color, alpha, width float64)
	Release()
}

// Input is the pointer activity for one frame of a headless run.
type Input struct {
	Pos   Vec2
	Move  bool
	Click bool
}

// Driver produces pointer input for headless runs.
type Driver interface {
	Next(frame int, width, height float64) Input
}

// Observer is notified after every completed frame.
type Observer interface {
	OnFrame(f *Field)
}

// Metric is an Observer that reduces a run to a single named value.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}
