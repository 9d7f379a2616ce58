package pointer

import (
	"math"
	"math/rand"

	"github.com/san-kum/sparkfield/internal/field"
)

// Wander is a seeded random walk that starts at the surface centre and stays
// inside it. ClickChance is the per-frame click probability.
type Wander struct {
	Step        float64
	ClickChance float64

	rng     *rand.Rand
	pos     field.Vec2
	started bool
}

func NewWander(step, clickChance float64, seed int64) *Wander {
	return &Wander{
		Step:        step,
		ClickChance: clickChance,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (w *Wander) Next(frame int, width, height float64) field.Input {
	if !w.started {
		w.pos = field.Vec2{X: width / 2, Y: height / 2}
		w.started = true
	}
	w.pos.X = clampTo(w.pos.X+(w.rng.Float64()-0.5)*2*w.Step, width)
	w.pos.Y = clampTo(w.pos.Y+(w.rng.Float64()-0.5)*2*w.Step, height)

	return field.Input{
		Pos:   w.pos,
		Move:  true,
		Click: w.rng.Float64() < w.ClickChance,
	}
}

func clampTo(v, limit float64) float64 {
	return math.Max(0, math.Min(v, limit))
}
