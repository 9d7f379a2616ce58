package analysis

import (
	"math/rand"

	"github.com/san-kum/sparkfield/internal/field"
)

// Divergence seeds two identical fields, shifts every particle of the second
// by offset px along x, and returns the mean particle separation after each
// of the given frames. Both fields share the cursor, so attraction acts on
// them alike and the seeded particles expire together.
func Divergence(params field.Params, width, height float64, seed int64, cursor field.Vec2, offset float64, frames int) []float64 {
	p := params
	p.SpawnProbability = 0

	a := field.NewField(p, rand.New(rand.NewSource(seed)))
	b := field.NewField(p, rand.New(rand.NewSource(seed)))
	for _, f := range []*field.Field{a, b} {
		f.SetBounds(width, height)
		f.Seed()
		f.PointerMove(cursor.X, cursor.Y)
	}
	b.Offset(field.Vec2{X: offset})

	out := make([]float64, 0, frames)
	for i := 0; i < frames; i++ {
		a.Step()
		b.Step()
		pa, pb := a.Particles(), b.Particles()
		if len(pa) == 0 || len(pa) != len(pb) {
			break
		}
		var sum float64
		for j := range pa {
			sum += pa[j].Pos.Dist(pb[j].Pos)
		}
		out = append(out, sum/float64(len(pa)))
	}
	return out
}
