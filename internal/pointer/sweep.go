package pointer

import (
	"math"

	"github.com/san-kum/sparkfield/internal/field"
)

// Sweep rasters the pointer across the surface in Rows horizontal passes,
// alternating direction. Speed is surface widths per frame.
type Sweep struct {
	Rows       int
	Speed      float64
	ClickEvery int
}

func NewSweep(rows int, speed float64, clickEvery int) *Sweep {
	if rows < 1 {
		rows = 1
	}
	return &Sweep{Rows: rows, Speed: speed, ClickEvery: clickEvery}
}

func (s *Sweep) Next(frame int, width, height float64) field.Input {
	t := float64(frame) * s.Speed
	pass := int(math.Floor(t))
	frac := t - float64(pass)

	x := frac * width
	if pass%2 == 1 {
		x = width - x
	}
	row := pass % s.Rows
	y := (float64(row) + 0.5) * height / float64(s.Rows)

	return field.Input{
		Pos:   field.Vec2{X: x, Y: y},
		Move:  true,
		Click: clickDue(frame, s.ClickEvery),
	}
}
