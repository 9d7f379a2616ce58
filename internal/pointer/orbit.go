package pointer

import (
	"math"

	"github.com/san-kum/sparkfield/internal/field"
)

// Orbit moves the pointer around the surface centre. Radius is a fraction of
// the shorter surface side; Speed is in radians per frame.
type Orbit struct {
	Radius     float64
	Speed      float64
	ClickEvery int
}

func NewOrbit(radius, speed float64, clickEvery int) *Orbit {
	return &Orbit{Radius: radius, Speed: speed, ClickEvery: clickEvery}
}

func (o *Orbit) Next(frame int, width, height float64) field.Input {
	r := o.Radius * math.Min(width, height)
	angle := float64(frame) * o.Speed
	return field.Input{
		Pos: field.Vec2{
			X: width/2 + r*math.Cos(angle),
			Y: height/2 + r*math.Sin(angle),
		},
		Move:  true,
		Click: clickDue(frame, o.ClickEvery),
	}
}

func clickDue(frame, every int) bool {
	return every > 0 && frame > 0 && frame%every == 0
}
