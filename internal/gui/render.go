package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/sparkfield/internal/field"
)

// Surface draws straight to the raylib back buffer. It must only be used
// between BeginDrawing and EndDrawing.
type Surface struct {
	Background rl.Color
	width      int
	height     int
}

func NewSurface(bg rl.Color) *Surface {
	return &Surface{Background: bg}
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Resize(w, h int) {
	s.width, s.height = max(w, 0), max(h, 0)
}

func (s *Surface) Release() {
	s.width, s.height = 0, 0
}

func (s *Surface) Clear() {
	rl.ClearBackground(s.Background)
}

func (s *Surface) Glow(center field.Vec2, radius float64, c colorful.Color, alpha float64) {
	if radius <= 0 {
		return
	}
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(radius), toColor(c, alpha), toColor(c, 0))
}

func (s *Surface) Disc(center field.Vec2, radius float64, c colorful.Color, alpha, blur float64) {
	pos := vec(center)
	if blur > 0 {
		rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(radius+blur), toColor(c, alpha*0.25), toColor(c, 0))
	}
	rl.DrawCircleV(pos, float32(radius), toColor(c, alpha))
}

func (s *Surface) Line(from, to field.Vec2, c colorful.Color, alpha, width float64) {
	rl.DrawLineEx(vec(from), vec(to), float32(width), toColor(c, alpha))
}

func vec(v field.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func toColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	return rl.NewColor(r, g, b, uint8(alpha*255))
}

func fromHex(hex string) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.Black
	}
	return toColor(c, 1)
}
