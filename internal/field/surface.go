package field

import colorful "github.com/lucasb-eyer/go-colorful"

// BlankSurface draws nothing and counts draw calls. Headless runs use it.
type BlankSurface struct {
	W, H     int
	Glows    int
	Discs    int
	Lines    int
	Clears   int
	Released bool
}

func NewBlankSurface() *BlankSurface { return &BlankSurface{} }

func (b *BlankSurface) Size() (int, int) { return b.W, b.H }

func (b *BlankSurface) Resize(w, h int) {
	b.W, b.H = w, h
	b.Released = false
}

func (b *BlankSurface) Clear() {
	b.Clears++
	b.Glows, b.Discs, b.Lines = 0, 0, 0
}

func (b *BlankSurface) Glow(Vec2, float64, colorful.Color, float64)          { b.Glows++ }
func (b *BlankSurface) Disc(Vec2, float64, colorful.Color, float64, float64) { b.Discs++ }
func (b *BlankSurface) Line(Vec2, Vec2, colorful.Color, float64, float64)    { b.Lines++ }

func (b *BlankSurface) Release() {
	b.W, b.H = 0, 0
	b.Released = true
}

// Ops is the number of draw calls since the last Clear.
func (b *BlankSurface) Ops() int { return b.Glows + b.Discs + b.Lines }
