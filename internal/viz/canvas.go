package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/sparkfield/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase      = 0x2800
	DefaultScale     = 4.0
	DefaultThreshold = 0.04
)

// Canvas is a braille dot grid that implements field.Surface. One dot
// covers Scale x Scale surface pixels; a dot is lit when the alpha drawn on
// it reaches Threshold. Each cell keeps the alpha-weighted blend of the
// colours drawn into it.
type Canvas struct {
	Width, Height int
	Scale         float64
	Threshold     float64
	Grid          [][]rune
	Colors        [][]colorful.Color
	weight        [][]float64
}

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = DefaultScale
	}
	c := &Canvas{Scale: scale, Threshold: DefaultThreshold}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	c.Width, c.Height = max(w, 0), max(h, 0)
	c.Grid = make([][]rune, c.Height)
	c.Colors = make([][]colorful.Color, c.Height)
	c.weight = make([][]float64, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Colors[i] = make([]colorful.Color, c.Width)
		c.weight[i] = make([]float64, c.Width)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// Size is the surface size in pixels.
func (c *Canvas) Size() (int, int) {
	return int(float64(c.Width*2) * c.Scale), int(float64(c.Height*4) * c.Scale)
}

// Resize takes a surface size in pixels and reallocates the cell grid.
func (c *Canvas) Resize(w, h int) {
	cols := int(math.Ceil(float64(w) / (2 * c.Scale)))
	rows := int(math.Ceil(float64(h) / (4 * c.Scale)))
	if cols == c.Width && rows == c.Height {
		return
	}
	c.alloc(cols, rows)
}

func (c *Canvas) Release() {
	c.alloc(0, 0)
}

// Set lights a dot at (x, y) in dot coordinates.
// The canvas size in dots is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleBase {
		c.Grid[row][col] = brailleBase
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Colors[i][j] = colorful.Color{}
			c.weight[i][j] = 0
		}
	}
}

// paint lights a dot if alpha reaches the threshold and blends col into
// the dot's cell.
func (c *Canvas) paint(x, y int, col colorful.Color, alpha float64) {
	if alpha < c.Threshold || x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	row, cell := y/4, x/2
	w := c.weight[row][cell] + alpha
	if c.weight[row][cell] == 0 {
		c.Colors[row][cell] = col
	} else {
		c.Colors[row][cell] = c.Colors[row][cell].BlendRgb(col, alpha/w)
	}
	c.weight[row][cell] = w
}

func (c *Canvas) dot(v field.Vec2) (int, int) {
	return int(math.Floor(v.X / c.Scale)), int(math.Floor(v.Y / c.Scale))
}

// eachDot calls fn for every dot whose centre lies within radius of center.
func (c *Canvas) eachDot(center field.Vec2, radius float64, fn func(x, y int, d float64)) {
	x0, y0 := c.dot(field.Vec2{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := c.dot(field.Vec2{X: center.X + radius, Y: center.Y + radius})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := field.Vec2{X: (float64(x) + 0.5) * c.Scale, Y: (float64(y) + 0.5) * c.Scale}
			if d := p.Dist(center); d <= radius {
				fn(x, y, d)
			}
		}
	}
}

func (c *Canvas) Glow(center field.Vec2, radius float64, col colorful.Color, alpha float64) {
	if radius <= 0 {
		return
	}
	c.eachDot(center, radius, func(x, y int, d float64) {
		c.paint(x, y, col, alpha*(1-d/radius))
	})
}

// Disc always lights the dot under its centre; particles are usually
// smaller than one dot.
func (c *Canvas) Disc(center field.Vec2, radius float64, col colorful.Color, alpha, blur float64) {
	x, y := c.dot(center)
	c.paint(x, y, col, alpha)
	c.eachDot(center, radius, func(x, y int, _ float64) {
		c.paint(x, y, col, alpha)
	})
	if blur <= 0 {
		return
	}
	c.eachDot(center, radius+blur, func(x, y int, d float64) {
		if d > radius {
			c.paint(x, y, col, alpha*0.25*(1-(d-radius)/blur))
		}
	})
}

func (c *Canvas) Line(from, to field.Vec2, col colorful.Color, alpha, width float64) {
	if alpha < c.Threshold {
		return
	}
	x0, y0 := c.dot(from)
	x1, y1 := c.dot(to)
	c.drawLine(x0, y0, x1, y1, func(x, y int) { c.paint(x, y, col, alpha) })
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.drawLine(x0, y0, x1, y1, c.Set)
}

func (c *Canvas) drawLine(x0, y0, x1, y1 int, set func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// CellToSurface maps a cell to the surface pixel at its centre.
func (c *Canvas) CellToSurface(col, row int) field.Vec2 {
	return field.Vec2{
		X: float64(col*2+1) * c.Scale,
		Y: float64(row*4+2) * c.Scale,
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid with per-cell colours. Runs of cells sharing a
// colour are styled together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && c.cellHex(r, i) == c.cellHex(r, start) {
				continue
			}
			run := string(row[start:i])
			if hex := c.cellHex(r, start); hex != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run)
			}
			b.WriteString(run)
			start = i
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) cellHex(row, col int) string {
	if c.Grid[row][col] == brailleBase {
		return ""
	}
	return c.Colors[row][col].Clamped().Hex()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
