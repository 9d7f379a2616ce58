package analysis

import (
	"strings"

	"github.com/san-kum/sparkfield/internal/field"
)

// ScatterToASCII plots points into a width x height grid of runes, scaling
// the bounding box of the points to fit. Y grows downward like screen space.
func ScatterToASCII(points []field.Vec2, width, height int) string {
	if len(points) == 0 || width < 1 || height < 1 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch canvas[row][col] {
		case ' ':
			canvas[row][col] = '·'
		case '·':
			canvas[row][col] = '•'
		default:
			canvas[row][col] = '●'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Positions extracts particle positions.
func Positions(ps []field.Particle) []field.Vec2 {
	out := make([]field.Vec2, len(ps))
	for i, p := range ps {
		out[i] = p.Pos
	}
	return out
}
