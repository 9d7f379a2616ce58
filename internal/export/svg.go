package export

import (
	"fmt"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/sparkfield/internal/field"
)

// SVGSurface records one frame as SVG elements. Trail glows become radial
// gradients, particle halos use a gaussian blur filter per blur width.
type SVGSurface struct {
	Background string

	width, height int
	defs          strings.Builder
	body          strings.Builder
	gradients     int
	filters       map[string]string
	elements      int
}

func NewSVGSurface(background string) *SVGSurface {
	return &SVGSurface{
		Background: background,
		filters:    make(map[string]string),
	}
}

func (s *SVGSurface) Size() (int, int) { return s.width, s.height }

func (s *SVGSurface) Resize(w, h int) {
	s.width, s.height = w, h
}

func (s *SVGSurface) Clear() {
	s.defs.Reset()
	s.body.Reset()
	s.gradients = 0
	s.elements = 0
	clear(s.filters)
}

func (s *SVGSurface) Glow(center field.Vec2, radius float64, c colorful.Color, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	s.gradients++
	id := fmt.Sprintf("glow%d", s.gradients)
	hex := c.Hex()
	fmt.Fprintf(&s.defs, `<radialGradient id="%s"><stop offset="0" stop-color="%s" stop-opacity="%.3f"/><stop offset="1" stop-color="%s" stop-opacity="0"/></radialGradient>
`, id, hex, alpha, hex)
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#%s)"/>
`, center.X, center.Y, radius, id)
	s.elements++
}

func (s *SVGSurface) Disc(center field.Vec2, radius float64, c colorful.Color, alpha, blur float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	filter := ""
	if blur > 0 {
		filter = fmt.Sprintf(` filter="url(#%s)"`, s.blurFilter(blur))
	}
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"%s/>
`, center.X, center.Y, radius, c.Hex(), alpha, filter)
	s.elements++
}

func (s *SVGSurface) blurFilter(blur float64) string {
	key := fmt.Sprintf("%.1f", blur)
	if id, ok := s.filters[key]; ok {
		return id
	}
	id := fmt.Sprintf("blur%d", len(s.filters)+1)
	s.filters[key] = id
	// Canvas shadowBlur is roughly twice the gaussian standard deviation.
	fmt.Fprintf(&s.defs, `<filter id="%s" x="-100%%" y="-100%%" width="300%%" height="300%%"><feGaussianBlur in="SourceGraphic" stdDeviation="%.2f" result="halo"/><feMerge><feMergeNode in="halo"/><feMergeNode in="SourceGraphic"/></feMerge></filter>
`, id, blur/2)
	return id
}

func (s *SVGSurface) Line(from, to field.Vec2, c colorful.Color, alpha, width float64) {
	if alpha <= 0 {
		return
	}
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>
`, from.X, from.Y, to.X, to.Y, c.Hex(), alpha, width)
	s.elements++
}

func (s *SVGSurface) Release() {
	s.width, s.height = 0, 0
}

// Elements returns how many shapes the current frame holds.
func (s *SVGSurface) Elements() int { return s.elements }

func (s *SVGSurface) SVG() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height)
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	if s.Background != "" {
		fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>
`, s.Background)
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVGSurface) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.SVG()), 0644)
}

// SeriesToSVG draws a line chart of values over their index.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
