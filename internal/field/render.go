package field

// Render draws the current frame: trail glows first, then particles, then
// the links between nearby particles.
func (f *Field) Render(s Surface) {
	s.Clear()
	p := f.params

	for _, t := range f.trail {
		ratio := float64(t.Life) / float64(p.TrailLife)
		s.Glow(t.Pos, TrailRadius(t.Life), p.TrailColor, clamp01(ratio*p.TrailOpacity))
	}

	for i := range f.particles {
		pt := &f.particles[i]
		s.Disc(pt.Pos, pt.Radius, pt.Color, clamp01(pt.Opacity()), pt.Radius*p.GlowScale)
	}

	r := p.LinkRadius
	f.Links(func(i, j int, d float64) {
		a, b := &f.particles[i], &f.particles[j]
		s.Line(a.Pos, b.Pos, a.Color, (r-d)/r*p.LinkOpacity, p.LinkWidth)
	})
}

// TrailRadius is the glow radius of a trail point; it shrinks with life.
func TrailRadius(life int) float64 {
	if life <= 0 {
		return 0
	}
	return 2 * float64(life)
}
