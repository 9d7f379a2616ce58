package metrics

import "github.com/san-kum/sparkfield/internal/field"

// CursorDistance averages the particle distance to the cursor over every
// particle-frame.
type CursorDistance struct {
	name    string
	total   float64
	samples int
}

func NewCursorDistance() *CursorDistance {
	return &CursorDistance{name: "mean_cursor_distance"}
}

func (c *CursorDistance) Name() string { return c.name }

func (c *CursorDistance) OnFrame(f *field.Field) {
	cursor := f.Cursor()
	for _, p := range f.Particles() {
		c.total += p.Pos.Dist(cursor)
		c.samples++
	}
}

func (c *CursorDistance) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *CursorDistance) Reset() {
	c.total = 0
	c.samples = 0
}

type MeanLinks struct {
	name    string
	total   int
	samples int
}

func NewMeanLinks() *MeanLinks {
	return &MeanLinks{name: "mean_links"}
}

func (m *MeanLinks) Name() string { return m.name }

func (m *MeanLinks) OnFrame(f *field.Field) {
	m.total += f.LinkCount()
	m.samples++
}

func (m *MeanLinks) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanLinks) Reset() {
	m.total = 0
	m.samples = 0
}

// Default returns a fresh instance of every metric.
func Default() []field.Metric {
	return []field.Metric{
		NewPeakPopulation(),
		NewMeanPopulation(),
		NewMaxAgeRatio(),
		NewCursorDistance(),
		NewMeanLinks(),
	}
}

// Observers adapts metrics for field.RunConfig.
func Observers(ms []field.Metric) []field.Observer {
	out := make([]field.Observer, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
