package metrics

import "github.com/san-kum/sparkfield/internal/field"

type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) OnFrame(f *field.Field) {
	if n := f.Len(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }

func (p *PeakPopulation) Reset() { p.peak = 0 }

type MeanPopulation struct {
	name    string
	total   int
	samples int
}

func NewMeanPopulation() *MeanPopulation {
	return &MeanPopulation{name: "mean_population"}
}

func (m *MeanPopulation) Name() string { return m.name }

func (m *MeanPopulation) OnFrame(f *field.Field) {
	m.total += f.Len()
	m.samples++
}

func (m *MeanPopulation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanPopulation) Reset() {
	m.total = 0
	m.samples = 0
}
