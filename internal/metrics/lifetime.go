package metrics

import "github.com/san-kum/sparkfield/internal/field"

// MaxAgeRatio tracks the largest Age/MaxLife seen on an active particle.
// A value of 1 or more means an expired particle survived a frame.
type MaxAgeRatio struct {
	name string
	max  float64
}

func NewMaxAgeRatio() *MaxAgeRatio {
	return &MaxAgeRatio{name: "max_age_ratio"}
}

func (m *MaxAgeRatio) Name() string { return m.name }

func (m *MaxAgeRatio) OnFrame(f *field.Field) {
	for _, p := range f.Particles() {
		if r := float64(p.Age) / float64(p.MaxLife); r > m.max {
			m.max = r
		}
	}
}

func (m *MaxAgeRatio) Value() float64 { return m.max }

func (m *MaxAgeRatio) Reset() { m.max = 0 }
