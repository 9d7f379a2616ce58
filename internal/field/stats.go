package field

// Stats summarises one frame.
type Stats struct {
	Frame          int     `json:"frame"`
	Population     int     `json:"population"`
	Trail          int     `json:"trail"`
	Links          int     `json:"links"`
	MeanAgeRatio   float64 `json:"mean_age_ratio"`
	MaxAgeRatio    float64 `json:"max_age_ratio"`
	MeanCursorDist float64 `json:"mean_cursor_dist"`
	DrawOps        int     `json:"draw_ops"`
}

func (f *Field) Stats() Stats {
	st := Stats{
		Frame:      f.frame,
		Population: len(f.particles),
		Trail:      len(f.trail),
		Links:      f.LinkCount(),
	}
	if len(f.particles) == 0 {
		return st
	}
	var ageSum, distSum float64
	for i := range f.particles {
		p := &f.particles[i]
		ratio := float64(p.Age) / float64(p.MaxLife)
		ageSum += ratio
		if ratio > st.MaxAgeRatio {
			st.MaxAgeRatio = ratio
		}
		distSum += p.Pos.Dist(f.cursor)
	}
	n := float64(len(f.particles))
	st.MeanAgeRatio = ageSum / n
	st.MeanCursorDist = distSum / n
	return st
}
