package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/sparkfield/internal/field"
)

// SweepPoint holds the outcome of one run of a parameter sweep.
type SweepPoint struct {
	Value          float64
	MeanPopulation float64
	PeakPopulation int
	MeanLinks      float64
}

// Sweep runs base once per value of the named parameter. newDriver, if set,
// supplies a fresh driver per run.
func Sweep(
	ctx context.Context,
	base field.RunConfig,
	param string,
	lo, hi float64,
	steps int,
	newDriver func() field.Driver,
) ([]SweepPoint, error) {
	if steps < 2 {
		steps = 2
	}
	step := (hi - lo) / float64(steps-1)
	points := make([]SweepPoint, 0, steps)

	for i := 0; i < steps; i++ {
		value := lo + float64(i)*step
		cfg := base
		if err := cfg.Params.SetParam(param, value); err != nil {
			return nil, err
		}
		if newDriver != nil {
			cfg.Driver = newDriver()
		}

		res, err := field.Run(ctx, cfg)
		if err != nil {
			return points, fmt.Errorf("%s = %g: %w", param, value, err)
		}
		points = append(points, sweepPoint(value, res.Samples))
	}
	return points, nil
}

func sweepPoint(value float64, samples []field.Stats) SweepPoint {
	p := SweepPoint{Value: value}
	if len(samples) == 0 {
		return p
	}
	var pop, links int
	for _, st := range samples {
		pop += st.Population
		links += st.Links
		if st.Population > p.PeakPopulation {
			p.PeakPopulation = st.Population
		}
	}
	n := float64(len(samples))
	p.MeanPopulation = float64(pop) / n
	p.MeanLinks = float64(links) / n
	return p
}
