package field

import (
	"context"
	"fmt"
	"math/rand"
)

type RunConfig struct {
	Params    Params
	Width     int
	Height    int
	Frames    int
	Seed      int64
	Driver    Driver
	Observers []Observer
	// Surface defaults to a BlankSurface.
	Surface Surface
	// ValidateState stops the run at the first non-finite particle.
	ValidateState bool
	// OnFinish sees the field after the last frame, before the simulator stops.
	OnFinish func(f *Field)
}

type Result struct {
	Seed           int64
	Samples        []Stats
	Final          []Particle
	Metrics        map[string]float64
	FramesRendered int
	FramesSkipped  int
}

func (c RunConfig) validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrParameterBounds, c.Frames)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNoSurface, c.Width, c.Height)
	}
	return c.Params.Validate()
}

// Run drives a simulator for cfg.Frames frames without a window, feeding
// driver input before every frame.
func Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	surface := cfg.Surface
	if surface == nil {
		surface = NewBlankSurface()
	}
	queue := NewFrameQueue()
	sim := NewSimulator(surface, queue, rand.New(rand.NewSource(cfg.Seed)), cfg.Params)

	metrics := make([]Metric, 0)
	for _, o := range cfg.Observers {
		if m, ok := o.(Metric); ok {
			m.Reset()
			metrics = append(metrics, m)
		}
		sim.AddObserver(o)
	}

	result := &Result{
		Seed:    cfg.Seed,
		Samples: make([]Stats, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	sim.Start(cfg.Width, cfg.Height)
	defer sim.Stop()

	w, h := float64(cfg.Width), float64(cfg.Height)
	counter, counts := surface.(interface{ Ops() int })

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if cfg.Driver != nil {
			in := cfg.Driver.Next(i, w, h)
			if in.Move {
				sim.PointerMove(in.Pos.X, in.Pos.Y)
			}
			if in.Click {
				sim.PointerClick(in.Pos.X, in.Pos.Y)
			}
		}

		queue.Pump()

		st := sim.Field().Stats()
		if counts {
			st.DrawOps = counter.Ops()
		}
		result.Samples = append(result.Samples, st)

		if cfg.ValidateState {
			if err := sim.Field().Validate(); err != nil {
				return result, err
			}
		}
	}

	if cfg.OnFinish != nil {
		cfg.OnFinish(sim.Field())
	}

	result.Final = append([]Particle(nil), sim.Field().Particles()...)
	result.FramesRendered = sim.FramesRendered()
	result.FramesSkipped = sim.FramesSkipped()
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
