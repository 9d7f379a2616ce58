package field

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent headless simulations with consecutive seeds.
type Ensemble struct {
	base      RunConfig
	numRuns   int
	seedStart int64
	// Setup installs per-run drivers and observers; they must not be shared
	// between runs.
	Setup func(cfg *RunConfig)
}

func NewEnsemble(base RunConfig, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

// Run returns one result per seed, in seed order. The first error cancels
// the remaining runs.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", ErrParameterBounds, e.numRuns)
	}
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfg := e.base
			cfg.Seed = e.seedStart + int64(idx)
			cfg.Surface = nil
			cfg.Driver = nil
			cfg.Observers = nil
			cfg.OnFinish = nil
			if e.Setup != nil {
				e.Setup(&cfg)
			}

			res, err := Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
