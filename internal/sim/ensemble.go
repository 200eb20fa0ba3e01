package sim

import (
	"context"
	"sync"

	"github.com/san-kum/bakermap/internal/frame"
)

// Ensemble runs independent generators side by side, one per config. Each
// run gets its own Generator from the factory so metric state is never
// shared.
type Ensemble struct {
	newGenerator func() *Generator
}

func NewEnsemble(newGenerator func() *Generator) *Ensemble {
	return &Ensemble{newGenerator: newGenerator}
}

func (e *Ensemble) Run(ctx context.Context, initial frame.Frame, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, c Config) {
			defer wg.Done()
			results[idx], errs[idx] = e.newGenerator().Run(ctx, initial, c)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
