package automation

import (
	"context"

	"github.com/san-kum/bakermap/internal/analysis"
	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/experiment"
	"github.com/san-kum/bakermap/internal/frame"
	"github.com/san-kum/bakermap/internal/sim"
)

type Comparison struct {
	Variant baker.Variant
	Result  *sim.Result
}

// CompareVariants runs both variants from the same initial frame
// concurrently, each with a fresh set of the default metrics.
func CompareVariants(ctx context.Context, initial frame.Frame, steps, workers int) ([]Comparison, error) {
	registry := experiment.NewRegistry()
	ensemble := sim.NewEnsemble(func() *sim.Generator {
		g := sim.New(compute.ForWorkers(workers))
		for _, m := range registry.DefaultMetrics() {
			g.AddMetric(m)
		}
		return g
	})

	variants := baker.Variants()
	cfgs := make([]sim.Config, len(variants))
	for i, v := range variants {
		cfgs[i] = sim.Config{Steps: steps, Variant: v}
	}

	results, err := ensemble.Run(ctx, initial, cfgs)
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(variants))
	for i, v := range variants {
		out[i] = Comparison{Variant: v, Result: results[i]}
	}
	return out, nil
}

type SweepResult struct {
	Dim   int
	Cycle analysis.Cycle
	Read  int
	Total int
}

// SweepDimensions measures cycle length and per-step coverage for every
// dimension from lo to hi inclusive, starting from the frame create returns.
func SweepDimensions(ctx context.Context, lo, hi int, v baker.Variant, maxSteps int, create func(dim int) (frame.Frame, error)) ([]SweepResult, error) {
	if lo < 1 {
		lo = 1
	}
	results := make([]SweepResult, 0, max(hi-lo+1, 0))
	for dim := lo; dim <= hi; dim++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		f, err := create(dim)
		if err != nil {
			return results, err
		}
		cycle, err := analysis.DetectCycle(f, v, maxSteps)
		if err != nil {
			return results, err
		}
		read, total := analysis.Coverage(v, dim)
		results = append(results, SweepResult{Dim: dim, Cycle: cycle, Read: read, Total: total})
	}
	return results, nil
}
