package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/frame"
)

// Generate returns nsteps frames starting with initial itself. nsteps <= 0
// yields an empty sequence.
func Generate(initial frame.Frame, nsteps int, v baker.Variant) []frame.Frame {
	if nsteps <= 0 {
		return []frame.Frame{}
	}
	frames := make([]frame.Frame, nsteps)
	frames[0] = initial
	for i := 1; i < nsteps; i++ {
		frames[i] = baker.Transform(frames[i-1], v)
	}
	return frames
}

type Generator struct {
	backend   compute.Backend
	metrics   []Metric
	observers []Observer
}

// New returns a generator running transforms on backend; nil selects the
// package default.
func New(backend compute.Backend) *Generator {
	return &Generator{
		backend:   backend,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (g *Generator) AddMetric(m Metric)     { g.metrics = append(g.metrics, m) }
func (g *Generator) AddObserver(o Observer) { g.observers = append(g.observers, o) }

// Run produces cfg.Steps frames from initial. On cancellation the frames made
// so far are returned together with a *StepError wrapping ErrCanceled.
func (g *Generator) Run(ctx context.Context, initial frame.Frame, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Steps > 0 && initial.Empty() {
		return nil, ErrEmptyFrame
	}

	result := &Result{
		Frames:  make([]frame.Frame, 0, cfg.Steps),
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
	}

	for _, m := range g.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Steps)
	}

	opts := baker.Options{Backend: g.backend}
	current := initial

	for i := 0; i < cfg.Steps; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				g.collect(result)
				return result, &StepError{Step: i, Wrapped: fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())}
			default:
			}
			current = baker.TransformWith(current, cfg.Variant, opts)
		}

		result.Frames = append(result.Frames, current)
		result.StepsTaken++

		for _, m := range g.metrics {
			m.Observe(i, current)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, obs := range g.observers {
			obs.OnFrame(i, current)
		}
	}

	g.collect(result)
	return result, nil
}

func (g *Generator) collect(result *Result) {
	for _, m := range g.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
