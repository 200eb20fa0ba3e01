package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/export"
	"github.com/san-kum/bakermap/internal/initial"
	"github.com/san-kum/bakermap/internal/metrics"
	"github.com/san-kum/bakermap/internal/sim"
)

// Registry resolves the names accepted in config files and on the command
// line.
type Registry struct {
	variants map[string]baker.Variant
	modes    map[string]initial.Mode
	palettes map[string]export.PaletteMethod
	metrics  map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		variants: make(map[string]baker.Variant),
		modes:    make(map[string]initial.Mode),
		palettes: make(map[string]export.PaletteMethod),
		metrics:  make(map[string]func() sim.Metric),
	}

	for _, v := range baker.Variants() {
		r.variants[v.String()] = v
	}

	r.modes[initial.Split.String()] = initial.Split
	r.modes[initial.Random.String()] = initial.Random

	for _, p := range []export.PaletteMethod{
		export.PaletteAuto, export.PaletteExact, export.PaletteKMeans,
		export.PaletteDominant, export.PalettePlan9,
	} {
		r.palettes[p.String()] = p
	}

	r.metrics["entropy"] = func() sim.Metric { return metrics.NewEntropy() }
	r.metrics["distinct"] = func() sim.Metric { return metrics.NewDistinct() }
	r.metrics["segregation"] = func() sim.Metric { return metrics.NewSegregation(metrics.DefaultBlocks) }

	return r
}

func (r *Registry) GetVariant(name string) (baker.Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return baker.Unfolded, fmt.Errorf("unknown variant: %s", name)
	}
	return v, nil
}

func (r *Registry) GetMode(name string) (initial.Mode, error) {
	m, ok := r.modes[name]
	if !ok {
		return initial.Split, fmt.Errorf("unknown mode: %s", name)
	}
	return m, nil
}

func (r *Registry) GetPalette(name string) (export.PaletteMethod, error) {
	p, ok := r.palettes[name]
	if !ok {
		return export.PaletteAuto, fmt.Errorf("unknown palette: %s", name)
	}
	return p, nil
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListVariants() []string { return sortedKeys(r.variants) }
func (r *Registry) ListModes() []string    { return sortedKeys(r.modes) }
func (r *Registry) ListPalettes() []string { return sortedKeys(r.palettes) }
func (r *Registry) ListMetrics() []string  { return sortedKeys(r.metrics) }

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	names := r.ListMetrics()
	ms := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		ms = append(ms, r.metrics[name]())
	}
	return ms
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
