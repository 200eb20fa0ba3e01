// Package metrics provides per-frame measurements of how the map mixes an
// image.
package metrics

import "github.com/san-kum/bakermap/internal/frame"

// Metric mirrors sim.Metric so this package stays free of the generator.
type Metric interface {
	Name() string
	Observe(step int, f frame.Frame)
	Value() float64
	Reset()
}

// Default returns a fresh instance of every metric.
func Default() []Metric {
	return []Metric{
		NewEntropy(),
		NewDistinct(),
		NewSegregation(DefaultBlocks),
	}
}

func Names() []string {
	ms := Default()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}
