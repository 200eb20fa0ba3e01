package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/bakermap/internal/frame"
)

// Entropy is the Shannon entropy, in bits, of a frame's colour histogram.
// The discrete map can only lose colours, so it never increases.
type Entropy struct {
	name  string
	value float64
}

func NewEntropy() *Entropy {
	return &Entropy{name: "entropy"}
}

func (e *Entropy) Name() string { return e.name }

func (e *Entropy) Observe(step int, f frame.Frame) {
	e.value = ColorEntropy(f)
}

func (e *Entropy) Value() float64 { return e.value }

func (e *Entropy) Reset() { e.value = 0 }

func ColorEntropy(f frame.Frame) float64 {
	hist := f.Histogram()
	total := float64(f.Dim() * f.Dim())
	if total == 0 {
		return 0
	}
	p := make([]float64, 0, len(hist))
	for _, n := range hist {
		p = append(p, float64(n)/total)
	}
	return stat.Entropy(p) / math.Ln2
}
