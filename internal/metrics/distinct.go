package metrics

import "github.com/san-kum/bakermap/internal/frame"

// Distinct counts the distinct colours of the latest frame.
type Distinct struct {
	name  string
	count int
}

func NewDistinct() *Distinct {
	return &Distinct{name: "distinct"}
}

func (d *Distinct) Name() string { return d.name }

func (d *Distinct) Observe(step int, f frame.Frame) {
	d.count = len(f.Histogram())
}

func (d *Distinct) Value() float64 { return float64(d.count) }

func (d *Distinct) Reset() { d.count = 0 }
