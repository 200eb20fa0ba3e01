package metrics

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/bakermap/internal/frame"
)

// DefaultBlocks is the number of blocks per side used by NewSegregation.
const DefaultBlocks = 8

// Segregation measures how far the frame is from being well mixed: the mean
// CIE Lab distance between each block's average colour and the frame's
// average colour. A perfectly mixed frame scores 0.
type Segregation struct {
	name   string
	blocks int
	value  float64
}

func NewSegregation(blocks int) *Segregation {
	if blocks < 1 {
		blocks = DefaultBlocks
	}
	return &Segregation{name: "segregation", blocks: blocks}
}

func (s *Segregation) Name() string { return s.name }

func (s *Segregation) Observe(step int, f frame.Frame) {
	s.value = BlockSegregation(f, s.blocks)
}

func (s *Segregation) Value() float64 { return s.value }

func (s *Segregation) Reset() { s.value = 0 }

// BlockSegregation splits f into at most blocks x blocks tiles.
func BlockSegregation(f frame.Frame, blocks int) float64 {
	dim := f.Dim()
	if dim == 0 {
		return 0
	}
	if blocks > dim {
		blocks = dim
	}
	if blocks < 1 {
		blocks = 1
	}

	type acc struct{ r, g, b, n float64 }
	tiles := make([]acc, blocks*blocks)
	var total acc

	for y := 0; y < dim; y++ {
		by := y * blocks / dim
		for x := 0; x < dim; x++ {
			bx := x * blocks / dim
			c := f.Pixel(x, y)
			r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
			t := &tiles[by*blocks+bx]
			t.r += r
			t.g += g
			t.b += b
			t.n++
			total.r += r
			total.g += g
			total.b += b
			total.n++
		}
	}

	mean := colorful.Color{R: total.r / total.n, G: total.g / total.n, B: total.b / total.n}
	sum, count := 0.0, 0
	for _, t := range tiles {
		if t.n == 0 {
			continue
		}
		tile := colorful.Color{R: t.r / t.n, G: t.g / t.n, B: t.b / t.n}
		sum += tile.DistanceLab(mean)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
