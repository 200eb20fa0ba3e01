package analysis

import (
	"fmt"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/frame"
)

type Point struct {
	X, Y int
}

// Orbit follows the pixel that (x, y) reads from, then the pixel that one
// reads from, for n steps. The result has n+1 points and starts at (x, y).
func Orbit(v baker.Variant, dim, x, y, n int) ([]Point, error) {
	if !frame.ValidDim(dim) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	if x < 0 || y < 0 || x >= dim || y >= dim {
		return nil, fmt.Errorf("%w: (%d, %d) for dim %d", ErrOutOfRange, x, y, dim)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", baker.ErrUnknownVariant, int(v))
	}
	if n < 0 {
		n = 0
	}

	pts := make([]Point, 0, n+1)
	p := Point{X: x, Y: y}
	pts = append(pts, p)
	for i := 0; i < n; i++ {
		sx, sy := baker.Source(v, dim, p.X, p.Y)
		p = Point{X: sx, Y: sy}
		pts = append(pts, p)
	}
	return pts, nil
}

// Coverage counts the distinct source pixels one transform reads. Pixels
// never read lose their colour after a single step.
func Coverage(v baker.Variant, dim int) (read, total int) {
	if !frame.ValidDim(dim) || !v.Valid() {
		return 0, 0
	}
	hit := make([]bool, dim*dim)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			sx, sy := baker.Source(v, dim, x, y)
			i := sy*dim + sx
			if !hit[i] {
				hit[i] = true
				read++
			}
		}
	}
	return read, dim * dim
}
