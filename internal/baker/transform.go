package baker

import (
	"fmt"
	"image/color"

	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/frame"
)

// Options tunes how a single transform is executed. The result does not
// depend on the options.
type Options struct {
	Backend compute.Backend
}

// Source returns the pixel (sx, sy) that destination pixel (x, y) is read
// from. Both are image coordinates, x the column and y the row, on source and
// destination alike. The half a destination row falls in picks which half of
// the source it stretches: rows are squeezed by two, columns stretched by two.
// Both results lie in [0, dim) whenever x and y do.
func Source(v Variant, dim, x, y int) (sx, sy int) {
	switch v {
	case Unfolded:
		scaled := (2 * y / dim) * dim
		return (x + scaled) / 2, 2*y - scaled
	case Folded:
		// 2y < dim is y/dim < 0.5 without rounding.
		if 2*y < dim {
			return x / 2, 2 * y
		}
		return (dim - 1) - x/2, 2*(dim-1) - 2*y
	}
	panic(fmt.Sprintf("baker: %v", v))
}

// Transform applies one iteration of the map with the default backend.
func Transform(f frame.Frame, v Variant) frame.Frame {
	return TransformWith(f, v, Options{})
}

func TransformWith(f frame.Frame, v Variant, opts Options) frame.Frame {
	if !v.Valid() {
		panic(fmt.Errorf("%w: %d", ErrUnknownVariant, int(v)))
	}
	dim := f.Dim()
	dst, err := frame.NewBuffer(dim)
	if err != nil {
		panic(err)
	}

	backend := opts.Backend
	if backend == nil {
		backend = compute.GetBackend()
	}

	// Every row writes a disjoint part of dst and only reads f.
	backend.Rows(dim, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < dim; x++ {
				src := f.Pixel(Source(v, dim, x, y))
				dst.Set(x, y, color.RGBA{R: src.R, G: src.G, B: src.B, A: frame.Opaque})
			}
		}
	})

	return dst.Freeze()
}
