package export

import (
	"fmt"
	"image/color"
	"image/color/palette"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/san-kum/bakermap/internal/frame"
)

// MaxPaletteSize is the largest colour table a GIF frame can carry.
const MaxPaletteSize = 256

// kmeansSamples bounds the number of pixels clustered.
const kmeansSamples = 4096

type PaletteMethod int

const (
	// PaletteAuto uses the exact colours when they fit, k-means otherwise.
	PaletteAuto PaletteMethod = iota
	PaletteExact
	PaletteKMeans
	PaletteDominant
	PalettePlan9
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteAuto:
		return "auto"
	case PaletteExact:
		return "exact"
	case PaletteKMeans:
		return "kmeans"
	case PaletteDominant:
		return "dominant"
	case PalettePlan9:
		return "plan9"
	default:
		return fmt.Sprintf("palette(%d)", int(m))
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	for _, m := range []PaletteMethod{PaletteAuto, PaletteExact, PaletteKMeans, PaletteDominant, PalettePlan9} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	if strings.TrimSpace(s) == "" {
		return PaletteAuto, nil
	}
	return PaletteAuto, fmt.Errorf("%w: %q", ErrUnknownPalette, s)
}

// BuildPalette derives at most size colours from f.
func BuildPalette(f frame.Frame, method PaletteMethod, size int) (color.Palette, error) {
	if size <= 0 || size > MaxPaletteSize {
		size = MaxPaletteSize
	}

	switch method {
	case PaletteAuto:
		if p, err := exactPalette(f, size); err == nil {
			return p, nil
		}
		return kmeansPalette(f, size)
	case PaletteExact:
		return exactPalette(f, size)
	case PaletteKMeans:
		return kmeansPalette(f, size)
	case PaletteDominant:
		return dominantPalette(f, size)
	case PalettePlan9:
		return slices.Clone(color.Palette(palette.Plan9)), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPalette, int(method))
}

func exactPalette(f frame.Frame, size int) (color.Palette, error) {
	hist := f.Histogram()
	if len(hist) > size {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyColors, len(hist), size)
	}
	cols := make([]color.RGBA, 0, len(hist))
	for c := range hist {
		cols = append(cols, c)
	}
	sortByBrightness(cols)

	p := make(color.Palette, len(cols))
	for i, c := range cols {
		p[i] = c
	}
	return p, nil
}

func kmeansPalette(f frame.Frame, size int) (color.Palette, error) {
	dim := f.Dim()
	step := 1
	if dim*dim > kmeansSamples {
		step = int(math.Sqrt(float64(dim*dim)/float64(kmeansSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(dim*dim, kmeansSamples))
	for y := 0; y < dim; y += step {
		for x := 0; x < dim; x += step {
			c := f.Pixel(x, y)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, ErrEmptyPalette
	}

	k := min(size, len(dataset))
	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("export: kmeans: %w", err)
	}

	cols := make([]color.RGBA, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		r, g, b := col.RGB255()
		cols = append(cols, color.RGBA{R: r, G: g, B: b, A: frame.Opaque})
	}
	return finishPalette(cols)
}

func dominantPalette(f frame.Frame, size int) (color.Palette, error) {
	found := dominantcolor.FindWeight(f, size)
	cols := make([]color.RGBA, 0, len(found))
	for _, c := range found {
		cols = append(cols, color.RGBA{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: frame.Opaque})
	}
	return finishPalette(cols)
}

func finishPalette(cols []color.RGBA) (color.Palette, error) {
	if len(cols) == 0 {
		return nil, ErrEmptyPalette
	}
	sortByBrightness(cols)
	cols = slices.Compact(cols)

	p := make(color.Palette, len(cols))
	for i, c := range cols {
		p[i] = c
	}
	return p, nil
}

// sortByBrightness orders colours dark to bright by relative luminance, with
// the raw channels as tie-break so the order is total.
func sortByBrightness(cols []color.RGBA) {
	luminance := func(c color.RGBA) float64 {
		r, g, b := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortFunc(cols, func(a, b color.RGBA) int {
		la, lb := luminance(a), luminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		ka := uint32(a.R)<<24 | uint32(a.G)<<16 | uint32(a.B)<<8 | uint32(a.A)
		kb := uint32(b.R)<<24 | uint32(b.G)<<16 | uint32(b.B)<<8 | uint32(b.A)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
}
