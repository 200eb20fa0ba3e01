package baker_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/frame"
	"github.com/san-kum/bakermap/internal/initial"
)

// labeled builds a frame whose pixel (x, y) encodes its own coordinate.
func labeled(t *testing.T, dim int, alpha uint8) frame.Frame {
	t.Helper()
	buf, err := frame.NewBuffer(dim)
	require.NoError(t, err)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			buf.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: alpha})
		}
	}
	return buf.Freeze()
}

// stepByRows applies the map the way it is usually written down: the loop
// pair (i, j) drives the formulas, and the pixel at column j, row i of the
// result is read from column sRow, row sCol of the input.
func stepByRows(in frame.Frame, v baker.Variant) frame.Frame {
	dim := in.Dim()
	buf, _ := frame.NewBuffer(dim)
	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			var sRow, sCol int
			switch v {
			case baker.Unfolded:
				scaled := (2 * i / dim) * dim
				sRow, sCol = (j+scaled)/2, 2*i-scaled
			case baker.Folded:
				if float64(i)/float64(dim) < 0.5 {
					sRow, sCol = j/2, 2*i
				} else {
					sRow, sCol = (dim-1)-j/2, 2*(dim-1)-2*i
				}
			}
			c := in.Pixel(sRow, sCol)
			c.A = 255
			buf.Set(j, i, c)
		}
	}
	return buf.Freeze()
}

func TestSource_InRange(t *testing.T) {
	for _, v := range baker.Variants() {
		for dim := 1; dim <= 64; dim++ {
			for y := 0; y < dim; y++ {
				for x := 0; x < dim; x++ {
					sx, sy := baker.Source(v, dim, x, y)
					if sx < 0 || sx >= dim || sy < 0 || sy >= dim {
						t.Fatalf("%s dim %d: (%d, %d) reads (%d, %d)", v, dim, x, y, sx, sy)
					}
				}
			}
		}
	}
}

func TestSource_SinglePixel(t *testing.T) {
	for _, v := range baker.Variants() {
		sx, sy := baker.Source(v, 1, 0, 0)
		assert.Equal(t, 0, sx)
		assert.Equal(t, 0, sy)
	}
}

func TestSource_Grid4(t *testing.T) {
	tests := []struct {
		name   string
		v      baker.Variant
		x, y   int
		sx, sy int
	}{
		{"unfolded top half", baker.Unfolded, 2, 1, 1, 2},
		{"unfolded bottom half", baker.Unfolded, 1, 3, 2, 2},
		{"unfolded last pixel", baker.Unfolded, 3, 3, 3, 2},
		{"folded top half", baker.Folded, 3, 1, 1, 2},
		{"folded boundary row", baker.Folded, 0, 2, 3, 2},
		{"folded bottom edge", baker.Folded, 1, 3, 3, 0},
		{"folded bottom right", baker.Folded, 3, 3, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := baker.Source(tt.v, 4, tt.x, tt.y)
			assert.Equal(t, []int{tt.sx, tt.sy}, []int{sx, sy})
		})
	}
}

func TestSource_UnknownVariant(t *testing.T) {
	assert.Panics(t, func() { baker.Source(baker.Variant(7), 4, 0, 0) })
}

func TestTransform_WorkedExample(t *testing.T) {
	// Loop pair (3, 0): scaled 4, reads column 2 row 2, written at column 0 row 3.
	in := labeled(t, 4, 255)
	out := baker.Transform(in, baker.Unfolded)
	assert.Equal(t, in.Pixel(2, 2), out.Pixel(0, 3))
}

func TestTransform_MatchesRowLoop(t *testing.T) {
	for _, v := range baker.Variants() {
		for _, dim := range []int{1, 2, 4, 7, 8, 15} {
			in := labeled(t, dim, 9)
			want := stepByRows(in, v)
			got := baker.Transform(in, v)
			for y := 0; y < dim; y++ {
				for x := 0; x < dim; x++ {
					require.Equal(t, want.Pixel(x, y), got.Pixel(x, y), "%s dim %d at (%d, %d)", v, dim, x, y)
				}
			}
		}
	}
}

func TestTransform_SplitBecomesHorizontalBands(t *testing.T) {
	f, err := initial.Create(8, initial.Split, nil)
	require.NoError(t, err)

	r, b := initial.Red, initial.Blue
	tests := []struct {
		v     baker.Variant
		bands []color.RGBA
	}{
		{baker.Unfolded, []color.RGBA{r, r, b, b, r, r, b, b}},
		{baker.Folded, []color.RGBA{r, r, b, b, b, b, r, r}},
	}

	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			out := baker.Transform(f, tt.v)
			for y, want := range tt.bands {
				for x := 0; x < 8; x++ {
					assert.Equal(t, want, out.Pixel(x, y), "(%d, %d)", x, y)
				}
			}
		})
	}
}

func TestTransform_MatchesSource(t *testing.T) {
	for _, v := range baker.Variants() {
		in := labeled(t, 9, 7)
		out := baker.Transform(in, v)
		require.Equal(t, 9, out.Dim())
		for y := 0; y < 9; y++ {
			for x := 0; x < 9; x++ {
				src := in.Pixel(baker.Source(v, 9, x, y))
				assert.Equal(t, color.RGBA{R: src.R, G: src.G, B: src.B, A: 255}, out.Pixel(x, y))
			}
		}
	}
}

func TestTransform_Deterministic(t *testing.T) {
	for _, v := range baker.Variants() {
		in := labeled(t, 33, 255)
		before := in.Bytes()

		first := baker.Transform(in, v)
		second := baker.Transform(in, v)

		assert.True(t, first.Equal(second))
		assert.Equal(t, before, in.Bytes())
	}
}

func TestTransform_Backends(t *testing.T) {
	in := labeled(t, 100, 255)
	for _, v := range baker.Variants() {
		serial := baker.TransformWith(in, v, baker.Options{Backend: compute.NewSerialBackend()})
		parallel := baker.TransformWith(in, v, baker.Options{Backend: compute.NewCPUBackend(8)})
		assert.True(t, parallel.Equal(serial), "%s", v)
	}
}

func TestTransform_SinglePixel(t *testing.T) {
	buf, err := frame.NewBuffer(1)
	require.NoError(t, err)
	buf.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 0})
	in := buf.Freeze()

	for _, v := range baker.Variants() {
		out := baker.Transform(in, v)
		assert.Equal(t, 1, out.Dim())
		assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, out.Pixel(0, 0))
	}
}

func TestTransform_NoNewColours(t *testing.T) {
	for _, v := range baker.Variants() {
		for _, dim := range []int{2, 4, 10, 32} {
			in := labeled(t, dim, 255)
			inColors := in.Histogram()
			out := baker.Transform(in, v)
			for c := range out.Histogram() {
				assert.Contains(t, inColors, c, "%s dim %d", v, dim)
			}
		}
	}
}

func TestTransform_UnknownVariant(t *testing.T) {
	in := labeled(t, 2, 255)
	assert.Panics(t, func() { baker.Transform(in, baker.Variant(-1)) })
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    baker.Variant
		wantErr bool
	}{
		{"unfolded", baker.Unfolded, false},
		{"cut", baker.Unfolded, false},
		{"", baker.Unfolded, false},
		{"Folded", baker.Folded, false},
		{" fold ", baker.Folded, false},
		{"twisted", baker.Unfolded, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := baker.ParseVariant(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, baker.ErrUnknownVariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVariantFromFolded(t *testing.T) {
	assert.Equal(t, baker.Folded, baker.VariantFromFolded(true))
	assert.Equal(t, baker.Unfolded, baker.VariantFromFolded(false))
	assert.Equal(t, "folded", baker.Folded.String())
	assert.False(t, baker.Variant(5).Valid())
}
