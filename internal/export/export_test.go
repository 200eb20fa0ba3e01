package export

import (
	"bytes"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/frame"
	"github.com/san-kum/bakermap/internal/initial"
)

func splitSequence(t *testing.T, dim, n int, v baker.Variant) []frame.Frame {
	t.Helper()
	f, err := initial.Create(dim, initial.Split, nil)
	require.NoError(t, err)
	frames := []frame.Frame{f}
	for len(frames) < n {
		frames = append(frames, baker.Transform(frames[len(frames)-1], v))
	}
	return frames
}

func labeled(t *testing.T, dim int) frame.Frame {
	t.Helper()
	buf, err := frame.NewBuffer(dim)
	require.NoError(t, err)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			buf.Set(x, y, color.RGBA{R: uint8(x * 15), G: uint8(y * 15), B: 0, A: 255})
		}
	}
	return buf.Freeze()
}

func TestBuildPalette_Exact(t *testing.T) {
	f := splitSequence(t, 10, 1, baker.Unfolded)[0]

	p, err := BuildPalette(f, PaletteExact, MaxPaletteSize)
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, initial.Blue, p[0])
	assert.Equal(t, initial.Red, p[1])

	_, err = BuildPalette(labeled(t, 17), PaletteExact, MaxPaletteSize)
	assert.ErrorIs(t, err, ErrTooManyColors)
}

func TestBuildPalette_Methods(t *testing.T) {
	many := labeled(t, 17)

	auto, err := BuildPalette(many, PaletteAuto, MaxPaletteSize)
	require.NoError(t, err)
	assert.NotEmpty(t, auto)
	assert.LessOrEqual(t, len(auto), MaxPaletteSize)

	km, err := BuildPalette(many, PaletteKMeans, 8)
	require.NoError(t, err)
	assert.NotEmpty(t, km)
	assert.LessOrEqual(t, len(km), 8)

	dom, err := BuildPalette(many, PaletteDominant, 6)
	require.NoError(t, err)
	assert.NotEmpty(t, dom)

	plan9, err := BuildPalette(many, PalettePlan9, MaxPaletteSize)
	require.NoError(t, err)
	assert.Len(t, plan9, 256)

	_, err = BuildPalette(many, PaletteMethod(42), MaxPaletteSize)
	assert.ErrorIs(t, err, ErrUnknownPalette)
}

func TestParsePaletteMethod(t *testing.T) {
	tests := map[string]PaletteMethod{
		"":         PaletteAuto,
		"auto":     PaletteAuto,
		"EXACT":    PaletteExact,
		"kmeans":   PaletteKMeans,
		"dominant": PaletteDominant,
		"plan9":    PalettePlan9,
	}
	for input, want := range tests {
		got, err := ParsePaletteMethod(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParsePaletteMethod("sepia")
	assert.ErrorIs(t, err, ErrUnknownPalette)
}

func TestEncodeGIF_RoundTrip(t *testing.T) {
	frames := splitSequence(t, 12, 4, baker.Folded)

	var buf bytes.Buffer
	require.NoError(t, EncodeGIF(&buf, frames, DefaultGIFOptions()))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, len(frames))
	assert.Equal(t, []int{10, 10, 10, 10}, anim.Delay)

	for i, img := range anim.Image {
		for y := 0; y < 12; y++ {
			for x := 0; x < 12; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				want := frames[i].Pixel(x, y)
				assert.Equal(t, []uint32{uint32(want.R), uint32(want.G), uint32(want.B)},
					[]uint32{r >> 8, g >> 8, b >> 8}, "frame %d pixel (%d, %d)", i, x, y)
			}
		}
	}
}

func TestEncodeGIF_Dither(t *testing.T) {
	f, err := initial.Create(16, initial.Random, initial.NewRand(3))
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := GIFOptions{Delay: 5, Palette: PalettePlan9, Dither: true}
	require.NoError(t, EncodeGIF(&buf, []frame.Frame{f, baker.Transform(f, baker.Unfolded)}, opts))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
	assert.Equal(t, []int{5, 5}, anim.Delay)
}

func TestEncodeGIF_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, EncodeGIF(&buf, nil, DefaultGIFOptions()), ErrNoFrames)

	a := splitSequence(t, 4, 1, baker.Unfolded)[0]
	b := splitSequence(t, 5, 1, baker.Unfolded)[0]
	assert.ErrorIs(t, EncodeGIF(&buf, []frame.Frame{a, b}, DefaultGIFOptions()), ErrDimensionMismatch)
}

func TestWriteGIF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Baker.gif")

	require.NoError(t, WriteGIF(path, splitSequence(t, 8, 3, baker.Unfolded), DefaultGIFOptions()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	missing := filepath.Join(dir, "empty.gif")
	assert.ErrorIs(t, WriteGIF(missing, nil, DefaultGIFOptions()), ErrNoFrames)
	assert.NoFileExists(t, missing)

	assert.Error(t, WriteGIF(filepath.Join(dir, "no", "such", "dir.gif"), splitSequence(t, 4, 1, baker.Unfolded), DefaultGIFOptions()))
}

func TestEncodeSVG(t *testing.T) {
	f := splitSequence(t, 2, 1, baker.Unfolded)[0]

	var buf bytes.Buffer
	require.NoError(t, EncodeSVG(&buf, f, 3))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "<rect"))
	assert.Contains(t, out, "fill:#ff0000")
	assert.Contains(t, out, "fill:#0000ff")
	assert.Contains(t, out, `width="6"`)

	assert.ErrorIs(t, EncodeSVG(&buf, frame.Frame{}, 1), ErrNoFrames)

	path := filepath.Join(t.TempDir(), "frame.svg")
	require.NoError(t, WriteSVG(path, f, 1))
	assert.FileExists(t, path)
}
