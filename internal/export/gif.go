package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/san-kum/bakermap/internal/frame"
)

// DefaultDelay is the per-frame delay in 1/100 s.
const DefaultDelay = 10

type GIFOptions struct {
	Delay   int
	Palette PaletteMethod
	Dither  bool
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Delay: DefaultDelay, Palette: PaletteAuto}
}

// EncodeGIF writes frames as one animated GIF. The palette is taken from the
// first frame and shared by all frames.
func EncodeGIF(w io.Writer, frames []frame.Frame, opts GIFOptions) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	dim := frames[0].Dim()
	for i, f := range frames {
		if f.Dim() != dim {
			return fmt.Errorf("%w: frame %d is %d, expected %d", ErrDimensionMismatch, i, f.Dim(), dim)
		}
	}

	pal, err := BuildPalette(frames[0], opts.Palette, MaxPaletteSize)
	if err != nil {
		return err
	}

	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}

	anim := gif.GIF{LoopCount: opts.LoopCount}
	for _, f := range frames {
		anim.Image = append(anim.Image, Quantize(f, pal, opts.Dither))
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("export: encode gif: %w", err)
	}
	return nil
}

// Quantize maps f onto pal, optionally with Floyd-Steinberg error diffusion.
func Quantize(f frame.Frame, pal color.Palette, dither bool) *image.Paletted {
	b := f.Bounds()
	p := image.NewPaletted(b, pal)
	if dither {
		draw.FloydSteinberg.Draw(p, b, f, image.Point{})
	} else {
		draw.Draw(p, b, f, image.Point{}, draw.Src)
	}
	return p
}

// WriteGIF encodes into memory first so that a failed encode never leaves a
// truncated file behind.
func WriteGIF(path string, frames []frame.Frame, opts GIFOptions) error {
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
