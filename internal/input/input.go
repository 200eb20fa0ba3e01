// Package input turns an image file into a square first frame.
//
// Images are decoded with the standard PNG, JPEG and GIF decoders and resized
// to dim x dim with a Catmull-Rom kernel, ignoring the original aspect ratio.
package input

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/san-kum/bakermap/internal/frame"
)

// DefaultName is used when an input is requested without a path.
const DefaultName = "input.png"

var (
	ErrInvalidDimension = fmt.Errorf("input: %w", frame.ErrInvalidDimension)
	ErrDecode           = errors.New("input: cannot decode image")
)

// Load opens path, decodes it and resizes it to a dim x dim frame.
func Load(path string, dim int) (frame.Frame, error) {
	if !frame.ValidDim(dim) {
		return frame.Frame{}, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	if path == "" {
		path = DefaultName
	}
	f, err := os.Open(path)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("input: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, dim)
}

func Decode(r io.Reader, dim int) (frame.Frame, error) {
	if !frame.ValidDim(dim) {
		return frame.Frame{}, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Resize(img, dim)
}

// Resize scales img to dim x dim and forces every pixel opaque.
func Resize(img image.Image, dim int) (frame.Frame, error) {
	if !frame.ValidDim(dim) {
		return frame.Frame{}, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	dst := image.NewRGBA(image.Rect(0, 0, dim, dim))
	sb := img.Bounds()
	if sb.Dx() == dim && sb.Dy() == dim {
		draw.Draw(dst, dst.Bounds(), img, sb.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = frame.Opaque
	}
	return frame.FromImage(dst)
}
