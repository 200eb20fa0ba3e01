package frame

import (
	"fmt"
	"image"
	"image/color"
)

const bytesPerPixel = 4

// Opaque is the alpha value every pixel written by the map carries.
const Opaque = 255

// MaxDim is the largest side length a buffer may have. A frame that size
// takes 1 GiB.
const MaxDim = 1 << 14

// ValidDim reports whether dim is a usable side length.
func ValidDim(dim int) bool { return dim > 0 && dim <= MaxDim }

// Buffer is a mutable dim x dim RGBA grid. It becomes a Frame through Freeze,
// after which it must not be written again.
type Buffer struct {
	dim    int
	pix    []uint8
	frozen bool
}

func NewBuffer(dim int) (*Buffer, error) {
	if !ValidDim(dim) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	return &Buffer{
		dim: dim,
		pix: make([]uint8, dim*dim*bytesPerPixel),
	}, nil
}

func (b *Buffer) Dim() int { return b.dim }

// Set writes c at (x, y). Writing out of range or after Freeze panics.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if b.frozen {
		panic(ErrFrozen)
	}
	i := offset(b.dim, x, y)
	b.pix[i] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
}

// Freeze hands the pixels to an immutable Frame without copying.
func (b *Buffer) Freeze() Frame {
	if b.frozen {
		panic(ErrFrozen)
	}
	b.frozen = true
	f := Frame{dim: b.dim, pix: b.pix}
	b.pix = nil
	return f
}

// Frame is an immutable square snapshot of one iteration. Copies of a Frame
// share storage, which is safe because nothing writes to it.
type Frame struct {
	dim int
	pix []uint8
}

func (f Frame) Dim() int { return f.dim }

// Empty reports whether f is the zero Frame.
func (f Frame) Empty() bool { return f.dim == 0 }

// Pixel returns the colour at (x, y). Out-of-range coordinates panic.
func (f Frame) Pixel(x, y int) color.RGBA {
	i := offset(f.dim, x, y)
	return color.RGBA{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2], A: f.pix[i+3]}
}

func (f Frame) ColorModel() color.Model { return color.RGBAModel }

func (f Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.dim, f.dim) }

func (f Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.dim || y >= f.dim {
		return color.RGBA{}
	}
	return f.Pixel(x, y)
}

// Equal reports whether both frames have the same size and identical bytes.
func (f Frame) Equal(other Frame) bool {
	if f.dim != other.dim || len(f.pix) != len(other.pix) {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Bytes returns a copy of the raw RGBA bytes in row-major order.
func (f Frame) Bytes() []byte {
	out := make([]byte, len(f.pix))
	copy(out, f.pix)
	return out
}

// RGBA returns a standalone copy of the frame as an *image.RGBA.
func (f Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	copy(img.Pix, f.pix)
	return img
}

// Histogram counts the pixels of every distinct colour.
func (f Frame) Histogram() map[color.RGBA]int {
	h := make(map[color.RGBA]int)
	for i := 0; i < len(f.pix); i += bytesPerPixel {
		h[color.RGBA{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2], A: f.pix[i+3]}]++
	}
	return h
}

// FromImage copies a square image into a Frame, anchoring its bounds at the
// origin.
func FromImage(img image.Image) (Frame, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return Frame{}, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}
	buf, err := NewBuffer(b.Dx())
	if err != nil {
		return Frame{}, err
	}
	for y := 0; y < buf.dim; y++ {
		for x := 0; x < buf.dim; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			buf.Set(x, y, c)
		}
	}
	return buf.Freeze(), nil
}

func offset(dim, x, y int) int {
	if x < 0 || y < 0 || x >= dim || y >= dim {
		panic(fmt.Sprintf("frame: pixel (%d, %d) out of range for dim %d", x, y, dim))
	}
	return (y*dim + x) * bytesPerPixel
}
