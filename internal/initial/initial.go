// Package initial builds the first frame of a sequence from scratch.
package initial

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/san-kum/bakermap/internal/frame"
)

var (
	ErrInvalidDimension = fmt.Errorf("initial: %w", frame.ErrInvalidDimension)
	ErrUnknownMode      = errors.New("initial: unknown mode")
)

var (
	Red  = color.RGBA{R: 255, A: frame.Opaque}
	Blue = color.RGBA{B: 255, A: frame.Opaque}
)

// Mode selects how the first frame is filled.
type Mode int

const (
	// Split paints the top half red and the bottom half blue.
	Split Mode = iota
	// Random draws every RGB channel independently and uniformly.
	Random
)

func (m Mode) String() string {
	switch m {
	case Split:
		return "split"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "split", "":
		return Split, nil
	case "random", "noise":
		return Random, nil
	}
	return Split, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ModeFromRandom maps the boolean command-line switch to a Mode.
func ModeFromRandom(random bool) Mode {
	if random {
		return Random
	}
	return Split
}

// NewRand returns a source seeded with seed, or a non-deterministic one when
// seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Create builds a dim x dim frame. rng is only consulted in Random mode; nil
// selects a fresh non-deterministic source.
func Create(dim int, mode Mode, rng *rand.Rand) (frame.Frame, error) {
	if !frame.ValidDim(dim) {
		return frame.Frame{}, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	buf, err := frame.NewBuffer(dim)
	if err != nil {
		return frame.Frame{}, err
	}

	switch mode {
	case Split:
		for y := 0; y < dim; y++ {
			// 2y < dim is y/dim < 0.5 without rounding, so the middle row of
			// an even frame is always blue.
			c := Blue
			if 2*y < dim {
				c = Red
			}
			for x := 0; x < dim; x++ {
				buf.Set(x, y, c)
			}
		}
	case Random:
		if rng == nil {
			rng = NewRand(0)
		}
		for y := 0; y < dim; y++ {
			for x := 0; x < dim; x++ {
				buf.Set(x, y, color.RGBA{
					R: uint8(rng.IntN(256)),
					G: uint8(rng.IntN(256)),
					B: uint8(rng.IntN(256)),
					A: frame.Opaque,
				})
			}
		}
	default:
		return frame.Frame{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	return buf.Freeze(), nil
}
