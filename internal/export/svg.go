package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/bakermap/internal/frame"
)

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// EncodeSVG renders f with every pixel as a scale x scale square. Horizontal
// runs of one colour are merged into a single rect.
func EncodeSVG(w io.Writer, f frame.Frame, scale int) error {
	if f.Empty() {
		return ErrNoFrames
	}
	if scale < 1 {
		scale = 1
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	dim := f.Dim()
	canvas.Start(dim*scale, dim*scale)

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; {
			c := f.Pixel(x, y)
			run := 1
			for x+run < dim && f.Pixel(x+run, y) == c {
				run++
			}
			canvas.Rect(x*scale, y*scale, run*scale, scale,
				fmt.Sprintf("fill:#%02x%02x%02x", c.R, c.G, c.B))
			x += run
		}
	}

	canvas.End()
	return ew.err
}

func WriteSVG(path string, f frame.Frame, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := EncodeSVG(file, f, scale); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}
