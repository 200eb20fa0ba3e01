package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bakermap/internal/frame"
)

const halfBlock = "▀"

// Preview draws f at most width cells wide. Each cell shows two vertically
// stacked pixels: the upper one as foreground, the lower one as background.
// Larger frames are sampled nearest-neighbour.
func Preview(f frame.Frame, width int) string {
	dim := f.Dim()
	if dim == 0 || width <= 0 {
		return ""
	}
	cols := min(width, dim)
	rows := cols
	if rows%2 == 1 && rows < dim {
		rows++
	}

	sample := func(i, n int) int { return i * dim / n }

	var out strings.Builder
	for r := 0; r < rows; r += 2 {
		for c := 0; c < cols; c++ {
			x := sample(c, cols)
			top := f.Pixel(x, sample(r, rows))
			style := lipgloss.NewStyle().Foreground(HexColor(top))
			if r+1 < rows {
				bottom := f.Pixel(x, sample(r+1, rows))
				style = style.Background(HexColor(bottom))
			}
			out.WriteString(style.Render(halfBlock))
		}
		out.WriteByte('\n')
	}
	return out.String()
}
