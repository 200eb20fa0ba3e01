package viz

import (
	"strings"

	"github.com/san-kum/bakermap/internal/analysis"
)

const brailleBase = 0x2800

// Braille dots per cell, indexed [row][column]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells, each holding 2x4 dots.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates. Dots outside the canvas
// are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBase
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// PlotOrbit scales the points of a dim x dim grid onto the canvas and joins
// consecutive points with lines.
func (c *Canvas) PlotOrbit(pts []analysis.Point, dim int) {
	if dim <= 0 || len(pts) == 0 {
		return
	}
	w, h := c.Width*2, c.Height*4
	scale := func(p analysis.Point) (int, int) {
		return p.X * (w - 1) / max(dim-1, 1), p.Y * (h - 1) / max(dim-1, 1)
	}
	px, py := scale(pts[0])
	c.Set(px, py)
	for _, p := range pts[1:] {
		x, y := scale(p)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
