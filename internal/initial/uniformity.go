package initial

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/bakermap/internal/frame"
)

// ChannelCounts tallies how often each byte value occurs in the red, green and
// blue channels of f.
func ChannelCounts(f frame.Frame) [3][256]float64 {
	var counts [3][256]float64
	dim := f.Dim()
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			c := f.Pixel(x, y)
			counts[0][c.R]++
			counts[1][c.G]++
			counts[2][c.B]++
		}
	}
	return counts
}

// UniformityPValue returns the chi-square p-value of observed against a
// uniform distribution over its bins. Small values reject uniformity.
func UniformityPValue(observed []float64) float64 {
	total := 0.0
	for _, o := range observed {
		total += o
	}
	if total == 0 || len(observed) < 2 {
		return 1
	}
	expected := make([]float64, len(observed))
	for i := range expected {
		expected[i] = total / float64(len(observed))
	}
	chi2 := stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: float64(len(observed) - 1)}
	return 1 - dist.CDF(chi2)
}
