// Package analysis characterizes the long-run behaviour of the discrete
// baker's map.
//
// The map on a finite grid is a function from pixels to pixels, so every
// frame sequence is eventually periodic:
//
//   - [DetectCycle]: transient length and period of a frame sequence
//   - [Orbit]: the source coordinates a destination pixel reads from, step by step
//   - [Coverage]: how many source pixels a single step actually reads
//
// Coverage below the pixel count means colours are lost on every step:
//
//	read, total := analysis.Coverage(baker.Unfolded, 100)
//	lost := total - read
package analysis
