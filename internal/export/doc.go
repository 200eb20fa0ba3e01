// Package export writes frame sequences to files.
//
//   - [EncodeGIF]: animated GIF of a whole sequence
//   - [WriteSVG]: one frame as an SVG mosaic of pixel runs
//   - [BuildPalette]: GIF palette derived from a frame
//
// The map only ever copies pixels, so every colour of a sequence is already
// present in its first frame. A palette built from frame zero therefore
// covers the whole animation.
package export
