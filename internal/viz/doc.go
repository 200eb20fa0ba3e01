// Package viz renders frames and run statistics in the terminal.
//
//   - [Preview]: a frame drawn with half-block cells, two pixels per cell
//   - [Canvas]: a Braille dot canvas used to plot coordinate orbits
//   - [ProgressModel]: a Bubble Tea view fed by [ProgressObserver] while a
//     sequence is generated
//
// Colours of labels, bars and borders come from the current [Theme].
package viz
