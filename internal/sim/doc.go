// Package sim drives the baker's map over a sequence of frames.
//
//   - [Generate]: plain sequence, frame i is the transform of frame i-1
//   - [Generator]: same sequence with cancellation, metrics and observers
//   - [Ensemble]: several independent generator runs at once
//
// Frames are produced strictly in order; frame i+1 is never started before
// frame i is complete. Parallelism only happens inside one transform.
package sim
