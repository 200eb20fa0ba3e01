// Package baker implements the discretized baker's map on square frames.
//
// The classical baker's map stretches the unit square horizontally by two,
// compresses it vertically by half and then rearranges the overhanging half.
// Two rearrangements are provided:
//
//   - [Unfolded]: stretch-and-cut, the right half is cut off and stacked below
//   - [Folded]: stretch-and-fold, the right half is turned over and laid below
//
// [Transform] pulls every destination pixel from a source pixel given by
// closed-form integer formulas ([Source]). Because the grid is discrete the
// map is not a bijection: some source pixels are read twice and others never.
//
// # Example
//
//	next := baker.Transform(current, baker.Folded)
//
// Transform never mutates its input and always returns a freshly allocated
// frame, so successive frames can be retained side by side.
package baker
