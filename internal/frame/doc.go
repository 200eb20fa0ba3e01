// Package frame provides the square pixel grids the baker's map operates on.
//
//   - [Buffer]: mutable grid used while a frame is being built
//   - [Frame]: immutable snapshot handed between iterations
//
// Pixels are addressed as (x, y) with both coordinates in [0, dim). The same
// addressing is used for reading and writing everywhere in the module, so a
// frame produced by one step can be fed directly into the next.
//
// # Example
//
//	buf, _ := frame.NewBuffer(4)
//	buf.Set(0, 0, color.RGBA{R: 255, A: 255})
//	f := buf.Freeze()
//	c := f.Pixel(0, 0)
//
// Frames implement [image.Image] and may be passed to any image encoder.
package frame
