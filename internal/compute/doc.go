// Package compute provides execution backends for per-row pixel work.
//
// The package selects how the rows of one frame are distributed:
//
//   - CPU: rows split into contiguous chunks across runtime.NumCPU() goroutines
//   - Serial: every row on the calling goroutine
//
// A backend returns only after every chunk has finished, so callers may treat
// a call as a single synchronous step:
//
//	backend := compute.GetBackend()
//	backend.Rows(dim, func(start, end int) { ... })
//
// Small grids always run serially; goroutine start-up dominates below a few
// thousand pixels.
package compute
