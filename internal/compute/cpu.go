package compute

import (
	"runtime"
)

// minRowsPerWorker keeps chunks large enough to amortize goroutine start-up.
const minRowsPerWorker = 16

type CPUBackend struct {
	workers int
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{workers: workers}
}

func (c *CPUBackend) Name() string { return "cpu" }

func (c *CPUBackend) Workers() int { return c.workers }

func (c *CPUBackend) Rows(n int, fn func(start, end int)) {
	ParallelFor(n, minRowsPerWorker, c.workers, fn)
}
