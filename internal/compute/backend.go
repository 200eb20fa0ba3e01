package compute

// Backend runs fn over the half-open row range [0, n), possibly split into
// disjoint chunks executed concurrently.
type Backend interface {
	Name() string
	Rows(n int, fn func(start, end int))
}

var activeBackend Backend = NewCPUBackend(0)

func SetBackend(b Backend) {
	if b == nil {
		b = NewSerialBackend()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// ForWorkers returns a serial backend for workers == 1 and a CPU backend
// otherwise; workers <= 0 means one per CPU.
func ForWorkers(workers int) Backend {
	if workers == 1 {
		return NewSerialBackend()
	}
	return NewCPUBackend(workers)
}

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string { return "serial" }

func (s *SerialBackend) Rows(n int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}
