package sim

import (
	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/frame"
)

// Observer is notified of every frame in order, starting with the initial one.
type Observer interface {
	OnFrame(step int, f frame.Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, f frame.Frame)

func (fn ObserverFunc) OnFrame(step int, f frame.Frame) { fn(step, f) }

type Metric interface {
	Name() string
	Observe(step int, f frame.Frame)
	Value() float64
	Reset()
}

type Config struct {
	Steps   int
	Variant baker.Variant
}

func (c Config) Validate() error {
	if c.Steps < 0 {
		return ErrInvalidSteps
	}
	if !c.Variant.Valid() {
		return baker.ErrUnknownVariant
	}
	return nil
}

type Result struct {
	Frames []frame.Frame
	// Metrics holds each metric's value after the last frame.
	Metrics map[string]float64
	// Series holds each metric's value after every frame.
	Series     map[string][]float64
	StepsTaken int
}
