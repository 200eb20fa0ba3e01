package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSteps indicates a negative frame count.
	ErrInvalidSteps = errors.New("sim: number of steps must not be negative")

	// ErrEmptyFrame indicates a run started from the zero Frame.
	ErrEmptyFrame = errors.New("sim: initial frame is empty")

	// ErrCanceled indicates the run was interrupted between frames.
	ErrCanceled = errors.New("sim: generation canceled")
)

// StepError wraps an error with the index of the frame being produced.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
