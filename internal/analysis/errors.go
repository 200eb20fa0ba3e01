package analysis

import "errors"

var (
	ErrInvalidDimension = errors.New("analysis: dimension out of range")
	ErrOutOfRange       = errors.New("analysis: coordinate out of range")
	ErrInvalidSteps     = errors.New("analysis: step limit must be positive")
)
