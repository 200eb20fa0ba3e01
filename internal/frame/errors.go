package frame

import "errors"

var (
	// ErrInvalidDimension indicates a side length outside [1, MaxDim].
	ErrInvalidDimension = errors.New("frame: dimension out of range")

	// ErrNotSquare indicates an image whose width and height differ.
	ErrNotSquare = errors.New("frame: image is not square")

	// ErrFrozen indicates a write to a buffer that was already frozen.
	ErrFrozen = errors.New("frame: buffer already frozen")
)
