package export

import "errors"

var (
	ErrNoFrames          = errors.New("export: no frames to encode")
	ErrDimensionMismatch = errors.New("export: frames differ in dimension")
	ErrTooManyColors     = errors.New("export: more distinct colours than palette slots")
	ErrUnknownPalette    = errors.New("export: unknown palette method")
	ErrEmptyPalette      = errors.New("export: palette extraction produced no colours")
)
