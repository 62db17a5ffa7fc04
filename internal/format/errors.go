package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadOffset indicates an offset field points outside the structure it indexes.
	ErrBadOffset = errors.New("format: offset out of range")
)
