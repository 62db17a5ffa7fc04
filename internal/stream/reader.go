// Package stream reads big-endian scalars and raw byte runs from the current
// position of a seekable source.
package stream

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"unsafe"

	"github.com/joshuapare/rsrckit/internal/buf"
)

// ErrWidth indicates a request for more bytes than the target type holds.
var ErrWidth = errors.New("stream: byte count exceeds type width")

// ShortReadKind tells apart the ways a read can come up short.
type ShortReadKind int

const (
	// ShortReadEOF means the stream was already exhausted.
	ShortReadEOF ShortReadKind = iota
	// ShortReadCount means some, but not all, of the requested bytes arrived.
	ShortReadCount
	// ShortReadIO means the underlying source reported a failure.
	ShortReadIO
)

func (k ShortReadKind) String() string {
	switch k {
	case ShortReadEOF:
		return "end of stream"
	case ShortReadCount:
		return "byte count mismatch"
	case ShortReadIO:
		return "i/o failure"
	default:
		return fmt.Sprintf("ShortReadKind(%d)", int(k))
	}
}

// ShortReadError reports that fewer bytes than requested could be read.
type ShortReadError struct {
	Kind ShortReadKind
	What string // label of the field being read
	Want int
	Got  int
	Err  error
}

func (e *ShortReadError) Error() string {
	msg := fmt.Sprintf("stream: short read of %s (%s): got %d of %d bytes", e.What, e.Kind, e.Got, e.Want)
	if e.Kind == ShortReadIO && e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ShortReadError) Unwrap() error { return e.Err }

// ReadBytes reads exactly n raw bytes. The bytes are never reordered; use it
// for type codes and string payloads.
func ReadBytes(r io.Reader, n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("stream: negative length %d for %s", n, what)
	}
	out := make([]byte, n)
	if err := readFull(r, out, what); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadPrimitive reads n big-endian bytes and returns them as a native T.
// n may be smaller than the width of T (24-bit offsets, 1-byte lengths); the
// value is left-padded with zeros so its magnitude is preserved.
// The cursor advances by exactly n bytes.
func ReadPrimitive[T buf.Scalar](r io.Reader, n int, what string) (T, error) {
	return ReadPrimitiveAs[T](r, n, what, buf.NativeOrder())
}

// ReadPrimitiveAs is ReadPrimitive for a host with the given byte order.
func ReadPrimitiveAs[T buf.Scalar](r io.Reader, n int, what string, host buf.Order) (T, error) {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if n < 0 || n > width {
		return zero, fmt.Errorf("%w: %d > %d for %s", ErrWidth, n, width, what)
	}

	raw := make([]byte, width)
	if err := readFull(r, raw[width-n:], what); err != nil {
		return zero, err
	}
	if host == buf.LittleEndian {
		slices.Reverse(raw)
	}
	return buf.FromMemory[T](raw, host), nil
}

func readFull(r io.Reader, p []byte, what string) error {
	n, err := io.ReadFull(r, p)
	if err == nil {
		return nil
	}
	se := &ShortReadError{What: what, Want: len(p), Got: n, Err: err}
	switch {
	case errors.Is(err, io.EOF):
		se.Kind = ShortReadEOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		se.Kind = ShortReadCount
	default:
		se.Kind = ShortReadIO
	}
	return se
}
