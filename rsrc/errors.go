package rsrc

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/rsrckit/internal/stream"
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	KindStreamNotOpen    ErrKind = iota + 1 // source missing or already closed
	KindShortRead                           // fewer bytes than requested (see ShortReadError)
	KindTypeNotFound                        // type code absent from the type list
	KindResourceNotFound                    // key absent from a present type
	KindSizeMismatch                        // typed read width differs from on-disk size (non-fatal)
	KindBadAddress                          // computed address lies outside the source
	KindInvalidType                         // T cannot be filled by a raw byte copy
	KindInvalidKey                          // type code or name not representable on disk

	kindNotFound // matches both not-found kinds; used only by ErrNotFound
)

func (k ErrKind) String() string {
	switch k {
	case KindStreamNotOpen:
		return "stream not open"
	case KindShortRead:
		return "short read"
	case KindTypeNotFound:
		return "type not found"
	case KindResourceNotFound:
		return "resource not found"
	case KindSizeMismatch:
		return "size mismatch"
	case KindBadAddress:
		return "bad address"
	case KindInvalidType:
		return "invalid type"
	case KindInvalidKey:
		return "invalid key"
	case kindNotFound:
		return "not found"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Op   string // operation that failed, e.g. "data"
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "rsrc: "
	if e.Op != "" {
		msg += e.Op + ": "
	}
	if e.Msg != "" {
		msg += e.Msg
	} else {
		msg += e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind, so any *Error of the same kind satisfies errors.Is
// against the sentinels below. ErrNotFound matches both not-found kinds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Kind == kindNotFound {
		return e.Kind == KindTypeNotFound || e.Kind == KindResourceNotFound || e.Kind == kindNotFound
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrStreamNotOpen    = &Error{Kind: KindStreamNotOpen}
	ErrShortRead        = &Error{Kind: KindShortRead}
	ErrTypeNotFound     = &Error{Kind: KindTypeNotFound}
	ErrResourceNotFound = &Error{Kind: KindResourceNotFound}
	ErrSizeMismatch     = &Error{Kind: KindSizeMismatch}
	ErrBadAddress       = &Error{Kind: KindBadAddress}
	ErrInvalidType      = &Error{Kind: KindInvalidType}
	ErrInvalidKey       = &Error{Kind: KindInvalidKey}
	// ErrNotFound matches a missing type and a missing key alike.
	ErrNotFound = &Error{Kind: kindNotFound}
)

// IsNotFound reports whether err means the requested type or resource does
// not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ShortReadError describes a read that came up short. It is re-exported from
// internal/stream so callers can use errors.As on it.
type ShortReadError = stream.ShortReadError

// ShortReadKind distinguishes end of stream, partial reads and I/O failures.
type ShortReadKind = stream.ShortReadKind

const (
	ShortReadEOF   = stream.ShortReadEOF
	ShortReadCount = stream.ShortReadCount
	ShortReadIO    = stream.ShortReadIO
)

func newError(kind ErrKind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// wrapIO classifies an error returned while reading or seeking the source.
func wrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	if errors.Is(err, os.ErrClosed) {
		return newError(KindStreamNotOpen, op, "", err)
	}
	var se *stream.ShortReadError
	if errors.As(err, &se) {
		return newError(KindShortRead, op, "", err)
	}
	return newError(KindShortRead, op, "seek failed", &stream.ShortReadError{Kind: stream.ShortReadIO, What: "seek", Err: err})
}
