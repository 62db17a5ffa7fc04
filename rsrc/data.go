package rsrc

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/format"
)

// Scalar is any fixed-width integer or float type.
type Scalar = buf.Scalar

// ToNative converts a field copied verbatim from a big-endian resource into
// the byte order of the running process. Use it on each numeric field of a
// value returned by Decode.
func ToNative[T Scalar](v T) T {
	return buf.ToNative(v)
}

// Address returns the absolute address of the data record for key k in
// type t. The record starts with its 4-byte size.
func (f *Fork) Address(t TypeCode, k Key) (int64, error) {
	const op = "address"
	if err := f.ready(op); err != nil {
		return 0, err
	}
	return f.address(op, t, k)
}

func (f *Fork) address(op string, t TypeCode, k Key) (int64, error) {
	name, named := k.Name()
	var raw []byte
	if named {
		var err error
		if raw, err = encodeMacRoman(name); err != nil {
			return 0, newError(KindInvalidKey, op, fmt.Sprintf("name %q is not Mac OS Roman", name), err)
		}
	}

	if f.useIndex {
		if idx := f.index(); idx != nil {
			addr, err := f.indexedAddress(op, idx, t, k, raw)
			f.logLookup(op, t, k, addr, err)
			return addr, err
		}
	}

	var (
		addr int64
		err  error
	)
	if named {
		addr, err = f.findByName(op, t, raw)
	} else {
		id, _ := k.ID()
		addr, err = f.findByID(op, t, id)
	}
	f.logLookup(op, t, k, addr, err)
	return addr, err
}

func (f *Fork) logLookup(op string, t TypeCode, k Key, addr int64, err error) {
	if err != nil {
		f.log.Debug("rsrc: lookup failed", "op", op, "type", t.String(), "key", k.String(), "err", err)
		return
	}
	f.log.Debug("rsrc: lookup", "op", op, "type", t.String(), "key", k.String(), "addr", addr)
}

// record seeks to the data record for k and reads its size field, leaving
// the cursor on the first payload byte.
func (f *Fork) record(op string, t TypeCode, k Key) (addr int64, size uint32, err error) {
	if err := f.ready(op); err != nil {
		return 0, 0, err
	}
	addr, err = f.address(op, t, k)
	if err != nil {
		return 0, 0, err
	}
	if err := f.seekTo(op, addr, format.DataSizeFieldSize); err != nil {
		return 0, 0, err
	}
	size, err = f.readU32(op, "resource size")
	if err != nil {
		return 0, 0, err
	}
	return addr, size, nil
}

// Data returns the payload of resource k of type t. Its length is the size
// recorded on disk.
func (f *Fork) Data(t TypeCode, k Key) ([]byte, error) {
	const op = "data"
	addr, size, err := f.record(op, t, k)
	if err != nil {
		return nil, err
	}
	if _, err := buf.CheckRange(f.size, addr+format.DataSizeFieldSize, int64(size)); err != nil {
		return nil, newError(KindBadAddress, op, fmt.Sprintf("payload of %d bytes at %#x", size, addr), err)
	}
	return f.readBytes(op, int(size), "resource payload")
}

// Decode copies the first unsafe.Sizeof(T) bytes of resource k into a new T,
// bit for bit, whatever size the record declares. No byte order conversion
// is applied to T's fields. When the declared size differs from the size of
// T a SizeMismatch diagnostic is recorded; it is not returned as an error.
//
// T must be made only of fixed-width numbers, arrays and structs. Booleans
// are rejected since a raw byte other than 0 or 1 is not a valid bool; read
// flags as uint8.
func Decode[T any](f *Fork, t TypeCode, k Key) (T, error) {
	const op = "decode"
	var v T
	if err := checkFixedLayout(reflect.TypeFor[T]()); err != nil {
		return v, newError(KindInvalidType, op, fmt.Sprintf("cannot decode into %s", reflect.TypeFor[T]()), err)
	}
	width := int(unsafe.Sizeof(v))

	addr, size, err := f.record(op, t, k)
	if err != nil {
		return v, err
	}
	raw, err := f.readBytes(op, width, "resource payload")
	if err != nil {
		return v, err
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), width), raw)

	if int64(size) != int64(width) {
		f.sizeMismatch(op, t, k, addr, size, width)
	}
	return v, nil
}

// Unmarshal decodes resource k into a T with big-endian field conversion via
// encoding/binary. It reads binary.Size(T) bytes; a different declared size
// is recorded as a SizeMismatch diagnostic.
func Unmarshal[T any](f *Fork, t TypeCode, k Key) (T, error) {
	const op = "unmarshal"
	var v T
	width := binary.Size(v)
	if width < 0 {
		return v, newError(KindInvalidType, op, fmt.Sprintf("%s has no fixed binary size", reflect.TypeFor[T]()), nil)
	}

	addr, size, err := f.record(op, t, k)
	if err != nil {
		return v, err
	}
	raw, err := f.readBytes(op, width, "resource payload")
	if err != nil {
		return v, err
	}
	if _, err := binary.Decode(raw, binary.BigEndian, &v); err != nil {
		return v, newError(KindInvalidType, op, fmt.Sprintf("cannot decode into %s", reflect.TypeFor[T]()), err)
	}
	if int64(size) != int64(width) {
		f.sizeMismatch(op, t, k, addr, size, width)
	}
	return v, nil
}

func (f *Fork) sizeMismatch(op string, t TypeCode, k Key, addr int64, size uint32, width int) {
	msg := fmt.Sprintf("resource %#v %s is %d bytes, read as %d", t, k, size, width)
	f.log.Warn("rsrc: size mismatch", "type", t.String(), "key", k.String(), "size", size, "want", width)
	f.report(Diagnostic{
		Severity: SevWarning,
		Kind:     KindSizeMismatch,
		Op:       op,
		Offset:   addr,
		Type:     t,
		Key:      k,
		Message:  msg,
	})
}

// checkFixedLayout accepts types whose values are nothing but their bytes.
func checkFixedLayout(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkFixedLayout(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if err := checkFixedLayout(t.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%s is not fixed-width", t)
	}
}
