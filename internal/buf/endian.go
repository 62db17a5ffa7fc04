// Package buf contains helpers for endian-safe decoding routines.
package buf

import (
	"encoding/binary"
	"slices"
	"sync"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Order identifies the byte order a host uses to lay out scalars in memory.
type Order uint8

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) String() string {
	if o == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// Scalar is any fixed-width numeric type whose bytes can be reordered.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// nativeOrder probes the in-memory layout of a uint16 the first time it is
// asked for and keeps the answer for the life of the process.
var nativeOrder = sync.OnceValue(func() Order {
	probe := uint16(0x0102)
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x02 {
		return LittleEndian
	}
	return BigEndian
})

// NativeOrder returns the byte order of the running process.
func NativeOrder() Order {
	return nativeOrder()
}

// Swap reverses the byte order of v.
func Swap[T Scalar](v T) T {
	slices.Reverse(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)))
	return v
}

// ToNative converts a value whose bytes were loaded verbatim from big-endian
// storage into the native representation.
func ToNative[T Scalar](v T) T {
	return ToHost(v, NativeOrder())
}

// ToHost is ToNative for an arbitrary host order. Data on disk is always
// big-endian, so only little-endian hosts swap.
func ToHost[T Scalar](v T, host Order) T {
	if host == LittleEndian {
		return Swap(v)
	}
	return v
}

// FromMemory reinterprets b as the in-memory image of a T on a host with the
// given byte order. b shorter than T leaves the trailing bytes zero.
func FromMemory[T Scalar](b []byte, host Order) T {
	var v T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), b)
	if host != NativeOrder() {
		return Swap(v)
	}
	return v
}

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// I16BE reads a big-endian int16 from b. Returns 0 when b is too short.
func I16BE(b []byte) int16 {
	return int16(U16BE(b))
}

// U24BE reads a big-endian 24-bit unsigned value from b.
// Returns 0 when b is too short.
func U24BE(b []byte) uint32 {
	if len(b) < 3 {
		return 0
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
