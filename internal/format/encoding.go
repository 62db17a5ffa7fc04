package format

import "encoding/binary"

// Big-endian put helpers for assembling fork images. Offsets are byte
// positions within b; callers size b first.

// PutU16 writes a uint16 value to the buffer at the specified offset in big-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// PutI16 writes an int16 value to the buffer at the specified offset in big-endian format.
func PutI16(b []byte, off int, v int16) {
	binary.BigEndian.PutUint16(b[off:off+2], uint16(v))
}

// PutU24 writes the low 24 bits of v to the buffer at the specified offset in big-endian format.
func PutU24(b []byte, off int, v uint32) {
	b[off] = byte(v >> 16)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}
