package buf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNativeOrderMatchesRuntime(t *testing.T) {
	probe := make([]byte, 2)
	binary.NativeEndian.PutUint16(probe, 0x0102)
	want := BigEndian
	if probe[0] == 0x02 {
		want = LittleEndian
	}
	require.Equal(t, want, NativeOrder())
	require.Equal(t, NativeOrder(), NativeOrder(), "order must be stable")
}

func TestSwap(t *testing.T) {
	require.Equal(t, uint16(0x3412), Swap(uint16(0x1234)))
	require.Equal(t, uint32(0x78563412), Swap(uint32(0x12345678)))
	require.Equal(t, uint64(0xefcdab8967452301), Swap(uint64(0x0123456789abcdef)))
	require.Equal(t, int16(-1), Swap(int16(-1)))
	require.Equal(t, uint8(0xab), Swap(uint8(0xab)))

	f := float32(1.5)
	require.Equal(t, f, Swap(Swap(f)))
}

func TestToHost(t *testing.T) {
	require.Equal(t, uint32(0x01000000), ToHost(uint32(1), LittleEndian))
	require.Equal(t, uint32(1), ToHost(uint32(1), BigEndian))
}

func TestFromMemoryIsHostIndependent(t *testing.T) {
	disk := []byte{0x00, 0x00, 0x01, 0x00}

	// A little-endian host reverses the big-endian bytes before reinterpreting.
	le := []byte{disk[3], disk[2], disk[1], disk[0]}
	require.Equal(t, uint32(256), FromMemory[uint32](le, LittleEndian))

	// A big-endian host reinterprets them as they are.
	require.Equal(t, uint32(256), FromMemory[uint32](disk, BigEndian))
}

func TestBigEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16BE(data); got != 0x0123 {
		t.Fatalf("U16BE = 0x%x, want 0x0123", got)
	}
	if got := U24BE(data); got != 0x012345 {
		t.Fatalf("U24BE = 0x%x, want 0x012345", got)
	}
	if got := U32BE(data); got != 0x01234567 {
		t.Fatalf("U32BE = 0x%x, want 0x01234567", got)
	}
	if got := I16BE([]byte{0xff, 0xff}); got != -1 {
		t.Fatalf("I16BE = %d, want -1", got)
	}

	short := []byte{0xAA}
	if U16BE(short) != 0 || U24BE(short) != 0 || U32BE(short) != 0 || I16BE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}
