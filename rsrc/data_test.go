package rsrc

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/format"
	"github.com/joshuapare/rsrckit/internal/testutil"
)

func TestDecodeCopiesBitForBit(t *testing.T) {
	f := mustFork(t, sampleFork().Build())

	v, err := Decode[uint32](f, MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)

	var want uint32
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&want)), 4), deadBeef)
	require.Equal(t, want, v)
	require.Equal(t, uint32(0xDEADBEEF), buf.FromMemory[uint32](deadBeef, buf.BigEndian))
	require.Equal(t, uint32(0xDEADBEEF), ToNative(v))
}

func TestDecodeSizeMismatchIsNotAnError(t *testing.T) {
	img := testutil.NewForkBuilder().
		Add("LONG", 1, []byte{1, 2, 3, 4, 5, 6, 7, 8}).
		Build()
	f := mustFork(t, img, WithDiagnostics())

	v, err := Decode[[4]byte](f, MustTypeCode("LONG"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, [4]byte{1, 2, 3, 4}, v)

	diags := f.Diagnostics()
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, SevWarning, d.Severity)
	assert.Equal(t, KindSizeMismatch, d.Kind)
	assert.Equal(t, "decode", d.Op)
	assert.Equal(t, MustTypeCode("LONG"), d.Type)
	assert.Equal(t, int64(testutil.DataZoneStart), d.Offset)
	assert.Contains(t, d.Message, "8 bytes, read as 4")

	f.ClearDiagnostics()
	require.Empty(t, f.Diagnostics())
}

func TestDiagnosticsOffByDefault(t *testing.T) {
	img := testutil.NewForkBuilder().Add("LONG", 1, make([]byte, 8)).Build()
	f := mustFork(t, img)

	_, err := Decode[uint16](f, MustTypeCode("LONG"), ByID(1))
	require.NoError(t, err)
	require.Empty(t, f.Diagnostics())
}

func TestDecodeShorterRecordReadsPastIt(t *testing.T) {
	// The declared size is 2 but the payload is followed by more data, so a
	// 4-byte read still succeeds and picks up the next record's size field.
	img := testutil.NewForkBuilder().
		Add("TINY", 1, []byte{0xAB, 0xCD}).
		Add("TINY", 2, []byte{0xEF}).
		Build()
	f := mustFork(t, img, WithDiagnostics())

	v, err := Decode[[4]byte](f, MustTypeCode("TINY"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, [4]byte{0xAB, 0xCD, 0x00, 0x00}, v)
	require.Len(t, f.Diagnostics(), 1)
}

func TestDecodePastEndIsShortRead(t *testing.T) {
	f := mustFork(t, testutil.NewForkBuilder().Add("TINY", 1, []byte{0xAB}).Build())
	_, err := Decode[[1 << 20]byte](f, MustTypeCode("TINY"), ByID(1))
	require.ErrorIs(t, err, ErrShortRead)

	var sre *ShortReadError
	require.ErrorAs(t, err, &sre)
	require.Equal(t, ShortReadCount, sre.Kind)
}

func TestDecodeRejectsPointerTypes(t *testing.T) {
	f := mustFork(t, sampleFork().Build())

	type withString struct {
		N    uint16
		Name string
	}
	_, err := Decode[withString](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = Decode[[]byte](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = Decode[*uint32](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestDecodeRejectsBool(t *testing.T) {
	f := mustFork(t, sampleFork().Build())

	_, err := Decode[bool](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrInvalidType)

	type flags struct {
		Locked bool
		Pad    [3]byte
	}
	_, err = Decode[flags](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrInvalidType)

	// uint8 is the way to read a flag byte.
	b, err := Decode[uint8](f, MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, uint8(0xDE), b)
}

func TestDecodeStruct(t *testing.T) {
	type point struct {
		V, H int16
	}
	payload := []byte{0x00, 0x10, 0xFF, 0xF0}
	img := testutil.NewForkBuilder().Add("PNT ", 1, payload).Build()
	f := mustFork(t, img)

	p, err := Decode[point](f, MustTypeCode("PNT "), ByID(1))
	require.NoError(t, err)
	require.Equal(t, int16(16), ToNative(p.V))
	require.Equal(t, int16(-16), ToNative(p.H))
}

func TestDecodeNotFound(t *testing.T) {
	f := mustFork(t, sampleFork().Build())
	v, err := Decode[uint32](f, MustTypeCode("ABCD"), ByID(2))
	require.ErrorIs(t, err, ErrResourceNotFound)
	require.Zero(t, v)
}

func TestUnmarshalBigEndian(t *testing.T) {
	type vers struct {
		Major, Minor uint8
		Stage        uint8
		Release      uint8
		Region       uint16
	}
	payload := []byte{0x01, 0x02, 0x80, 0x00, 0x00, 0x00}
	img := testutil.NewForkBuilder().Add("vers", 1, payload).Build()
	f := mustFork(t, img)

	v, err := Unmarshal[vers](f, MustTypeCode("vers"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, vers{Major: 1, Minor: 2, Stage: 0x80}, v)

	type be32 struct{ X uint32 }
	b, err := Unmarshal[be32](mustFork(t, sampleFork().Build()), MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), b.X)
}

func TestUnmarshalRejectsVariableTypes(t *testing.T) {
	f := mustFork(t, sampleFork().Build())
	type labelled struct {
		ID    uint16
		Label string
	}
	_, err := Unmarshal[labelled](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestUnmarshalPastEndIsShortRead(t *testing.T) {
	f := mustFork(t, testutil.NewForkBuilder().Add("TINY", 1, []byte{0xAB}).Build())
	_, err := Unmarshal[[1 << 20]byte](f, MustTypeCode("TINY"), ByID(1))
	require.ErrorIs(t, err, ErrShortRead)

	var sre *ShortReadError
	require.ErrorAs(t, err, &sre)
	require.Equal(t, ShortReadCount, sre.Kind)
}

func TestUnmarshalSizeMismatch(t *testing.T) {
	f := mustFork(t, sampleFork().Build(), WithDiagnostics())
	v, err := Unmarshal[uint16](f, MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, uint16(0xDEAD), v)
	require.Len(t, f.Diagnostics(), 1)
	require.Equal(t, "unmarshal", f.Diagnostics()[0].Op)
}

func TestDataTruncatedPayload(t *testing.T) {
	img, lay := testutil.NewForkBuilder().Add("BIG ", 1, make([]byte, 64)).BuildAt(0)
	// Declare a payload far larger than the source.
	format.PutU32(img, int(lay.DataRecords["BIG "][0]), 1<<20)
	f := mustFork(t, img)

	data, err := f.Data(MustTypeCode("BIG "), ByID(1))
	require.ErrorIs(t, err, ErrBadAddress)
	require.Nil(t, data)
}

func TestDataOffsetOutsideSource(t *testing.T) {
	img, lay := testutil.NewForkBuilder().Add("ABCD", 1, deadBeef).BuildAt(0)
	ref := lay.RefLists["ABCD"]
	format.PutU24(img, int(ref)+format.RefDataOffset, format.MaxDataOffset)
	f := mustFork(t, img)

	_, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrBadAddress)

	_, err = Decode[uint32](f, MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrBadAddress)
}

func TestAddress(t *testing.T) {
	img, lay := sampleFork().BuildAt(0)
	f := mustFork(t, img)

	addr, err := f.Address(MustTypeCode("STR "), ByName("Bar"))
	require.NoError(t, err)
	require.Equal(t, lay.DataRecords["STR "][2], addr)

	size := binary.BigEndian.Uint32(img[addr:])
	require.Equal(t, uint32(len("second")), size)
}

func TestEmptyForkRejectsQueries(t *testing.T) {
	f, err := New(bytes.NewReader(nil), 0, WithDiagnostics())
	require.Error(t, err)
	require.True(t, f.Empty())

	_, err = f.Data(MustTypeCode("ABCD"), ByID(1))
	require.True(t, IsNotFound(err))
	_, err = Decode[uint32](f, MustTypeCode("ABCD"), ByID(1))
	require.True(t, IsNotFound(err))
	_, err = f.Types()
	require.True(t, IsNotFound(err))
}
