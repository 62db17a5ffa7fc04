package format

import (
	"fmt"

	"github.com/joshuapare/rsrckit/internal/buf"
)

// Header is the fork header with offsets still relative to the fork start.
type Header struct {
	DataOffset uint32
	MapOffset  uint32
	DataLength uint32
	MapLength  uint32
}

// ParseHeader decodes the 16-byte fork header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("fork header: %w", ErrTruncated)
	}
	return Header{
		DataOffset: buf.U32BE(b[HeaderDataOffsetOffset:]),
		MapOffset:  buf.U32BE(b[HeaderMapOffsetOffset:]),
		DataLength: buf.U32BE(b[HeaderDataLengthOffset:]),
		MapLength:  buf.U32BE(b[HeaderMapLengthOffset:]),
	}, nil
}

// MapHeader holds the map fields needed to find the type and name lists,
// relative to the map start.
type MapHeader struct {
	Attributes     uint16
	TypeListOffset uint16
	NameListOffset uint16
}

// ParseMapHeader decodes the first 28 bytes of the resource map.
func ParseMapHeader(b []byte) (MapHeader, error) {
	if len(b) < MapHeaderSize {
		return MapHeader{}, fmt.Errorf("resource map: %w", ErrTruncated)
	}
	return MapHeader{
		Attributes:     buf.U16BE(b[MapAttributesOffset:]),
		TypeListOffset: buf.U16BE(b[MapTypeListOffset:]),
		NameListOffset: buf.U16BE(b[MapNameListOffset:]),
	}, nil
}

// TypeEntry is one 8-byte record of the type list.
type TypeEntry struct {
	Code          [TypeCodeSize]byte
	CountMinusOne int16
	RefListOffset uint16 // relative to the type list
}

// ParseTypeEntry decodes a type list entry.
func ParseTypeEntry(b []byte) (TypeEntry, error) {
	if len(b) < TypeEntrySize {
		return TypeEntry{}, fmt.Errorf("type entry: %w", ErrTruncated)
	}
	var e TypeEntry
	copy(e.Code[:], b[:TypeCodeSize])
	e.CountMinusOne = buf.I16BE(b[TypeEntryCountOffset:])
	e.RefListOffset = buf.U16BE(b[TypeEntryRefListOffset:])
	return e, nil
}

// TypeEntries splits a type list (starting at its count field) into entries.
// A count of -1 yields no entries.
func TypeEntries(list []byte) ([]TypeEntry, error) {
	if len(list) < TypeCountSize {
		return nil, fmt.Errorf("type list: %w", ErrTruncated)
	}
	n := int(buf.I16BE(list)) + 1
	if n <= 0 {
		return nil, nil
	}
	raw, ok := buf.Slice(list, TypeListEntriesStart, n*TypeEntrySize)
	if !ok {
		return nil, fmt.Errorf("type list of %d entries: %w", n, ErrTruncated)
	}
	out := make([]TypeEntry, 0, n)
	for ; len(raw) > 0; raw = raw[TypeEntrySize:] {
		e, err := ParseTypeEntry(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// RefEntry is one 12-byte record of a reference list.
type RefEntry struct {
	ID         int16
	NameOffset uint16 // relative to the name list, NoName when unnamed
	Attributes uint8
	DataOffset uint32 // relative to the data zone, 24 bits
}

// HasName reports whether the entry points into the name list.
func (e RefEntry) HasName() bool {
	return e.NameOffset != NoName
}

// ParseRefEntry decodes a reference list entry.
func ParseRefEntry(b []byte) (RefEntry, error) {
	if len(b) < RefEntrySize {
		return RefEntry{}, fmt.Errorf("reference entry: %w", ErrTruncated)
	}
	return RefEntry{
		ID:         buf.I16BE(b[RefIDOffset:]),
		NameOffset: buf.U16BE(b[RefNameOffset:]),
		Attributes: b[RefAttributesOffset],
		DataOffset: buf.U24BE(b[RefDataOffset:]),
	}, nil
}

// ParseName decodes the length-prefixed name at off within a name list.
func ParseName(names []byte, off int) ([]byte, error) {
	if !buf.Has(names, off, NameLengthSize) {
		return nil, fmt.Errorf("name at %d: %w", off, ErrBadOffset)
	}
	n := int(names[off])
	raw, ok := buf.Slice(names, off+NameLengthSize, n)
	if !ok {
		return nil, fmt.Errorf("name at %d: %w", off, ErrTruncated)
	}
	return raw, nil
}
