// Package format houses low-level layout definitions and slice decoders for
// the classic Mac OS resource fork. All multi-byte integers on disk are
// big-endian. Higher-level packages use these to stay in agreement about
// offsets and strides without duplicating magic numbers.
package format

// Fork header, 16 bytes at the start of the fork. Offsets are relative to the
// fork start.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x00    4    Offset of the resource data zone
//	 0x04    4    Offset of the resource map
//	 0x08    4    Length of the resource data zone
//	 0x0C    4    Length of the resource map
const (
	HeaderSize             = 16
	HeaderDataOffsetOffset = 0x00
	HeaderMapOffsetOffset  = 0x04
	HeaderDataLengthOffset = 0x08
	HeaderMapLengthOffset  = 0x0C
)

// Resource map. The first 24 bytes repeat the header and carry the next-map
// handle, file reference number and map attributes; none of it is needed to
// read resources.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x00   16    Copy of the fork header (reserved)
//	 0x10    4    Handle to next resource map (reserved)
//	 0x14    2    File reference number (reserved)
//	 0x16    2    Resource fork attributes
//	 0x18    2    Offset of the type list, relative to the map
//	 0x1A    2    Offset of the name list, relative to the map
const (
	MapReservedSize      = 24
	MapTypeListOffset    = 0x18
	MapNameListOffset    = 0x1A
	MapHeaderSize        = 28
	MapAttributesOffset  = 0x16
	MapAttributesSize    = 2
	MapFieldSize         = 2
	TypeCountSize        = 2
	TypeListEntriesStart = TypeCountSize
)

// Type list entry, 8 bytes. The list begins with a signed 2-byte count of
// types minus one.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x00    4    Type code (raw bytes, case-sensitive)
//	 0x04    2    Number of resources of this type minus one
//	 0x06    2    Offset of the reference list, relative to the type list
const (
	TypeEntrySize          = 8
	TypeCodeSize           = 4
	TypeEntryCountOffset   = 0x04
	TypeEntryRefListOffset = 0x06
	TypeEntryTailSize      = TypeEntrySize - TypeCodeSize
)

// Reference list entry, 12 bytes.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x00    2    Resource ID
//	 0x02    2    Offset of the name, relative to the name list (0xFFFF = none)
//	 0x04    1    Resource attributes
//	 0x05    3    Offset of the data record, relative to the data zone
//	 0x08    4    Reserved (handle)
const (
	RefEntrySize        = 12
	RefIDOffset         = 0x00
	RefNameOffset       = 0x02
	RefAttributesOffset = 0x04
	RefDataOffset       = 0x05
	RefReservedOffset   = 0x08

	RefIDSize         = 2
	RefNameSize       = 2
	RefAttributesSize = 1
	RefDataSize       = 3
	RefReservedSize   = 4

	// NoName marks a reference entry whose resource has no name.
	NoName = 0xFFFF
)

const (
	// DataSizeFieldSize is the length prefix on every resource data record.
	DataSizeFieldSize = 4
	// NameLengthSize is the length prefix on every name list entry.
	NameLengthSize = 1
	// MaxNameLength is the longest name a 1-byte length prefix can describe.
	MaxNameLength = 255
	// MaxDataOffset is the largest data zone offset a 3-byte field can hold.
	MaxDataOffset = 1<<24 - 1
)
