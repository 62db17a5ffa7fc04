package rsrc

import (
	"encoding/binary"
	"io"
)

// AppleSingle and AppleDouble headers:
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x00    4    Magic (0x00051600 single, 0x00051607 double)
//	 0x04    4    Version
//	 0x08   16    Filler
//	 0x18    2    Number of entries
//	 0x1A   12n   Entries: id(4) offset(4) length(4)
const (
	appleSingleMagic   = 0x00051600
	appleDoubleMagic   = 0x00051607
	appleEntriesOffset = 0x1A
	appleCountOffset   = 0x18
	appleEntrySize     = 12
	appleResourceEntry = 2
)

// AppleDoubleForkOffset finds the resource fork entry of an AppleSingle or
// AppleDouble container and returns its offset and length.
func AppleDoubleForkOffset(r io.ReaderAt) (offset, length int64, ok bool) {
	var hdr [appleEntriesOffset]byte
	if n, _ := r.ReadAt(hdr[:], 0); n != len(hdr) {
		return 0, 0, false
	}
	switch binary.BigEndian.Uint32(hdr[:]) {
	case appleSingleMagic, appleDoubleMagic:
	default:
		return 0, 0, false
	}

	count := int(binary.BigEndian.Uint16(hdr[appleCountOffset:]))
	entries := make([]byte, count*appleEntrySize)
	if n, _ := r.ReadAt(entries, appleEntriesOffset); n != len(entries) {
		return 0, 0, false
	}
	for ; len(entries) > 0; entries = entries[appleEntrySize:] {
		if binary.BigEndian.Uint32(entries) == appleResourceEntry {
			return int64(binary.BigEndian.Uint32(entries[4:])), int64(binary.BigEndian.Uint32(entries[8:])), true
		}
	}
	return 0, 0, false
}
