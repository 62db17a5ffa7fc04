package index

import (
	"strconv"
	"unsafe"
)

const (
	// estimatedBytesPerMapEntry is the rough estimate of memory overhead per map entry.
	// This includes ~32 bytes for Go's map overhead plus 8 bytes for the value (int64).
	estimatedBytesPerMapEntry = 40

	// typeCodeSize is the width of a resource type code.
	typeCodeSize = 4

	// maxInt16Digits is the widest decimal rendering of an int16 ("-32768").
	maxInt16Digits = 6

	// keyPrefixSize is the room needed for "TYPE:" ahead of the key.
	keyPrefixSize = typeCodeSize + 1
)

// TypeRef locates a type's reference list.
type TypeRef struct {
	CountMinusOne int16
	RefListAddr   int64
}

// Stats reports index metrics.
type Stats struct {
	TypeCount   int // Number of type entries
	IDCount     int // Number of (type, id) entries
	NameCount   int // Number of (type, name) entries
	BytesApprox int // Approximate memory usage (best effort)
}

// Index maps resource fork keys to addresses. The zero value is not usable;
// call New.
type Index struct {
	types map[[typeCodeSize]byte]TypeRef
	ids   map[string]int64 // "TYPE:id" → data record address
	names map[string]int64 // "TYPE:name" → data record address
}

// New creates an Index with optional capacity hints.
func New(typeCap, resCap int) *Index {
	if typeCap <= 0 {
		typeCap = 16
	}
	if resCap <= 0 {
		resCap = 64
	}
	return &Index{
		types: make(map[[typeCodeSize]byte]TypeRef, typeCap),
		ids:   make(map[string]int64, resCap),
		names: make(map[string]int64, resCap),
	}
}

// AddType registers a type. The first registration for a code wins.
func (x *Index) AddType(code [typeCodeSize]byte, ref TypeRef) {
	if _, ok := x.types[code]; ok {
		return
	}
	x.types[code] = ref
}

// AddID registers the data address of a resource by ID. The first
// registration for a (type, id) pair wins.
func (x *Index) AddID(code [typeCodeSize]byte, id int16, addr int64) {
	key := idKey(code, id)
	if _, ok := x.ids[key]; ok {
		return
	}
	x.ids[key] = addr
}

// AddName registers the data address of a resource by its raw name bytes.
// The first registration for a (type, name) pair wins.
func (x *Index) AddName(code [typeCodeSize]byte, name []byte, addr int64) {
	key := nameKey(code, name)
	if _, ok := x.names[key]; ok {
		return
	}
	x.names[key] = addr
}

// Type returns the reference list location for code.
func (x *Index) Type(code [typeCodeSize]byte) (TypeRef, bool) {
	ref, ok := x.types[code]
	return ref, ok
}

// ByID returns the data record address for (code, id).
func (x *Index) ByID(code [typeCodeSize]byte, id int16) (int64, bool) {
	addr, ok := x.ids[idKey(code, id)]
	return addr, ok
}

// ByName returns the data record address for (code, name).
func (x *Index) ByName(code [typeCodeSize]byte, name []byte) (int64, bool) {
	addr, ok := x.names[nameKey(code, name)]
	return addr, ok
}

// Stats returns index statistics.
func (x *Index) Stats() Stats {
	bytes := (len(x.types) + len(x.ids) + len(x.names)) * estimatedBytesPerMapEntry
	for k := range x.ids {
		bytes += len(k)
	}
	for k := range x.names {
		bytes += len(k)
	}
	return Stats{
		TypeCount:   len(x.types),
		IDCount:     len(x.ids),
		NameCount:   len(x.names),
		BytesApprox: bytes,
	}
}

// idKey formats "TYPE:id", e.g. "ICN#:128".
func idKey(code [typeCodeSize]byte, id int16) string {
	buf := make([]byte, 0, keyPrefixSize+maxInt16Digits)
	buf = append(buf, code[:]...)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(id), 10)
	return unsafe.String(&buf[0], len(buf))
}

// nameKey formats "TYPE:name". Names are raw bytes and may contain ':'; the
// fixed-width prefix keeps keys unambiguous.
func nameKey(code [typeCodeSize]byte, name []byte) string {
	buf := make([]byte, 0, keyPrefixSize+len(name))
	buf = append(buf, code[:]...)
	buf = append(buf, ':')
	buf = append(buf, name...)
	return unsafe.String(&buf[0], len(buf))
}
