// Package testutil builds resource fork images for tests.
package testutil

import (
	"github.com/joshuapare/rsrckit/internal/format"
)

// DataZoneStart is where generated forks place their data zone, matching
// the layout written by the classic Resource Manager.
const DataZoneStart = 256

type genResource struct {
	id    int16
	name  []byte
	named bool
	attrs uint8
	data  []byte
}

type genType struct {
	code      [format.TypeCodeSize]byte
	resources []genResource
	empty     bool
}

// ForkBuilder assembles a resource fork image in memory. Types appear in
// the order they were first added; resources keep insertion order.
type ForkBuilder struct {
	types         []*genType
	countOverride *int16
}

// Layout reports where the generated structures landed, relative to the
// start of the fork.
type Layout struct {
	DataOffset   int64
	MapOffset    int64
	TypeListAddr int64
	NameListAddr int64
	RefLists     map[string]int64
	DataRecords  map[string][]int64 // per type, in insertion order
}

// NewForkBuilder returns an empty builder.
func NewForkBuilder() *ForkBuilder {
	return &ForkBuilder{}
}

func (b *ForkBuilder) typeFor(code string) *genType {
	var c [format.TypeCodeSize]byte
	copy(c[:], code)
	for _, t := range b.types {
		if t.code == c {
			return t
		}
	}
	t := &genType{code: c}
	b.types = append(b.types, t)
	return t
}

// Add appends an unnamed resource.
func (b *ForkBuilder) Add(code string, id int16, data []byte) *ForkBuilder {
	t := b.typeFor(code)
	t.resources = append(t.resources, genResource{id: id, data: data})
	return b
}

// AddNamed appends a resource with a name. name is stored as raw bytes.
func (b *ForkBuilder) AddNamed(code string, id int16, name string, data []byte) *ForkBuilder {
	t := b.typeFor(code)
	t.resources = append(t.resources, genResource{id: id, name: []byte(name), named: true, data: data})
	return b
}

// AddWithAttributes appends an unnamed resource carrying attribute bits.
func (b *ForkBuilder) AddWithAttributes(code string, id int16, attrs uint8, data []byte) *ForkBuilder {
	t := b.typeFor(code)
	t.resources = append(t.resources, genResource{id: id, attrs: attrs, data: data})
	return b
}

// AddEmptyType declares a type whose resource count minus one is -1.
func (b *ForkBuilder) AddEmptyType(code string) *ForkBuilder {
	b.typeFor(code).empty = true
	return b
}

// SetTypeCountMinusOne overrides the type count field written to the map.
func (b *ForkBuilder) SetTypeCountMinusOne(n int16) *ForkBuilder {
	b.countOverride = &n
	return b
}

// Build returns the fork image starting at offset zero.
func (b *ForkBuilder) Build() []byte {
	img, _ := b.BuildAt(0)
	return img
}

// BuildAt returns an image with prefix zero bytes ahead of the fork, and the
// layout of the fork relative to its own start.
func (b *ForkBuilder) BuildAt(prefix int) ([]byte, Layout) {
	lay := Layout{
		DataOffset:  DataZoneStart,
		RefLists:    make(map[string]int64),
		DataRecords: make(map[string][]int64),
	}

	// Data zone.
	var data []byte
	dataOffsets := make(map[*genResource]uint32)
	for _, t := range b.types {
		for i := range t.resources {
			r := &t.resources[i]
			dataOffsets[r] = uint32(len(data))
			lay.DataRecords[string(t.code[:])] = append(lay.DataRecords[string(t.code[:])], int64(DataZoneStart+len(data)))
			rec := make([]byte, format.DataSizeFieldSize+len(r.data))
			format.PutU32(rec, 0, uint32(len(r.data)))
			copy(rec[format.DataSizeFieldSize:], r.data)
			data = append(data, rec...)
		}
	}

	// Name list.
	var names []byte
	nameOffsets := make(map[*genResource]uint16)
	for _, t := range b.types {
		for i := range t.resources {
			r := &t.resources[i]
			if !r.named {
				continue
			}
			nameOffsets[r] = uint16(len(names))
			names = append(names, byte(len(r.name)))
			names = append(names, r.name...)
		}
	}

	// Type list and reference lists. The type list starts right after the
	// 28-byte map header; reference lists follow the type entries.
	typeListLen := format.TypeCountSize + format.TypeEntrySize*len(b.types)
	refLen := 0
	for _, t := range b.types {
		if !t.empty {
			refLen += format.RefEntrySize * len(t.resources)
		}
	}
	typeList := make([]byte, typeListLen+refLen)
	count := int16(len(b.types) - 1)
	if b.countOverride != nil {
		count = *b.countOverride
	}
	format.PutI16(typeList, 0, count)

	refCursor := typeListLen
	for i, t := range b.types {
		entry := typeList[format.TypeListEntriesStart+i*format.TypeEntrySize:]
		copy(entry, t.code[:])
		if t.empty {
			format.PutI16(entry, format.TypeEntryCountOffset, -1)
			// Point past every reference list so a stray read is detectable.
			format.PutU16(entry, format.TypeEntryRefListOffset, uint16(typeListLen+refLen))
			continue
		}
		format.PutI16(entry, format.TypeEntryCountOffset, int16(len(t.resources)-1))
		format.PutU16(entry, format.TypeEntryRefListOffset, uint16(refCursor))
		for j := range t.resources {
			r := &t.resources[j]
			ref := typeList[refCursor:]
			format.PutI16(ref, format.RefIDOffset, r.id)
			nameOff := uint16(format.NoName)
			if r.named {
				nameOff = nameOffsets[r]
			}
			format.PutU16(ref, format.RefNameOffset, nameOff)
			ref[format.RefAttributesOffset] = r.attrs
			format.PutU24(ref, format.RefDataOffset, dataOffsets[r])
			refCursor += format.RefEntrySize
		}
	}

	mapHeader := make([]byte, format.MapHeaderSize)
	format.PutU16(mapHeader, format.MapTypeListOffset, format.MapHeaderSize)
	format.PutU16(mapHeader, format.MapNameListOffset, uint16(format.MapHeaderSize+len(typeList)))

	mapLen := len(mapHeader) + len(typeList) + len(names)
	mapOffset := DataZoneStart + len(data)

	header := make([]byte, format.HeaderSize)
	format.PutU32(header, format.HeaderDataOffsetOffset, DataZoneStart)
	format.PutU32(header, format.HeaderMapOffsetOffset, uint32(mapOffset))
	format.PutU32(header, format.HeaderDataLengthOffset, uint32(len(data)))
	format.PutU32(header, format.HeaderMapLengthOffset, uint32(mapLen))
	copy(mapHeader, header)

	img := make([]byte, prefix, prefix+mapOffset+mapLen)
	img = append(img, header...)
	img = append(img, make([]byte, DataZoneStart-format.HeaderSize)...)
	img = append(img, data...)
	img = append(img, mapHeader...)
	img = append(img, typeList...)
	img = append(img, names...)

	lay.MapOffset = int64(mapOffset)
	lay.TypeListAddr = int64(mapOffset + format.MapHeaderSize)
	lay.NameListAddr = int64(mapOffset + format.MapHeaderSize + len(typeList))
	for i, t := range b.types {
		entry, _ := format.ParseTypeEntry(typeList[format.TypeListEntriesStart+i*format.TypeEntrySize:])
		lay.RefLists[string(t.code[:])] = lay.TypeListAddr + int64(entry.RefListOffset)
	}
	return img, lay
}
