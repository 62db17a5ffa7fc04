package rsrc

import (
	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/format"
	"github.com/joshuapare/rsrckit/rsrc/index"
)

// index returns the lookup table, building it on first use. It returns nil
// when the map cannot be indexed; callers then fall back to scanning, which
// reports the underlying problem in context.
func (f *Fork) index() *index.Index {
	if f.idx != nil || f.idxErr != nil {
		return f.idx
	}
	idx, err := f.buildIndex()
	if err != nil {
		f.idxErr = err
		f.log.Warn("rsrc: index unavailable, scanning instead", "err", err)
		return nil
	}
	f.idx = idx
	stats := idx.Stats()
	f.log.Debug("rsrc: index built", "types", stats.TypeCount, "ids", stats.IDCount, "names", stats.NameCount)
	return idx
}

// IndexStats reports the size of the lookup table, if one has been built.
func (f *Fork) IndexStats() (index.Stats, bool) {
	if f.idx == nil {
		return index.Stats{}, false
	}
	return f.idx.Stats(), true
}

func (f *Fork) buildIndex() (*index.Index, error) {
	const op = "index"
	n := int64(f.m.TypeCountMinusOne) + 1
	if n <= 0 {
		return index.New(0, 0), nil
	}

	listLen, err := buf.CheckListBounds(f.size, f.m.TypeListAddr+format.TypeListEntriesStart, n, format.TypeEntrySize)
	if err != nil {
		return nil, newError(KindBadAddress, op, "type list", err)
	}
	if err := f.seekTo(op, f.m.TypeListAddr, 0); err != nil {
		return nil, err
	}
	rawTypes, err := f.readBytes(op, int(listLen-f.m.TypeListAddr), "type list")
	if err != nil {
		return nil, err
	}
	types, err := format.TypeEntries(rawTypes)
	if err != nil {
		return nil, newError(KindBadAddress, op, "type list", err)
	}

	names := f.nameList(op)

	total := 0
	for _, te := range types {
		total += max(int(te.CountMinusOne)+1, 0)
	}
	idx := index.New(len(types), total)

	// A scan stops at the first entry for a code, so later entries with the
	// same code are unreachable and must not contribute resources.
	seen := make(map[[format.TypeCodeSize]byte]struct{}, len(types))
	for _, te := range types {
		if _, dup := seen[te.Code]; dup {
			continue
		}
		seen[te.Code] = struct{}{}
		refAddr := f.m.TypeListAddr + int64(te.RefListOffset)
		idx.AddType(te.Code, index.TypeRef{CountMinusOne: te.CountMinusOne, RefListAddr: refAddr})
		if te.CountMinusOne < 0 {
			continue
		}
		count := int64(te.CountMinusOne) + 1
		if _, err := buf.CheckListBounds(f.size, refAddr, count, format.RefEntrySize); err != nil {
			return nil, newError(KindBadAddress, op, "reference list", err)
		}
		if err := f.seekTo(op, refAddr, 0); err != nil {
			return nil, err
		}
		rawRefs, err := f.readBytes(op, int(count*format.RefEntrySize), "reference list")
		if err != nil {
			return nil, err
		}
		for ; len(rawRefs) > 0; rawRefs = rawRefs[format.RefEntrySize:] {
			re, err := format.ParseRefEntry(rawRefs)
			if err != nil {
				return nil, newError(KindBadAddress, op, "reference entry", err)
			}
			dataAddr := f.hdr.DataZoneAddr + int64(re.DataOffset)
			idx.AddID(te.Code, re.ID, dataAddr)
			if !re.HasName() {
				continue
			}
			name, err := f.indexName(op, names, re.NameOffset)
			if err != nil {
				return nil, err
			}
			idx.AddName(te.Code, name, dataAddr)
		}
	}
	return idx, nil
}

// nameList reads the name list in one go when the header's map length
// bounds it. It returns nil when the list has to be read name by name.
func (f *Fork) nameList(op string) []byte {
	end := f.hdr.MapAddr + f.hdr.MapLength
	n := end - f.m.NameListAddr
	if n <= 0 {
		return nil
	}
	if _, err := buf.CheckRange(f.size, f.m.NameListAddr, n); err != nil {
		return nil
	}
	if err := f.seekTo(op, f.m.NameListAddr, n); err != nil {
		return nil
	}
	raw, err := f.readBytes(op, int(n), "name list")
	if err != nil {
		return nil
	}
	return raw
}

func (f *Fork) indexName(op string, names []byte, off uint16) ([]byte, error) {
	if names != nil {
		if name, err := format.ParseName(names, int(off)); err == nil {
			return name, nil
		}
	}
	return f.resolveName(op, f.m.NameListAddr+int64(off))
}

func (f *Fork) indexedAddress(op string, idx *index.Index, t TypeCode, k Key, rawName []byte) (int64, error) {
	if _, ok := idx.Type(t); !ok {
		return 0, errTypeMissing(op, t)
	}
	if _, named := k.Name(); named {
		addr, ok := idx.ByName(t, rawName)
		if !ok {
			return 0, notFound(op, t, k)
		}
		return addr, nil
	}
	id, _ := k.ID()
	addr, ok := idx.ByID(t, id)
	if !ok {
		return 0, notFound(op, t, k)
	}
	return addr, nil
}
