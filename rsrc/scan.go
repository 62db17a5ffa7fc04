package rsrc

import (
	"bytes"
	"io"

	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/format"
)

// refList locates the reference list for a type.
type refList struct {
	countMinusOne int16 // -1 for a type without resources
	addr          int64
}

func (r refList) empty() bool { return r.countMinusOne < 0 }

// findReferenceList scans the type list for t. Entries are compared as raw
// bytes; the scan stops at the first match.
func (f *Fork) findReferenceList(op string, t TypeCode) (refList, error) {
	if f.useIndex {
		if idx := f.index(); idx != nil {
			ref, ok := idx.Type(t)
			if !ok {
				return refList{countMinusOne: -1}, errTypeMissing(op, t)
			}
			return refList{countMinusOne: ref.CountMinusOne, addr: ref.RefListAddr}, nil
		}
	}

	n := int64(f.m.TypeCountMinusOne) + 1
	if n <= 0 {
		return refList{countMinusOne: -1}, errTypeMissing(op, t)
	}
	first := f.m.TypeListAddr + format.TypeListEntriesStart
	if _, err := buf.CheckListBounds(f.size, first, n, format.TypeEntrySize); err != nil {
		return refList{countMinusOne: -1}, newError(KindBadAddress, op, "type list", err)
	}
	if err := f.seekTo(op, first, 0); err != nil {
		return refList{countMinusOne: -1}, err
	}

	for i := int64(0); i < n; i++ {
		code, err := f.readBytes(op, format.TypeCodeSize, "type code")
		if err != nil {
			return refList{countMinusOne: -1}, err
		}
		if !bytes.Equal(code, t[:]) {
			if err := f.skip(op, format.TypeEntryTailSize); err != nil {
				return refList{countMinusOne: -1}, err
			}
			continue
		}
		count, err := f.readI16(op, "resource count")
		if err != nil {
			return refList{countMinusOne: -1}, err
		}
		off, err := f.readU16(op, "reference list offset")
		if err != nil {
			return refList{countMinusOne: -1}, err
		}
		return refList{countMinusOne: count, addr: f.m.TypeListAddr + int64(off)}, nil
	}
	return refList{countMinusOne: -1}, errTypeMissing(op, t)
}

// openRefList finds t's reference list and positions the cursor at its first
// entry. Empty types are returned without seeking.
func (f *Fork) openRefList(op string, t TypeCode) (refList, error) {
	rl, err := f.findReferenceList(op, t)
	if err != nil || rl.empty() {
		return rl, err
	}
	n := int64(rl.countMinusOne) + 1
	if _, err := buf.CheckListBounds(f.size, rl.addr, n, format.RefEntrySize); err != nil {
		return rl, newError(KindBadAddress, op, "reference list", err)
	}
	if err := f.seekTo(op, rl.addr, 0); err != nil {
		return rl, err
	}
	return rl, nil
}

// findByID scans t's reference list for id and returns the absolute address
// of the data record. With duplicate IDs the first entry wins.
func (f *Fork) findByID(op string, t TypeCode, id int16) (int64, error) {
	rl, err := f.openRefList(op, t)
	if err != nil {
		return 0, err
	}
	for i := 0; i <= int(rl.countMinusOne); i++ {
		got, err := f.readI16(op, "resource id")
		if err != nil {
			return 0, err
		}
		if got != id {
			if err := f.skip(op, format.RefEntrySize-format.RefIDSize); err != nil {
				return 0, err
			}
			continue
		}
		if err := f.skip(op, format.RefNameSize+format.RefAttributesSize); err != nil {
			return 0, err
		}
		off, err := f.readU24(op, "data offset")
		if err != nil {
			return 0, err
		}
		return f.hdr.DataZoneAddr + int64(off), nil
	}
	return 0, notFound(op, t, ByID(id))
}

// findByName scans t's reference list for an entry whose name has exactly
// the bytes of name. Unnamed entries never match.
func (f *Fork) findByName(op string, t TypeCode, name []byte) (int64, error) {
	rl, err := f.openRefList(op, t)
	if err != nil {
		return 0, err
	}
	for i := 0; i <= int(rl.countMinusOne); i++ {
		if err := f.skip(op, format.RefIDSize); err != nil {
			return 0, err
		}
		nameOff, err := f.readU16(op, "name offset")
		if err != nil {
			return 0, err
		}
		if nameOff != format.NoName {
			got, err := f.resolveName(op, f.m.NameListAddr+int64(nameOff))
			if err != nil {
				return 0, err
			}
			if bytes.Equal(got, name) {
				if err := f.skip(op, format.RefAttributesSize); err != nil {
					return 0, err
				}
				off, err := f.readU24(op, "data offset")
				if err != nil {
					return 0, err
				}
				return f.hdr.DataZoneAddr + int64(off), nil
			}
		}
		if err := f.skip(op, format.RefAttributesSize+format.RefDataSize+format.RefReservedSize); err != nil {
			return 0, err
		}
	}
	return 0, notFound(op, t, ByName(decodeMacRoman(name)))
}

// resolveName reads the length-prefixed name at addr and puts the cursor
// back where it was, so a reference-list scan in progress stays aligned.
func (f *Fork) resolveName(op string, addr int64) (name []byte, err error) {
	saved, err := f.tell(op)
	if err != nil {
		return nil, err
	}
	defer func() {
		if _, serr := f.src.Seek(saved, io.SeekStart); serr != nil && err == nil {
			name, err = nil, wrapIO(op, serr)
		}
	}()

	if err := f.seekTo(op, addr, format.NameLengthSize); err != nil {
		return nil, err
	}
	n, err := f.readU8(op, "name length")
	if err != nil {
		return nil, err
	}
	if _, err := buf.CheckRange(f.size, addr+format.NameLengthSize, int64(n)); err != nil {
		return nil, newError(KindBadAddress, op, "name", err)
	}
	return f.readBytes(op, int(n), "name")
}

// Types lists the type codes in the map in on-disk order.
func (f *Fork) Types() ([]TypeCode, error) {
	const op = "types"
	if err := f.ready(op); err != nil {
		return nil, err
	}
	n := int64(f.m.TypeCountMinusOne) + 1
	if n <= 0 {
		return nil, nil
	}
	first := f.m.TypeListAddr + format.TypeListEntriesStart
	if _, err := buf.CheckListBounds(f.size, first, n, format.TypeEntrySize); err != nil {
		return nil, newError(KindBadAddress, op, "type list", err)
	}
	if err := f.seekTo(op, first, 0); err != nil {
		return nil, err
	}
	out := make([]TypeCode, 0, n)
	for i := int64(0); i < n; i++ {
		code, err := f.readBytes(op, format.TypeCodeSize, "type code")
		if err != nil {
			return nil, err
		}
		var tc TypeCode
		copy(tc[:], code)
		out = append(out, tc)
		if err := f.skip(op, format.TypeEntryTailSize); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Count returns how many resources of type t the map lists.
func (f *Fork) Count(t TypeCode) (int, error) {
	const op = "count"
	if err := f.ready(op); err != nil {
		return 0, err
	}
	rl, err := f.findReferenceList(op, t)
	if err != nil {
		return 0, err
	}
	return max(int(rl.countMinusOne)+1, 0), nil
}

// IDs lists the IDs of every resource of type t in on-disk order.
func (f *Fork) IDs(t TypeCode) ([]int16, error) {
	const op = "ids"
	if err := f.ready(op); err != nil {
		return nil, err
	}
	rl, err := f.openRefList(op, t)
	if err != nil {
		return nil, err
	}
	ids := make([]int16, 0, max(int(rl.countMinusOne)+1, 0))
	for i := 0; i <= int(rl.countMinusOne); i++ {
		id, err := f.readI16(op, "resource id")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if err := f.skip(op, format.RefEntrySize-format.RefIDSize); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Names lists the names of every resource of type t in on-disk order,
// decoded from Mac OS Roman. Unnamed resources appear as "" so the result
// lines up with IDs.
func (f *Fork) Names(t TypeCode) ([]string, error) {
	const op = "names"
	if err := f.ready(op); err != nil {
		return nil, err
	}
	rl, err := f.openRefList(op, t)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, max(int(rl.countMinusOne)+1, 0))
	for i := 0; i <= int(rl.countMinusOne); i++ {
		if err := f.skip(op, format.RefIDSize); err != nil {
			return nil, err
		}
		nameOff, err := f.readU16(op, "name offset")
		if err != nil {
			return nil, err
		}
		name := ""
		if nameOff != format.NoName {
			raw, err := f.resolveName(op, f.m.NameListAddr+int64(nameOff))
			if err != nil {
				return nil, err
			}
			name = decodeMacRoman(raw)
		}
		names = append(names, name)
		if err := f.skip(op, format.RefAttributesSize+format.RefDataSize+format.RefReservedSize); err != nil {
			return nil, err
		}
	}
	return names, nil
}
