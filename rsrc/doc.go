// Package rsrc reads classic Mac OS resource forks.
//
// # Overview
//
// A resource fork is a typed, keyed record store. Each resource is addressed
// by a four-byte type code plus either a signed 16-bit ID or a name. The fork
// is laid out as:
//
//	[Header 16B] [Data zone: {size(4) payload}...] [Map: reserved(24) typeList nameList]
//
// The map's type list holds one 8-byte entry per type; each entry points to a
// reference list of 12-byte entries, one per resource, which in turn point
// into the data zone and (optionally) the name list. All integers are
// big-endian.
//
// # Opening a Fork
//
// A Fork reads from any io.ReadSeeker at a known absolute start offset:
//
//	f, err := rsrc.New(r, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := f.Data(rsrc.MustTypeCode("ICN#"), rsrc.ByID(128))
//
// For files on disk, File computes the start offset from a block index and
// owns the underlying stream:
//
//	file, err := rsrc.OpenFile("Game.rsrc", 4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//	f, err := file.LoadFork(0)
//
// # Lookups
//
// The header and map are parsed once when the Fork is created. Every query
// then seeks and scans the type list and the matching reference list again;
// nothing is cached unless WithIndex is given, in which case a lookup table
// is built on first use and answers the same way the scans would.
//
// A type missing from the map and a key missing from a present type are both
// "not found": errors.Is(err, ErrNotFound) holds for either, while the Kind
// of the returned *Error still tells them apart.
//
// # Typed Records
//
// Decode copies exactly unsafe.Sizeof(T) bytes of a resource payload into a
// T, bit for bit. Fields keep their on-disk big-endian byte order; converting
// them is up to the caller (see ToNative). Unmarshal is the convenience
// alternative that decodes big-endian fields through encoding/binary.
//
// # Concurrency
//
// A Fork moves the cursor of the stream it reads. It is not safe for
// concurrent use; serialize access or give each goroutine its own stream.
package rsrc
