// Package index provides an in-memory lookup table for resource fork maps.
//
// # Overview
//
// Without an index every query walks the type list and then the reference
// list of the requested type. The Index built here maps
//
//   - type code → (resource count minus one, reference list address)
//   - (type code, resource ID) → data record address
//   - (type code, raw name bytes) → data record address
//
// so that repeated lookups cost one map access each.
//
// # Semantics
//
// The index must answer exactly as a linear scan would. Scans stop at the
// first match, so AddType, AddID and AddName keep the first entry registered
// for a key and ignore later duplicates. Names are compared as raw bytes,
// case-sensitively.
//
// # Usage Example
//
//	idx := index.New(len(types), total)
//	for _, te := range types {
//	    idx.AddType(te.Code, index.TypeRef{CountMinusOne: te.CountMinusOne, RefListAddr: addr})
//	    for _, re := range refs {
//	        idx.AddID(te.Code, re.ID, dataAddr)
//	    }
//	}
//	addr, ok := idx.ByID(code, 128)
package index
