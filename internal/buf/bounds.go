package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative values, returning ok = false on
// overflow or when either operand is negative. Used for count * stride.
func MulOverflowSafe(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// CheckRange validates that n bytes starting at addr lie inside a source of
// the given size. Returns the end address if valid.
func CheckRange(size, addr, n int64) (int64, error) {
	if addr < 0 {
		return 0, fmt.Errorf("negative address: %d", addr)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(addr, n)
	if !ok {
		return 0, fmt.Errorf("overflow: addr=%d + len=%d", addr, n)
	}
	if end > size {
		return 0, fmt.Errorf("bounds: end=%d > size=%d", end, size)
	}
	return end, nil
}

// CheckListBounds validates that count entries of stride bytes starting at
// addr fit inside a source of the given size.
//
//	end, err := buf.CheckListBounds(size, refListAddr, count, format.RefEntrySize)
//	if err != nil {
//	    return fmt.Errorf("reference list: %w", err)
//	}
func CheckListBounds(size, addr, count, stride int64) (int64, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	total, ok := MulOverflowSafe(count, stride)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * stride=%d", count, stride)
	}
	return CheckRange(size, addr, total)
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(int64(off), int64(n))
	if !ok || end > int64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
