package rsrc

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/rsrckit/internal/format"
)

// TypeCode is a four-byte resource type such as 'ICN#' or 'STR '. Codes are
// compared as raw bytes and are case-sensitive.
type TypeCode [format.TypeCodeSize]byte

// ParseTypeCode converts s to a type code. s is encoded as Mac OS Roman and
// must come out at exactly four bytes.
func ParseTypeCode(s string) (TypeCode, error) {
	var t TypeCode
	raw, err := charmap.Macintosh.NewEncoder().String(s)
	if err != nil {
		return t, newError(KindInvalidKey, "type code", fmt.Sprintf("%q is not Mac OS Roman", s), err)
	}
	if len(raw) != format.TypeCodeSize {
		return t, newError(KindInvalidKey, "type code", fmt.Sprintf("%q is %d bytes, want %d", s, len(raw), format.TypeCodeSize), nil)
	}
	copy(t[:], raw)
	return t, nil
}

// MustTypeCode is like ParseTypeCode but panics on error.
func MustTypeCode(s string) TypeCode {
	t, err := ParseTypeCode(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String decodes the code as Mac OS Roman.
func (t TypeCode) String() string {
	return decodeMacRoman(t[:])
}

// GoString quotes the code the way it is written in Rez sources.
func (t TypeCode) GoString() string {
	return "'" + t.String() + "'"
}

// Key selects a resource within a type, either by ID or by name.
type Key struct {
	id    int16
	name  string
	named bool
}

// ByID selects the resource with the given ID.
func ByID(id int16) Key {
	return Key{id: id}
}

// ByName selects the resource with the given name. Matching is exact and
// case-sensitive on the Mac OS Roman bytes.
func ByName(name string) Key {
	return Key{name: name, named: true}
}

// ID returns the key's ID and whether the key selects by ID.
func (k Key) ID() (int16, bool) {
	return k.id, !k.named
}

// Name returns the key's name and whether the key selects by name.
func (k Key) Name() (string, bool) {
	return k.name, k.named
}

func (k Key) String() string {
	if k.named {
		return strconv.Quote(k.name)
	}
	return strconv.Itoa(int(k.id))
}

func decodeMacRoman(b []byte) string {
	s, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func encodeMacRoman(s string) ([]byte, error) {
	return charmap.Macintosh.NewEncoder().Bytes([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (t TypeCode) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TypeCode) UnmarshalText(b []byte) error {
	tc, err := ParseTypeCode(string(b))
	if err != nil {
		return err
	}
	*t = tc
	return nil
}
