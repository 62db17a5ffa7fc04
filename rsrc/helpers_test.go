package rsrc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/rsrckit/internal/testutil"
)

// seekRecorder remembers every position a Seek moved the cursor to.
type seekRecorder struct {
	io.ReadSeeker
	positions []int64
}

func (s *seekRecorder) Seek(off int64, whence int) (int64, error) {
	pos, err := s.ReadSeeker.Seek(off, whence)
	if whence != io.SeekCurrent || off != 0 {
		s.positions = append(s.positions, pos)
	}
	return pos, err
}

func (s *seekRecorder) reset() { s.positions = nil }

var deadBeef = []byte{0xDE, 0xAD, 0xBE, 0xEF}

func mustFork(t *testing.T, img []byte, opts ...Option) *Fork {
	t.Helper()
	f, err := New(bytes.NewReader(img), 0, opts...)
	require.NoError(t, err)
	require.False(t, f.Empty())
	return f
}

// sampleFork has two populated types, one empty type and a mix of named and
// unnamed resources.
func sampleFork() *testutil.ForkBuilder {
	return testutil.NewForkBuilder().
		Add("ABCD", 1, deadBeef).
		AddNamed("STR ", 128, "Foo", []byte("first")).
		Add("STR ", 129, []byte("unnamed")).
		AddNamed("STR ", 130, "Bar", []byte("second")).
		AddEmptyType("NONE").
		Add("ICN#", -4064, bytes.Repeat([]byte{0xAA}, 256))
}
