package rsrc

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/rsrckit/internal/format"
	"github.com/joshuapare/rsrckit/internal/testutil"
)

func TestIndexMatchesScan(t *testing.T) {
	img := sampleFork().
		Add("DUPE", 5, []byte("one")).
		Add("DUPE", 5, []byte("two")).
		Build()
	scan := mustFork(t, img)
	indexed := mustFork(t, img, WithIndex())

	queries := []struct {
		code string
		key  Key
	}{
		{"ABCD", ByID(1)},
		{"ABCD", ByID(2)},
		{"STR ", ByID(129)},
		{"STR ", ByName("Foo")},
		{"STR ", ByName("Bar")},
		{"STR ", ByName("foo")},
		{"STR ", ByName("")},
		{"NONE", ByID(0)},
		{"NONE", ByName("Foo")},
		{"ICN#", ByID(-4064)},
		{"DUPE", ByID(5)},
		{"ZZZZ", ByID(1)},
	}
	for _, q := range queries {
		tc := MustTypeCode(q.code)
		want, wantErr := scan.Data(tc, q.key)
		got, gotErr := indexed.Data(tc, q.key)
		assert.Equal(t, want, got, "%s %s", q.code, q.key)
		assert.Equal(t, KindOf(wantErr), KindOf(gotErr), "%s %s", q.code, q.key)
	}

	for _, code := range []string{"STR ", "NONE", "ZZZZ"} {
		tc := MustTypeCode(code)
		wantIDs, wantErr := scan.IDs(tc)
		gotIDs, gotErr := indexed.IDs(tc)
		assert.Equal(t, wantIDs, gotIDs, code)
		assert.Equal(t, KindOf(wantErr), KindOf(gotErr), code)
	}
}

// repeatedTypeFork lists 'AAAA' twice: ID 1 under the first entry, ID 2
// under the second. Only the first entry is reachable.
func repeatedTypeFork(t *testing.T) []byte {
	t.Helper()
	img, lay := testutil.NewForkBuilder().
		AddNamed("AAAA", 1, "first", []byte("x")).
		AddNamed("AAAB", 2, "second", []byte("y")).
		BuildAt(0)
	second := lay.TypeListAddr + format.TypeListEntriesStart + format.TypeEntrySize
	copy(img[second:], "AAAA")
	return img
}

func TestIndexMatchesScanWithRepeatedType(t *testing.T) {
	img := repeatedTypeFork(t)
	scan := mustFork(t, img)
	indexed := mustFork(t, img, WithIndex())
	aaaa := MustTypeCode("AAAA")

	for _, k := range []Key{ByID(1), ByID(2), ByName("first"), ByName("second")} {
		want, wantErr := scan.Data(aaaa, k)
		got, gotErr := indexed.Data(aaaa, k)
		assert.Equal(t, want, got, "key %s", k)
		assert.Equal(t, KindOf(wantErr), KindOf(gotErr), "key %s", k)
	}

	_, err := indexed.Data(aaaa, ByID(2))
	require.ErrorIs(t, err, ErrResourceNotFound)

	stats, ok := indexed.IndexStats()
	require.True(t, ok)
	assert.Equal(t, 1, stats.TypeCount)
	assert.Equal(t, 1, stats.IDCount)
	assert.Equal(t, 1, stats.NameCount)
}

func TestIndexStats(t *testing.T) {
	f := mustFork(t, sampleFork().Build(), WithIndex())

	_, ok := f.IndexStats()
	require.False(t, ok, "index is built lazily")

	_, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)

	stats, ok := f.IndexStats()
	require.True(t, ok)
	assert.Equal(t, 4, stats.TypeCount)
	assert.Equal(t, 5, stats.IDCount)
	assert.Equal(t, 2, stats.NameCount)
	assert.Positive(t, stats.BytesApprox)
}

func TestIndexNotBuiltWithoutOption(t *testing.T) {
	f := mustFork(t, sampleFork().Build())
	_, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)
	_, ok := f.IndexStats()
	require.False(t, ok)
}

func TestIndexFallsBackToScan(t *testing.T) {
	img, lay := sampleFork().BuildAt(0)
	entry := lay.TypeListAddr + format.TypeListEntriesStart + 3*format.TypeEntrySize
	format.PutU16(img, int(entry)+format.TypeEntryRefListOffset, 0xFFF0)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := mustFork(t, img, WithIndex(), WithLogger(logger))

	data, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, deadBeef, data)

	_, err = f.Data(MustTypeCode("ICN#"), ByID(-4064))
	require.ErrorIs(t, err, ErrBadAddress)

	_, ok := f.IndexStats()
	require.False(t, ok)
	require.Contains(t, logs.String(), "index unavailable")
}

func TestIndexEmptyMap(t *testing.T) {
	f := mustFork(t, testutil.NewForkBuilder().Build(), WithIndex())
	_, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrTypeNotFound)

	stats, ok := f.IndexStats()
	require.True(t, ok)
	require.Zero(t, stats.TypeCount)
}

func TestIndexMacRomanNames(t *testing.T) {
	img := testutil.NewForkBuilder().
		AddNamed("STR#", 1, "Caf\x8e", []byte("menu")).
		Build()
	f := mustFork(t, img, WithIndex())

	data, err := f.Data(MustTypeCode("STR#"), ByName("Café"))
	require.NoError(t, err)
	require.Equal(t, []byte("menu"), data)
}
