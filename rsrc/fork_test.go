package rsrc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/testutil"
)

func TestNewParsesHeaderAndMap(t *testing.T) {
	img, lay := sampleFork().BuildAt(0)
	f := mustFork(t, img)

	hdr := f.Header()
	require.Equal(t, int64(testutil.DataZoneStart), hdr.DataZoneAddr)
	require.Equal(t, lay.MapOffset, hdr.MapAddr)
	require.Equal(t, lay.MapOffset-testutil.DataZoneStart, hdr.DataLength)
	require.Equal(t, int64(len(img))-lay.MapOffset, hdr.MapLength)

	m := f.Map()
	require.Equal(t, lay.TypeListAddr, m.TypeListAddr)
	require.Equal(t, lay.NameListAddr, m.NameListAddr)
	require.Equal(t, int16(3), m.TypeCountMinusOne)
	require.NoError(t, f.Err())
}

func TestNewRebasesOnStart(t *testing.T) {
	const start = 3 * 512
	img, lay := sampleFork().BuildAt(start)

	f, err := New(bytes.NewReader(img), start)
	require.NoError(t, err)
	require.Equal(t, int64(start), f.Start())
	require.Equal(t, start+lay.MapOffset, f.Header().MapAddr)
	require.Equal(t, start+lay.TypeListAddr, f.Map().TypeListAddr)

	data, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)
	require.Equal(t, deadBeef, data)
}

func TestNewNilSource(t *testing.T) {
	f, err := New(nil, 0)
	require.NotNil(t, f)
	require.ErrorIs(t, err, ErrStreamNotOpen)
	require.True(t, f.Empty())

	_, err = f.Data(MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrStreamNotOpen)
}

func TestNewFailureLeavesEmptyFork(t *testing.T) {
	tests := []struct {
		name string
		img  []byte
		kind ErrKind
	}{
		{"empty source", nil, KindBadAddress},
		{"truncated header", []byte{0, 0, 1, 0, 0, 0}, KindBadAddress},
		{"map header cut short", func() []byte {
			img, lay := sampleFork().BuildAt(0)
			return img[:lay.MapOffset+10]
		}(), KindBadAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(bytes.NewReader(tt.img), 0)
			require.Error(t, err)
			require.Equal(t, tt.kind, KindOf(err))
			require.NotNil(t, f)
			require.True(t, f.Empty())
			require.Equal(t, Header{}, f.Header())
			require.Equal(t, Map{}, f.Map())
			require.Equal(t, err, f.Err())

			_, err = f.Data(MustTypeCode("ABCD"), ByID(1))
			require.True(t, IsNotFound(err), "empty fork must answer not found, got %v", err)
			ids, err := f.IDs(MustTypeCode("ABCD"))
			require.True(t, IsNotFound(err))
			require.Empty(t, ids)
		})
	}
}

func TestHeaderStableAcrossQueries(t *testing.T) {
	f := mustFork(t, sampleFork().Build())
	hdr, m := f.Header(), f.Map()

	for i := 0; i < 3; i++ {
		_, _ = f.Data(MustTypeCode("STR "), ByName("Bar"))
		_, _ = f.IDs(MustTypeCode("ICN#"))
		_, _ = f.Data(MustTypeCode("ZZZZ"), ByID(1))
	}
	require.Equal(t, hdr, f.Header())
	require.Equal(t, m, f.Map())
}

func TestSimulatedHostOrderGivesSameResults(t *testing.T) {
	img := sampleFork().Build()
	var results [][]byte
	var ids [][]int16
	for _, host := range []buf.Order{buf.LittleEndian, buf.BigEndian} {
		f := mustFork(t, img, withHostOrder(host))
		data, err := f.Data(MustTypeCode("ICN#"), ByID(-4064))
		require.NoError(t, err, host.String())
		results = append(results, data)
		got, err := f.IDs(MustTypeCode("STR "))
		require.NoError(t, err)
		ids = append(ids, got)
	}
	require.Equal(t, results[0], results[1])
	require.Equal(t, ids[0], ids[1])
	require.Equal(t, []int16{128, 129, 130}, ids[0])
}

func TestOpenCheckVetoesQueries(t *testing.T) {
	closed := false
	check := func() error {
		if closed {
			return errors.New("closed")
		}
		return nil
	}
	f := mustFork(t, sampleFork().Build(), withOpenCheck(check))

	_, err := f.Data(MustTypeCode("ABCD"), ByID(1))
	require.NoError(t, err)

	closed = true
	_, err = f.Data(MustTypeCode("ABCD"), ByID(1))
	require.ErrorIs(t, err, ErrStreamNotOpen)
	_, err = f.Types()
	require.ErrorIs(t, err, ErrStreamNotOpen)
}
