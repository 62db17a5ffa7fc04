package rsrc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/format"
	"github.com/joshuapare/rsrckit/internal/stream"
	"github.com/joshuapare/rsrckit/rsrc/index"
)

type hostOrder = buf.Order

// Header is the parsed fork header. DataZoneAddr and MapAddr are absolute
// positions in the source.
type Header struct {
	DataZoneAddr int64
	MapAddr      int64
	DataLength   int64
	MapLength    int64
}

// Map holds the resource map fields needed for lookups. Addresses are
// absolute. TypeCountMinusOne is -1 for a map without types.
type Map struct {
	TypeListAddr      int64
	NameListAddr      int64
	TypeCountMinusOne int16
}

// Fork decodes one resource fork inside a seekable source. The source is
// borrowed: the Fork repositions its cursor but never closes it.
type Fork struct {
	src   io.ReadSeeker
	start int64
	size  int64

	hdr   Header
	m     Map
	empty bool
	err   error

	log       *slog.Logger
	host      hostOrder
	openCheck func() error

	useIndex bool
	idx      *index.Index
	idxErr   error

	collect bool
	diags   []Diagnostic
}

// New parses the header and map of the fork that starts at the absolute
// offset start within src.
//
// New always returns a usable *Fork. When parsing fails the error is
// returned alongside a permanently empty fork whose queries all report not
// found.
func New(src io.ReadSeeker, start int64, opts ...Option) (*Fork, error) {
	f := &Fork{
		src:   src,
		start: start,
		log:   discardLogger(),
		host:  buf.NativeOrder(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.checkOpen("open"); err != nil {
		return f, f.fail(err)
	}
	size, err := sourceSize(src)
	if err != nil {
		return f, f.fail(wrapIO("open", err))
	}
	f.size = size

	if err := f.parseHeader(); err != nil {
		return f, f.fail(err)
	}
	if err := f.parseMap(); err != nil {
		return f, f.fail(err)
	}

	f.log.Debug("rsrc: parsed fork",
		"start", f.start,
		"data", f.hdr.DataZoneAddr,
		"map", f.hdr.MapAddr,
		"typeList", f.m.TypeListAddr,
		"nameList", f.m.NameListAddr,
		"types", int(f.m.TypeCountMinusOne)+1,
	)
	return f, nil
}

// fail turns f into an empty parser and records err as the construction error.
func (f *Fork) fail(err error) error {
	f.hdr = Header{}
	f.m = Map{}
	f.empty = true
	f.err = err
	f.log.Error("rsrc: cannot parse fork", "start", f.start, "err", err)
	return err
}

// sourceSize measures src without disturbing its cursor.
func sourceSize(src io.ReadSeeker) (int64, error) {
	cur, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := src.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

func (f *Fork) parseHeader() error {
	const op = "header"
	if err := f.seekTo(op, f.start, format.HeaderSize); err != nil {
		return err
	}
	dataOff, err := f.readU32(op, "data zone offset")
	if err != nil {
		return err
	}
	mapOff, err := f.readU32(op, "map offset")
	if err != nil {
		return err
	}
	dataLen, err := f.readU32(op, "data zone length")
	if err != nil {
		return err
	}
	mapLen, err := f.readU32(op, "map length")
	if err != nil {
		return err
	}
	f.hdr = Header{
		DataZoneAddr: f.start + int64(dataOff),
		MapAddr:      f.start + int64(mapOff),
		DataLength:   int64(dataLen),
		MapLength:    int64(mapLen),
	}
	return nil
}

func (f *Fork) parseMap() error {
	const op = "map"
	if err := f.seekTo(op, f.hdr.MapAddr, format.MapHeaderSize); err != nil {
		return err
	}
	if err := f.skip(op, format.MapReservedSize); err != nil {
		return err
	}
	typeOff, err := f.readU16(op, "type list offset")
	if err != nil {
		return err
	}
	nameOff, err := f.readU16(op, "name list offset")
	if err != nil {
		return err
	}
	typeListAddr := f.hdr.MapAddr + int64(typeOff)

	if err := f.seekTo(op, typeListAddr, format.TypeCountSize); err != nil {
		return err
	}
	count, err := f.readI16(op, "type count")
	if err != nil {
		return err
	}
	f.m = Map{
		TypeListAddr:      typeListAddr,
		NameListAddr:      f.hdr.MapAddr + int64(nameOff),
		TypeCountMinusOne: count,
	}
	return nil
}

// Header returns the parsed header. It is zero for an empty fork.
func (f *Fork) Header() Header { return f.hdr }

// Map returns the parsed map fields. It is zero for an empty fork.
func (f *Fork) Map() Map { return f.m }

// Start returns the absolute offset of the fork within its source.
func (f *Fork) Start() int64 { return f.start }

// Empty reports whether construction failed and the fork answers nothing.
func (f *Fork) Empty() bool { return f.empty }

// Err returns the construction error, if any.
func (f *Fork) Err() error { return f.err }

// checkOpen reports StreamNotOpen when there is no source or its owner has
// closed it.
func (f *Fork) checkOpen(op string) error {
	if f.src == nil {
		return newError(KindStreamNotOpen, op, "no source", nil)
	}
	if f.openCheck != nil {
		if err := f.openCheck(); err != nil {
			return newError(KindStreamNotOpen, op, "", err)
		}
	}
	return nil
}

// ready gates every query. An empty fork answers not found.
func (f *Fork) ready(op string) error {
	if err := f.checkOpen(op); err != nil {
		return err
	}
	if f.empty {
		return newError(KindTypeNotFound, op, "fork could not be parsed", f.err)
	}
	return nil
}

// seekTo moves the cursor to addr after checking that n bytes from there lie
// inside the source.
func (f *Fork) seekTo(op string, addr, n int64) error {
	if _, err := buf.CheckRange(f.size, addr, n); err != nil {
		return newError(KindBadAddress, op, fmt.Sprintf("address %#x", addr), err)
	}
	if _, err := f.src.Seek(addr, io.SeekStart); err != nil {
		return wrapIO(op, err)
	}
	return nil
}

func (f *Fork) skip(op string, n int64) error {
	if _, err := f.src.Seek(n, io.SeekCurrent); err != nil {
		return wrapIO(op, err)
	}
	return nil
}

func (f *Fork) tell(op string) (int64, error) {
	pos, err := f.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, wrapIO(op, err)
	}
	return pos, nil
}

func (f *Fork) readU32(op, what string) (uint32, error) {
	v, err := stream.ReadPrimitiveAs[uint32](f.src, 4, what, f.host)
	return v, wrapIO(op, err)
}

func (f *Fork) readU24(op, what string) (uint32, error) {
	v, err := stream.ReadPrimitiveAs[uint32](f.src, format.RefDataSize, what, f.host)
	return v, wrapIO(op, err)
}

func (f *Fork) readU16(op, what string) (uint16, error) {
	v, err := stream.ReadPrimitiveAs[uint16](f.src, 2, what, f.host)
	return v, wrapIO(op, err)
}

func (f *Fork) readI16(op, what string) (int16, error) {
	v, err := stream.ReadPrimitiveAs[int16](f.src, 2, what, f.host)
	return v, wrapIO(op, err)
}

func (f *Fork) readU8(op, what string) (uint8, error) {
	v, err := stream.ReadPrimitiveAs[uint8](f.src, 1, what, f.host)
	return v, wrapIO(op, err)
}

func (f *Fork) readBytes(op string, n int, what string) ([]byte, error) {
	b, err := stream.ReadBytes(f.src, n, what)
	return b, wrapIO(op, err)
}

// notFound builds the error returned when a key is missing from a present type.
func notFound(op string, t TypeCode, k Key) error {
	return newError(KindResourceNotFound, op, fmt.Sprintf("no resource %s in type %#v", k, t), nil)
}

// errTypeMissing builds the error returned when a type is not in the map.
func errTypeMissing(op string, t TypeCode) error {
	return newError(KindTypeNotFound, op, fmt.Sprintf("no type %#v", t), nil)
}
