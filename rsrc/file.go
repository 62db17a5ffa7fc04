package rsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/rsrckit/internal/buf"
	"github.com/joshuapare/rsrckit/internal/mmfile"
)

// DefaultBlockSize is the allocation block size assumed when none is given.
const DefaultBlockSize = 4096

var errFileClosed = errors.New("file closed")

// File owns an open input file and hands out Forks that borrow its stream.
// A Fork loaded from a File stops answering once the File is closed.
type File struct {
	path      string
	blockSize int64
	base      int64
	size      int64

	src     io.ReadSeeker
	release func() error
	closed  bool
	log     *slog.Logger
}

type fileConfig struct {
	mmap        bool
	appleDouble bool
	log         *slog.Logger
}

// FileOption configures OpenFile.
type FileOption func(*fileConfig)

// WithMmap selects whether the file is memory-mapped (the default) or read
// through an *os.File.
func WithMmap(enabled bool) FileOption {
	return func(c *fileConfig) {
		c.mmap = enabled
	}
}

// WithAppleDouble treats the input as an AppleDouble or AppleSingle
// container. Block offsets are then counted from the start of its resource
// fork entry instead of the start of the file.
func WithAppleDouble() FileOption {
	return func(c *fileConfig) {
		c.appleDouble = true
	}
}

// WithFileLogger sets the logger used by the File and the Forks it loads.
func WithFileLogger(l *slog.Logger) FileOption {
	return func(c *fileConfig) {
		c.log = l
	}
}

// OpenFile opens path for reading resource forks stored at multiples of
// blockSize bytes. A blockSize of zero selects DefaultBlockSize.
func OpenFile(path string, blockSize int64, opts ...FileOption) (*File, error) {
	cfg := fileConfig{mmap: true, log: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < 0 {
		return nil, fmt.Errorf("rsrc: invalid block size %d", blockSize)
	}

	f := &File{path: path, blockSize: blockSize, log: cfg.log}
	if cfg.mmap {
		data, release, err := mmfile.Map(path)
		if err != nil {
			return nil, fmt.Errorf("rsrc: open %s: %w", path, err)
		}
		f.src = bytes.NewReader(data)
		f.release = release
		f.size = int64(len(data))
	} else {
		osf, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("rsrc: open %s: %w", path, err)
		}
		info, err := osf.Stat()
		if err != nil {
			osf.Close()
			return nil, fmt.Errorf("rsrc: stat %s: %w", path, err)
		}
		f.src = osf
		f.release = osf.Close
		f.size = info.Size()
	}

	if cfg.appleDouble {
		ra, ok := f.src.(io.ReaderAt)
		if !ok {
			f.Close()
			return nil, fmt.Errorf("rsrc: %s: source does not support random access", path)
		}
		off, _, ok := AppleDoubleForkOffset(ra)
		if !ok {
			f.Close()
			return nil, fmt.Errorf("rsrc: %s: no resource fork entry in AppleDouble header", path)
		}
		f.base = off
	}

	f.log.Debug("rsrc: opened file", "path", path, "size", f.size, "blockSize", blockSize, "base", f.base, "mmap", cfg.mmap)
	return f, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string { return f.path }

// Size returns the file length in bytes.
func (f *File) Size() int64 { return f.size }

// BlockSize returns the block size used to locate forks.
func (f *File) BlockSize() int64 { return f.blockSize }

// ForkStart returns the absolute offset of the fork beginning at firstBlock.
func (f *File) ForkStart(firstBlock int64) (int64, error) {
	if firstBlock < 0 {
		return 0, fmt.Errorf("rsrc: invalid start block %d", firstBlock)
	}
	off, ok := buf.MulOverflowSafe(firstBlock, f.blockSize)
	if !ok {
		return 0, fmt.Errorf("rsrc: start block %d overflows with block size %d", firstBlock, f.blockSize)
	}
	start, ok := buf.AddOverflowSafe(f.base, off)
	if !ok {
		return 0, fmt.Errorf("rsrc: start block %d overflows", firstBlock)
	}
	return start, nil
}

// LoadFork parses the fork that begins at firstBlock × block size. Like New
// it always returns a usable Fork, empty when parsing failed.
func (f *File) LoadFork(firstBlock int64, opts ...Option) (*Fork, error) {
	base := []Option{WithLogger(f.log), withOpenCheck(f.checkOpen)}
	if err := f.checkOpen(); err != nil {
		fork, _ := New(nil, 0, append(base, opts...)...)
		fork.err = newError(KindStreamNotOpen, "load", f.path, err)
		return fork, fork.err
	}
	start, err := f.ForkStart(firstBlock)
	if err != nil {
		fork, _ := New(nil, 0, append(base, opts...)...)
		fork.err = newError(KindBadAddress, "load", "", err)
		return fork, fork.err
	}
	return New(f.src, start, append(base, opts...)...)
}

func (f *File) checkOpen() error {
	if f.closed {
		return errFileClosed
	}
	return nil
}

// Close releases the file. Forks loaded from it report StreamNotOpen
// afterwards. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.release != nil {
		return f.release()
	}
	return nil
}
