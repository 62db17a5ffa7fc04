package rsrc

import (
	"io"
	"log/slog"
)

// Option configures a Fork.
type Option func(*Fork)

// WithLogger routes the fork's debug and warning output to l.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fork) {
		if l != nil {
			f.log = l
		}
	}
}

// WithIndex makes the fork build an in-memory lookup table on first use
// instead of rescanning the map for every query. Results are identical.
func WithIndex() Option {
	return func(f *Fork) {
		f.useIndex = true
	}
}

// WithDiagnostics keeps non-fatal findings, such as size mismatches on typed
// reads, for retrieval through Diagnostics.
func WithDiagnostics() Option {
	return func(f *Fork) {
		f.collect = true
	}
}

// withHostOrder pretends the process runs with the given byte order. Results
// must not change; only the internal byte swap does.
func withHostOrder(o hostOrder) Option {
	return func(f *Fork) {
		f.host = o
	}
}

// withOpenCheck lets an owning File veto access once it has been closed.
func withOpenCheck(check func() error) Option {
	return func(f *Fork) {
		f.openCheck = check
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
