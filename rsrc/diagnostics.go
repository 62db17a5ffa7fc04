package rsrc

import "fmt"

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	SevInfo    Severity = iota // informational
	SevWarning                 // data was returned but may not be what the caller expects
	SevError                   // the operation failed
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a non-fatal finding recorded while serving a query.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Kind     ErrKind  `json:"kind"`
	Op       string   `json:"op"`
	Offset   int64    `json:"offset"` // absolute address of the structure involved
	Type     TypeCode `json:"type"`
	Key      Key      `json:"-"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (at %#x)", d.Severity, d.Message, d.Offset)
}

// report keeps d when diagnostics are enabled.
func (f *Fork) report(d Diagnostic) {
	if f.collect {
		f.diags = append(f.diags, d)
	}
}

// Diagnostics returns the findings collected so far. It is always empty
// unless the fork was created WithDiagnostics.
func (f *Fork) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(f.diags))
	copy(out, f.diags)
	return out
}

// ClearDiagnostics drops collected findings.
func (f *Fork) ClearDiagnostics() {
	f.diags = f.diags[:0]
}
