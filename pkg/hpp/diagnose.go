package hpp

import (
	"fmt"
	"strings"

	"github.com/hpp-embedded/hpp/internal/structlayout"
)

// Severity classifies how serious a diagnostic finding is.
type Severity int

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "info"
	}
}

// Diagnostic describes one issue Diagnose found in the store.
type Diagnostic struct {
	Severity Severity
	Key      string
	Message  string
}

// DiagnosticReport collects every Diagnostic found during one Diagnose
// call.
type DiagnosticReport struct {
	Findings []Diagnostic
}

// Add appends a finding to the report.
func (r *DiagnosticReport) Add(d Diagnostic) { r.Findings = append(r.Findings, d) }

// HasErrors reports whether any finding is SevError or worse.
func (r *DiagnosticReport) HasErrors() bool {
	for _, d := range r.Findings {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// FormatText renders the report as one line per finding, in the order
// the findings were added, for a CLI or log sink. Findings are not
// sorted by severity.
func (r *DiagnosticReport) FormatText() string {
	if len(r.Findings) == 0 {
		return "no issues found"
	}
	var b strings.Builder
	for _, d := range r.Findings {
		fmt.Fprintf(&b, "[%s] %s: %s\n", d.Severity, d.Key, d.Message)
	}
	return b.String()
}

// Diagnose walks the store looking for structural issues a host
// integrator would want surfaced before shipping a script to a fleet of
// devices: struct values whose header fails to parse, var/array/string
// references pointing at a missing key, and %04x: scratch keys left
// behind by a run that never reached its frame cleanup.
func (e *Engine) Diagnose() *DiagnosticReport {
	report := &DiagnosticReport{}

	for _, entry := range e.store.Entries() {
		// Frame 0000 holds the top-level script's locals, which are kept
		// after every run, so only deeper frames count as leftovers.
		if isScratchKey(entry.Key) && !strings.HasPrefix(entry.Key, "0000:") {
			report.Add(Diagnostic{
				Severity: SevWarning,
				Key:      entry.Key,
				Message:  "scratch frame key outlived its call (possible aborted run)",
			})
			continue
		}

		if !looksLikeStructHeader(entry.Value) {
			continue
		}
		hdr, ok := structlayout.ParseHeader(entry.Value)
		if !ok {
			report.Add(Diagnostic{
				Severity: SevError,
				Key:      entry.Key,
				Message:  "embedded null byte but header failed to parse",
			})
			continue
		}
		e.checkRefMembers(report, entry.Key, entry.Value, hdr)
	}

	return report
}

// looksLikeStructHeader is the same cheap pre-check ParseHeader itself
// starts with: a plain textual or numeric value never contains a null
// byte, so only candidates worth the full parse attempt are considered.
func looksLikeStructHeader(raw []byte) bool {
	for _, b := range raw {
		if b == 0 {
			return true
		}
	}
	return false
}

// isScratchKey reports whether key carries the interpreter's %04x: local
// frame prefix.
func isScratchKey(key string) bool {
	colon := strings.IndexByte(key, ':')
	if colon != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := key[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// checkRefMembers verifies every var/array/string member of every record
// in raw points at a key that currently exists in the store.
func (e *Engine) checkRefMembers(report *DiagnosticReport, key string, raw []byte, hdr *structlayout.Header) {
	records := hdr.RecordCount(len(raw), false)
	for r := 0; r < records; r++ {
		for _, m := range hdr.Members {
			if !m.Type.IsRef() {
				continue
			}
			off := hdr.HeaderLen() + r*hdr.Stride + m.Offset
			width := structlayout.Sizeof(m.Type)
			if off+width > len(raw) {
				continue
			}
			name := structlayout.ReadRefName(raw[off : off+width])
			if name == "" {
				continue // never written; not a dangling reference
			}
			if _, ok := e.store.Get(name); !ok {
				report.Add(Diagnostic{
					Severity: SevError,
					Key:      key,
					Message:  fmt.Sprintf("member %q (record %d) references missing key %q", m.Name, r, name),
				})
			}
		}
	}
}
