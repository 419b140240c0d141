// Package diag carries the diagnostics produced while checking interfaces:
// source loci, severities, located error values and the sinks that receive them.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

// Locus is a position in Fortran source.
type Locus struct {
	Source string
	Line   int
	Col    int
	Pos    int
}

func (l Locus) String() string {
	return string(l.AppendString(nil))
}

// AppendString appends the "source:line:col" representation of l to b.
func (l Locus) AppendString(b []byte) []byte {
	if b == nil {
		b = make([]byte, 0, len(l.Source)+3+3)
	}
	b = append(b, l.Source...)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(l.Line), 10)
	if l.Col > 0 {
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(l.Col), 10)
	}
	return b
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Kind classifies what rule family produced a diagnostic.
type Kind int

const (
	KindMismatch     Kind = iota // Arity, keyword, type, rank or attribute mismatch.
	KindAmbiguity                // Ambiguous generic or operator set, NULL() without MOLD.
	KindOverride                 // Type-bound override rule violation.
	KindInterface                // Malformed interface block or operator interface.
	KindDefinability             // Actual argument not definable.
	KindStandard                 // Feature not allowed by the selected standard.
)

func (k Kind) String() string {
	switch k {
	case KindMismatch:
		return "mismatch"
	case KindAmbiguity:
		return "ambiguity"
	case KindOverride:
		return "override"
	case KindInterface:
		return "interface"
	case KindDefinability:
		return "definability"
	case KindStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// Error is a located diagnostic. It doubles as the error value returned by
// decision functions so the same verdict can be reported or silently dropped.
type Error struct {
	Severity Severity
	Kind     Kind
	Where    Locus
	// HasLocus is false for verdicts computed without a source position,
	// such as characteristic mismatches that are wrapped by the caller.
	HasLocus bool
	Msg      string
}

func (e *Error) Error() string {
	var dst []byte
	if e.HasLocus {
		dst = e.Where.AppendString(dst)
		dst = append(dst, ':', ' ')
	}
	dst = append(dst, e.Msg...)
	return string(dst)
}

// Errorf returns an error-severity diagnostic without a locus.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Severity: SeverityError, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At returns a copy of e located at where. A nil where leaves e unlocated.
func (e *Error) At(where *Locus) *Error {
	cp := *e
	if where != nil {
		cp.Where = *where
		cp.HasLocus = true
	}
	return &cp
}

// AsWarning returns a copy of e with warning severity. The verdict is
// still a failure; only the reported severity changes.
func (e *Error) AsWarning() *Error {
	cp := *e
	cp.Severity = SeverityWarning
	return &cp
}

// Sink receives diagnostics.
type Sink interface {
	Report(d *Error)
}

// Discard is a Sink that drops every diagnostic.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(*Error) {}

// List is a Sink that keeps every diagnostic in report order.
type List struct {
	diags    []*Error
	nErrors  int
	nWarning int
}

// Report implements [Sink].
func (l *List) Report(d *Error) {
	if d.Severity == SeverityWarning {
		l.nWarning++
	} else {
		l.nErrors++
	}
	l.diags = append(l.diags, d)
}

// All returns all diagnostics in report order.
func (l *List) All() []*Error { return l.diags }

// ErrorCount returns the number of error and fatal diagnostics.
func (l *List) ErrorCount() int { return l.nErrors }

// WarningCount returns the number of warnings.
func (l *List) WarningCount() int { return l.nWarning }

// Errors returns the error and fatal diagnostics.
func (l *List) Errors() []*Error { return l.filter(func(s Severity) bool { return s != SeverityWarning }) }

// Warnings returns the warning diagnostics.
func (l *List) Warnings() []*Error { return l.filter(func(s Severity) bool { return s == SeverityWarning }) }

func (l *List) filter(keep func(Severity) bool) []*Error {
	var out []*Error
	for _, d := range l.diags {
		if keep(d.Severity) {
			out = append(out, d)
		}
	}
	return out
}

// Err joins all error diagnostics into a single error, or returns nil if there were none.
func (l *List) Err() error {
	var errs []error
	for _, d := range l.Errors() {
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}

// Reset clears the list, reusing its memory.
func (l *List) Reset() {
	clear(l.diags)
	*l = List{diags: l.diags[:0]}
}

// Writer is a Sink that prints each diagnostic as "source:line:col: severity: message".
type Writer struct {
	W io.Writer
	// MinSeverity filters out diagnostics below this severity.
	MinSeverity Severity
}

// Report implements [Sink].
func (w *Writer) Report(d *Error) {
	if d.Severity < w.MinSeverity {
		return
	}
	var buf []byte
	if d.HasLocus {
		buf = d.Where.AppendString(buf)
		buf = append(buf, ':', ' ')
	}
	buf = append(buf, d.Severity.String()...)
	buf = append(buf, ':', ' ')
	buf = append(buf, d.Msg...)
	buf = append(buf, '\n')
	w.W.Write(buf)
}

// InternalError is a programmer error: an invariant the checker relies on was broken.
// It is raised with panic and must not be recovered as a user diagnostic.
type InternalError struct {
	Msg string
}

func (ie *InternalError) Error() string { return "internal compiler error: " + ie.Msg }

// Internalf panics with an [*InternalError]. If culprit is not nil its
// structure is dumped into the message.
func Internalf(culprit any, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if culprit != nil {
		msg += "\n" + spew.Sdump(culprit)
	}
	panic(&InternalError{Msg: msg})
}
