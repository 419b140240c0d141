// Package interfaces checks Fortran procedure interfaces: generic and
// operator interface sets, the binding of actual arguments to dummy
// arguments at call sites, resolution of generic references and operators
// to specific procedures, and the override rules of type-bound procedures.
//
// All checks run against the symbol model of package symbol. Diagnostics go
// to a [diag.Sink]. Entry points taking a locus only report when the locus is
// not nil; with a nil locus they probe silently and just return the verdict.
package interfaces

import (
	"errors"
	"fmt"

	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

var errNoNamespace = errors.New("no namespace for implicit typing")

// Options control optional warnings and the language standard in force.
type Options struct {
	// Std is the set of accepted standards. The zero value accepts all.
	Std diag.Std
	// WarnSurprising warns about constructs that are valid but likely wrong.
	WarnSurprising bool
	// WarnAliasing warns when the same variable is passed to two dummy
	// arguments with conflicting intents.
	WarnAliasing bool
	// WarnImplicitInterface warns about calls through an implicit interface.
	WarnImplicitInterface bool
	// WarnImplicitProcedure warns about calls to procedures never declared.
	WarnImplicitProcedure bool
}

// Checker holds the state shared by the interface checks.
type Checker struct {
	Options
	// Sink receives diagnostics. Nil discards them.
	Sink diag.Sink
	// NS is the namespace the statements being checked belong to.
	NS *symbol.Namespace
	// Compare decides the relation of two specification expressions.
	// Defaults to [ast.Compare].
	Compare func(a, b ast.Expression) ast.Comparison
	// Resolve re-resolves an expression rewritten by [Checker.ExtendExpr].
	// A nil Resolve accepts every rewrite.
	Resolve func(e *symbol.Expr) error

	nerrors int // Errors reported so far.
}

// NewChecker returns a checker for statements in ns reporting to sink. A
// nil sink discards diagnostics.
func NewChecker(ns *symbol.Namespace, sink diag.Sink, opts Options) *Checker {
	if sink == nil {
		sink = diag.Discard
	}
	return &Checker{Options: opts, Sink: sink, NS: ns}
}

func (c *Checker) report(d *diag.Error) {
	if d.Severity != diag.SeverityWarning {
		c.nerrors++
	}
	if c.Sink != nil {
		c.Sink.Report(d)
	}
}

// errorCount returns the number of errors reported by c.
func (c *Checker) errorCount() int { return c.nerrors }

// errorf returns an error diagnostic located at at. It is reported only if at is not nil.
func (c *Checker) errorf(at *diag.Locus, kind diag.Kind, format string, args ...any) *diag.Error {
	d := diag.Errorf(kind, format, args...).At(at)
	if at != nil {
		c.report(d)
	}
	return d
}

// warnf is like errorf with warning severity. The returned value still
// signals a failed check.
func (c *Checker) warnf(at *diag.Locus, kind diag.Kind, format string, args ...any) *diag.Error {
	d := diag.Errorf(kind, format, args...).At(at).AsWarning()
	if at != nil {
		c.report(d)
	}
	return d
}

// NotifyStd reports whether a feature of standard std is accepted. If it is
// not, an error prefixed with the standard name is reported at where (when
// where is not nil).
func (c *Checker) NotifyStd(std diag.Std, where *diag.Locus, format string, args ...any) bool {
	if c.Std.Allows(std) {
		return true
	}
	c.errorf(where, diag.KindStandard, "%s: %s", std, fmt.Sprintf(format, args...))
	return false
}

func (c *Checker) compare(a, b ast.Expression) ast.Comparison {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return ast.Compare(a, b)
}

// namespace returns the namespace used for implicit typing of sym.
func (c *Checker) namespace(sym *symbol.Symbol) *symbol.Namespace {
	if sym != nil && sym.NS != nil {
		return sym.NS
	}
	return c.NS
}

// pure reports whether the statements being checked are inside a PURE procedure.
func (c *Checker) pure() bool {
	return c.NS != nil && c.NS.Pure()
}

// exprAt returns the locus of e for reporting, or nil when where is nil.
func exprAt(where *diag.Locus, e *symbol.Expr) *diag.Locus {
	if where == nil || e == nil || e.Where == (diag.Locus{}) {
		return where
	}
	return &e.Where
}

func sameName(a, b string) bool { return ast.NormalizeName(a) == ast.NormalizeName(b) }

func symName(s *symbol.Symbol) string {
	if s == nil {
		return ""
	}
	return s.Name()
}

// asError converts a possibly nil diagnostic to an error without creating
// a non-nil interface holding a nil pointer.
func asError(d *diag.Error) error {
	if d == nil {
		return nil
	}
	return d
}
