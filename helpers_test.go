package interfaces

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

var here = &diag.Locus{Source: "test.f90", Line: 1, Col: 1}

func newTestChecker(opts Options) (*Checker, *diag.List) {
	var list diag.List
	return NewChecker(nil, &list, opts), &list
}

// dummy returns a scalar dummy argument.
func dummy(name string, ts symbol.TypeSpec, intent ast.IntentType, attr symbol.Attr) *symbol.Symbol {
	s := symbol.NewSymbol(name, symbol.FlavorVariable)
	s.TS = ts
	s.Intent = intent
	s.Attr = attr | symbol.AttrDummy
	return s
}

func withShape(s *symbol.Symbol, as *ast.ArraySpec) *symbol.Symbol {
	s.AS = as
	if as != nil && as.Rank != 0 {
		s.Attr |= symbol.AttrDimension
	}
	return s
}

func variable(name string, ts symbol.TypeSpec, attr symbol.Attr) *symbol.Symbol {
	s := symbol.NewSymbol(name, symbol.FlavorVariable)
	s.TS = ts
	s.Attr = attr
	return s
}

func function(name string, result symbol.TypeSpec, formal ...*symbol.Symbol) *symbol.Symbol {
	s := symbol.NewSymbol(name, symbol.FlavorProcedure)
	s.TS = result
	s.Attr = symbol.AttrFunction
	s.IfSource = symbol.IfSourceDecl
	s.Proc = symbol.ProcModule
	s.Formal = formal
	return s
}

func subroutine(name string, formal ...*symbol.Symbol) *symbol.Symbol {
	s := symbol.NewSymbol(name, symbol.FlavorProcedure)
	s.Attr = symbol.AttrSubroutine
	s.IfSource = symbol.IfSourceDecl
	s.Proc = symbol.ProcModule
	s.Formal = formal
	return s
}

func args(exprs ...*symbol.Expr) []*symbol.ActualArg {
	list := make([]*symbol.ActualArg, len(exprs))
	for i, e := range exprs {
		list[i] = &symbol.ActualArg{Expr: e}
	}
	return list
}

func kw(name string, e *symbol.Expr) *symbol.ActualArg {
	return &symbol.ActualArg{Name: name, Expr: e}
}

func interfaceList(syms ...*symbol.Symbol) []*symbol.Interface {
	list := make([]*symbol.Interface, len(syms))
	for i, s := range syms {
		list[i] = &symbol.Interface{Sym: s, Where: s.DeclaredAt}
	}
	return list
}

func intConst() *symbol.Expr  { return symbol.Constant(symbol.Integer()) }
func realConst() *symbol.Expr { return symbol.Constant(symbol.Real()) }

// expectDiag fails unless the list holds exactly one diagnostic of the
// given severity containing msg.
func expectDiag(t *testing.T, name string, list *diag.List, sev diag.Severity, msg string) {
	t.Helper()
	all := list.All()
	if len(all) != 1 {
		t.Errorf("%s: expected one diagnostic %q, got %d: %s", name, msg, len(all), spew.Sdump(all))
		return
	}
	if all[0].Severity != sev || !strings.Contains(all[0].Msg, msg) {
		t.Errorf("%s: expected %v %q, got %v %q", name, sev, msg, all[0].Severity, all[0].Msg)
	}
}

func expectClean(t *testing.T, name string, list *diag.List) {
	t.Helper()
	if all := list.All(); len(all) != 0 {
		t.Errorf("%s: expected no diagnostics, got %s", name, spew.Sdump(all))
	}
}
