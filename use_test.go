package interfaces

import (
	"testing"

	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

func implicitProc(name string, attr symbol.Attr) *symbol.Symbol {
	s := symbol.NewSymbol(name, symbol.FlavorProcedure)
	s.Attr = attr | symbol.AttrExternal
	return s
}

func TestProcedureUseImplicit(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		sym    *symbol.Symbol
		actual []*symbol.ActualArg
		sev    diag.Severity
		// expected diagnostic, empty if the call is clean.
		expected string
	}{
		{"plain call", Options{}, implicitProc("ext", 0), args(intConst()), 0, ""},
		{"warn implicit interface", Options{WarnImplicitInterface: true}, implicitProc("ext", 0), args(intConst()),
			diag.SeverityWarning, "Procedure 'ext' called with an implicit interface"},
		{"warn undeclared", Options{WarnImplicitProcedure: true}, implicitProc("ext", 0), nil,
			diag.SeverityWarning, "Procedure 'ext' called is not explicitly declared"},
		{"keyword", Options{}, implicitProc("ext", 0), []*symbol.ActualArg{kw("x", intConst())},
			diag.SeverityError, "Keyword argument requires explicit interface for procedure 'ext'"},
		{"pointer", Options{}, implicitProc("ext", symbol.AttrPointer), nil,
			diag.SeverityError, "The pointer object 'ext' must have an explicit function interface or be declared as array"},
		{"null without mold", Options{}, implicitProc("ext", 0), args(symbol.Null(nil)),
			diag.SeverityError, "MOLD argument to NULL required"},
		{"assumed type", Options{}, implicitProc("ext", 0),
			args(symbol.Variable(dummy("a", symbol.TypeSpec{Type: symbol.TypeAssumed}, ast.IntentIn, 0))),
			diag.SeverityError, "Assumed-type argument a requires an explicit interface"},
		{"assumed rank", Options{}, implicitProc("ext", 0),
			args(symbol.Variable(withShape(dummy("a", symbol.Real(), ast.IntentIn, 0), ast.Shaped(ast.ArraySpecAssumedRank, -1)))),
			diag.SeverityError, "Assumed-rank argument requires an explicit interface"},
	}
	for _, tt := range tests {
		c, list := newTestChecker(tt.opts)
		ap := tt.actual
		err := c.ProcedureUse(tt.sym, &ap, here)
		if tt.expected == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			expectClean(t, tt.name, list)
			continue
		}
		if tt.sev == diag.SeverityError && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if tt.sev == diag.SeverityWarning && err != nil {
			t.Errorf("%s: warning must not fail the call, got %v", tt.name, err)
		}
		expectDiag(t, tt.name, list, tt.sev, tt.expected)
	}
}

func TestProcedureUseExplicit(t *testing.T) {
	c, list := newTestChecker(Options{})
	f := function("f", symbol.Real(),
		dummy("x", symbol.Integer(), ast.IntentIn, 0),
		dummy("y", symbol.Real(), ast.IntentIn, symbol.AttrOptional))
	ap := []*symbol.ActualArg{kw("x", intConst())}
	if err := c.ProcedureUse(f, &ap, here); err != nil {
		t.Fatalf("call: %v", err)
	}
	expectClean(t, "explicit call", list)
	if len(ap) != 2 {
		t.Errorf("expected argument list bound to 2 dummies, got %d", len(ap))
	}

	ap = args(realConst())
	if err := c.ProcedureUse(f, &ap, here); err == nil {
		t.Error("expected type mismatch")
	}
	expectDiag(t, "explicit mismatch", list, diag.SeverityError, "Type mismatch in argument 'x'")
}

func TestProcedureUsePure(t *testing.T) {
	host := subroutine("host")
	host.Attr |= symbol.AttrPure
	ns := symbol.NewNamespace(nil)
	ns.Proc = host
	c, list := newTestChecker(Options{})
	c.NS = ns

	s := subroutine("s", dummy("p", symbol.Integer(), ast.IntentIn, symbol.AttrPointer))
	shared := variable("shared", symbol.Integer(), symbol.AttrPointer|symbol.AttrUseAssoc)
	ap := args(symbol.Variable(shared))
	if err := c.ProcedureUse(s, &ap, here); err == nil {
		t.Error("expected PURE violation")
	}
	expectDiag(t, "pure pointer", list, diag.SeverityError,
		"Procedure argument is local to a PURE procedure and has the POINTER attribute")
}

func TestProcedureUseAliasing(t *testing.T) {
	s := subroutine("s",
		dummy("a", symbol.Integer(), ast.IntentIn, 0),
		dummy("b", symbol.Integer(), ast.IntentOut, 0))
	inIn := subroutine("t",
		dummy("a", symbol.Integer(), ast.IntentIn, 0),
		dummy("b", symbol.Integer(), ast.IntentIn, 0))
	x := variable("x", symbol.Integer(), 0)
	y := variable("y", symbol.Integer(), 0)
	tests := []struct {
		name   string
		sym    *symbol.Symbol
		actual []*symbol.ActualArg
		warn   bool
	}{
		{"same variable", s, args(symbol.Variable(x), symbol.Variable(x)), true},
		{"different variables", s, args(symbol.Variable(x), symbol.Variable(y)), false},
		{"both intent in", inIn, args(symbol.Variable(x), symbol.Variable(x)), false},
	}
	for _, tt := range tests {
		c, list := newTestChecker(Options{WarnAliasing: true})
		ap := tt.actual
		if err := c.ProcedureUse(tt.sym, &ap, here); err != nil {
			t.Errorf("%s: aliasing must not fail the call, got %v", tt.name, err)
		}
		if !tt.warn {
			expectClean(t, tt.name, list)
			continue
		}
		expectDiag(t, tt.name, list, diag.SeverityWarning,
			"Same actual argument associated with INTENT(IN) argument 'a' and INTENT(OUT) argument 'b'")
	}
}

func TestCheckSomeAliasingOrder(t *testing.T) {
	c, list := newTestChecker(Options{})
	formal := []*symbol.Symbol{
		dummy("a", symbol.Integer(), ast.IntentOut, 0),
		dummy("b", symbol.Integer(), ast.IntentIn, 0),
		dummy("c", symbol.Integer(), ast.IntentOut, 0),
	}
	x := variable("x", symbol.Integer(), 0)
	y := variable("y", symbol.Integer(), 0)
	actual := args(symbol.Variable(x), symbol.Variable(y), symbol.Variable(x))
	if c.checkSomeAliasing(formal, actual, here) {
		t.Error("expected aliasing of a and c")
	}
	expectDiag(t, "out twice", list, diag.SeverityWarning,
		"Same actual argument associated with INTENT(OUT) argument 'a' and INTENT(OUT) argument 'c'")
}

func TestArglistMatchesSymbol(t *testing.T) {
	arr := withShape(variable("a", symbol.Real(), 0), ast.Explicit(10))
	elemental := subroutine("e", dummy("x", symbol.Real(), ast.IntentIn, 0))
	elemental.Attr |= symbol.AttrElemental
	tests := []struct {
		name     string
		sym      *symbol.Symbol
		actual   []*symbol.ActualArg
		expected bool
	}{
		{"match", subroutine("s", dummy("x", symbol.Real(), ast.IntentIn, 0)), args(realConst()), true},
		{"type mismatch", subroutine("s", dummy("x", symbol.Real(), ast.IntentIn, 0)), args(intConst()), false},
		{"elemental with array", elemental, args(symbol.Variable(arr)), true},
		{"element sequence needs equal rank", subroutine("s", withShape(dummy("x", symbol.Real(), ast.IntentIn, 0), ast.Explicit(3))),
			args(symbol.Variable(arr, symbol.ElementRef(ast.Int(1)))), false},
	}
	for _, tt := range tests {
		c, list := newTestChecker(Options{})
		ap := tt.actual
		if got := c.ArglistMatchesSymbol(&ap, tt.sym); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
		expectClean(t, tt.name, list)
	}
}

func TestPPCUse(t *testing.T) {
	implicit := &symbol.Component{Name: "cb", Attr: symbol.AttrProcPointer}
	iface := subroutine("iface", dummy("x", symbol.Integer(), ast.IntentIn, 0))
	explicit := &symbol.Component{Name: "cb", Attr: symbol.AttrProcPointer, TS: symbol.TypeSpec{Type: symbol.TypeProcedure, Interface: iface}}
	tests := []struct {
		name     string
		opts     Options
		comp     *symbol.Component
		actual   []*symbol.ActualArg
		sev      diag.Severity
		expected string
	}{
		{"implicit", Options{}, implicit, args(intConst()), 0, ""},
		{"implicit warning", Options{WarnImplicitInterface: true}, implicit, args(intConst()),
			diag.SeverityWarning, "Procedure pointer component 'cb' called with an implicit interface"},
		{"implicit keyword", Options{}, implicit, []*symbol.ActualArg{kw("x", intConst())},
			diag.SeverityError, "Keyword argument requires explicit interface for procedure pointer component 'cb'"},
		{"explicit", Options{}, explicit, []*symbol.ActualArg{kw("x", intConst())}, 0, ""},
		{"explicit mismatch", Options{}, explicit, args(realConst()),
			diag.SeverityError, "Type mismatch in argument 'x'"},
	}
	for _, tt := range tests {
		c, list := newTestChecker(tt.opts)
		ap := tt.actual
		err := c.PPCUse(tt.comp, &ap, here)
		if tt.expected == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			expectClean(t, tt.name, list)
			continue
		}
		if (tt.sev == diag.SeverityError) != (err != nil) {
			t.Errorf("%s: expected failure %v, got %v", tt.name, tt.sev == diag.SeverityError, err)
		}
		expectDiag(t, tt.name, list, tt.sev, tt.expected)
	}
}
