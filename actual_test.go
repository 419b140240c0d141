package interfaces

import (
	"testing"

	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

func TestBindArgumentsKeywords(t *testing.T) {
	c, list := newTestChecker(Options{})
	formal := []*symbol.Symbol{
		dummy("a", symbol.Integer(), ast.IntentIn, 0),
		dummy("b", symbol.Real(), ast.IntentIn, 0),
	}
	ap := []*symbol.ActualArg{kw("b", realConst()), kw("A", intConst())}
	if err := c.BindArguments(&ap, formal, false, false, here); err != nil {
		t.Fatalf("bind: %v", err)
	}
	expectClean(t, "keyword reorder", list)
	if len(ap) != 2 {
		t.Fatalf("expected 2 bound arguments, got %d", len(ap))
	}
	if ap[0].Name != "A" || ap[1].Name != "b" {
		t.Errorf("expected arguments in dummy order [A b], got [%s %s]", ap[0].Name, ap[1].Name)
	}
}

func TestBindArgumentsOptional(t *testing.T) {
	formal := []*symbol.Symbol{
		dummy("x", symbol.Integer(), ast.IntentIn, 0),
		dummy("y", symbol.Real(), ast.IntentIn, symbol.AttrOptional),
	}
	c, list := newTestChecker(Options{})
	ap := args(intConst())
	if err := c.BindArguments(&ap, formal, false, false, here); err != nil {
		t.Fatalf("bind: %v", err)
	}
	expectClean(t, "optional omitted", list)
	if len(ap) != 2 {
		t.Fatalf("expected placeholder for omitted argument, got %d arguments", len(ap))
	}
	if ap[1].Expr != nil || ap[1].MissingArgType != symbol.TypeReal {
		t.Errorf("placeholder: expected missing REAL, got expr=%v type=%v", ap[1].Expr, ap[1].MissingArgType)
	}

	// Binding the already bound list again must give the same result.
	again := ap
	if err := c.BindArguments(&again, formal, false, false, here); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if len(again) != 2 || again[0] != ap[0] || again[1] != ap[1] {
		t.Error("rebinding changed the argument list")
	}
}

func TestBindArgumentsErrors(t *testing.T) {
	xy := []*symbol.Symbol{
		dummy("x", symbol.Integer(), ast.IntentIn, 0),
		dummy("y", symbol.Integer(), ast.IntentIn, 0),
	}
	x := xy[:1]
	realX := []*symbol.Symbol{dummy("x", symbol.Real(), ast.IntentIn, 0)}
	tests := []struct {
		name     string
		formal   []*symbol.Symbol
		actual   []*symbol.ActualArg
		expected string
	}{
		{"missing argument", xy, args(intConst()), "Missing actual argument for argument 'y'"},
		{"unknown keyword", xy, []*symbol.ActualArg{kw("z", intConst())}, "Keyword argument 'z' is not in the procedure"},
		{"duplicate keyword", xy, []*symbol.ActualArg{kw("x", intConst()), kw("X", intConst())},
			"Keyword argument 'X' is already associated with another actual argument"},
		{"positional after keyword", xy, []*symbol.ActualArg{kw("y", intConst()), {Expr: intConst()}},
			"More actual than formal arguments in procedure call"},
		{"too many", x, args(intConst(), intConst()), "More actual than formal arguments in procedure call"},
		{"type", realX, args(intConst()), "Type mismatch in argument 'x'; passed INTEGER(4) to REAL(4)"},
		{"placeholder for required", x, []*symbol.ActualArg{{}}, "Missing actual argument for argument 'x'"},
		{"unexpected alternate return", x, []*symbol.ActualArg{{Label: "10"}}, "Unexpected alternate return spec in subroutine call"},
		{"missing alternate return", []*symbol.Symbol{nil}, args(intConst()), "Missing alternate return spec in subroutine call"},
		{"omitted alternate return", []*symbol.Symbol{nil}, nil, "Missing alternate return spec in subroutine call"},
	}
	for _, tt := range tests {
		c, list := newTestChecker(Options{})
		ap := tt.actual
		orig := append([]*symbol.ActualArg(nil), ap...)
		if err := c.BindArguments(&ap, tt.formal, false, false, here); err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		expectDiag(t, tt.name, list, diag.SeverityError, tt.expected)
		if len(ap) != len(orig) {
			t.Errorf("%s: failed binding modified the argument list", tt.name)
			continue
		}
		for i := range ap {
			if ap[i] != orig[i] {
				t.Errorf("%s: failed binding modified argument %d", tt.name, i)
			}
		}
	}
}

func TestBindArgumentsSilent(t *testing.T) {
	c, list := newTestChecker(Options{})
	formal := []*symbol.Symbol{dummy("x", symbol.Real(), ast.IntentIn, 0)}
	ap := args(intConst())
	if err := c.BindArguments(&ap, formal, false, false, nil); err == nil {
		t.Error("expected type mismatch")
	}
	expectClean(t, "silent", list)
}

func TestBindArgumentsAlternateReturn(t *testing.T) {
	c, list := newTestChecker(Options{})
	formal := []*symbol.Symbol{dummy("x", symbol.Integer(), ast.IntentIn, 0), nil}
	ap := []*symbol.ActualArg{{Expr: intConst()}, {Label: "10"}}
	if err := c.BindArguments(&ap, formal, false, false, here); err != nil {
		t.Fatalf("bind: %v", err)
	}
	expectClean(t, "alternate return", list)
	if !ap[1].IsAltReturn() {
		t.Error("expected alternate return to stay bound")
	}
}

func TestBindArgumentsRank(t *testing.T) {
	arr := withShape(variable("a", symbol.Real(), 0), ast.Explicit(10))
	scalar := variable("s", symbol.Real(), 0)
	scalarDummy := []*symbol.Symbol{dummy("x", symbol.Real(), ast.IntentIn, 0)}
	arrayDummy := []*symbol.Symbol{withShape(dummy("x", symbol.Real(), ast.IntentIn, 0), ast.Explicit(3))}
	assumedDummy := []*symbol.Symbol{withShape(dummy("x", symbol.Real(), ast.IntentIn, 0), ast.Shaped(ast.ArraySpecAssumed, 1))}
	assumedRank := withShape(variable("r", symbol.Real(), 0), ast.Shaped(ast.ArraySpecAssumedRank, -1))
	tests := []struct {
		name      string
		formal    []*symbol.Symbol
		actual    *symbol.Expr
		elemental bool
		sev       diag.Severity
		// expected diagnostic, empty if the binding succeeds.
		expected string
	}{
		{"array to scalar", scalarDummy, symbol.Variable(arr), false, diag.SeverityError, "Rank mismatch in argument 'x' (scalar and rank-1)"},
		{"array to elemental scalar", scalarDummy, symbol.Variable(arr), true, 0, ""},
		{"scalar to array", arrayDummy, symbol.Variable(scalar), false, diag.SeverityError, "Rank mismatch in argument 'x' (rank-1 and scalar)"},
		{"scalar to assumed shape", assumedDummy, symbol.Variable(scalar), false, diag.SeverityError, "Rank mismatch in argument 'x' (rank-1 and scalar)"},
		{"assumed rank to scalar", scalarDummy, symbol.Variable(assumedRank), false, diag.SeverityError,
			"The assumed-rank array requires that the dummy argument 'x' has assumed-rank"},
		{"array to array", arrayDummy, symbol.Variable(arr), false, 0, ""},
		{"element sequence", arrayDummy, symbol.Variable(arr, symbol.ElementRef(ast.Int(1))), false, 0, ""},
		{"short element sequence", arrayDummy, symbol.Variable(arr, symbol.ElementRef(ast.Int(9))), false, diag.SeverityWarning,
			"Actual argument contains too few elements for dummy argument 'x' (2/3)"},
		{"scalar string to array", []*symbol.Symbol{withShape(dummy("x", symbol.Character(1), ast.IntentIn, 0), ast.Explicit(3))},
			symbol.StringConstant("abc"), false, 0, ""},
	}
	for _, tt := range tests {
		c, list := newTestChecker(Options{})
		ap := args(tt.actual)
		err := c.BindArguments(&ap, tt.formal, false, tt.elemental, here)
		if tt.expected == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			expectClean(t, tt.name, list)
			continue
		}
		if err == nil {
			t.Errorf("%s: expected failure", tt.name)
		}
		expectDiag(t, tt.name, list, tt.sev, tt.expected)
	}
}

func TestBindArgumentsRanksMustAgree(t *testing.T) {
	c, list := newTestChecker(Options{})
	arr := withShape(variable("a", symbol.Real(), 0), ast.Explicit(10))
	formal := []*symbol.Symbol{withShape(dummy("x", symbol.Real(), ast.IntentIn, 0), ast.Explicit(3))}
	ap := args(symbol.Variable(arr, symbol.ElementRef(ast.Int(1))))
	if err := c.BindArguments(&ap, formal, true, false, here); err == nil {
		t.Error("expected rank mismatch for element sequence when ranks must agree")
	}
	expectDiag(t, "ranks must agree", list, diag.SeverityError, "Rank mismatch in argument 'x' (rank-1 and scalar)")
}

func TestBindArgumentsAttributes(t *testing.T) {
	plain := variable("v", symbol.Integer(), 0)
	target := variable("t", symbol.Integer(), symbol.AttrTarget)
	ptr := variable("p", symbol.Integer(), symbol.AttrPointer)
	alloc := variable("al", symbol.Integer(), symbol.AttrAllocatable)
	intentIn := dummy("w", symbol.Integer(), ast.IntentIn, 0)
	charPtr := variable("cp", symbol.Character(3), symbol.AttrPointer)
	tests := []struct {
		name     string
		std      diag.Std
		f        *symbol.Symbol
		actual   *symbol.Expr
		sev      diag.Severity
		expected string
	}{
		{"null to nonpointer", 0, dummy("x", symbol.Integer(), ast.IntentIn, 0), symbol.Null(nil), diag.SeverityError,
			"Unexpected NULL() intrinsic to dummy 'x'"},
		{"null to optional", 0, dummy("x", symbol.Integer(), ast.IntentIn, symbol.AttrOptional), symbol.Null(nil), 0, ""},
		{"null to optional before F2008", diag.Fortran2003, dummy("x", symbol.Integer(), ast.IntentIn, symbol.AttrOptional), symbol.Null(nil),
			diag.SeverityError, "Fortran 2008: Null pointer to non-pointer dummy 'x'"},
		{"null to pointer", 0, dummy("p", symbol.Integer(), ast.IntentIn, symbol.AttrPointer), symbol.Null(nil), 0, ""},
		{"nonpointer to pointer", 0, dummy("p", symbol.Integer(), ast.IntentIn, symbol.AttrPointer), symbol.Variable(plain), diag.SeverityError,
			"Actual argument for 'p' must be a pointer"},
		{"pointer to pointer", 0, dummy("p", symbol.Integer(), ast.IntentInOut, symbol.AttrPointer), symbol.Variable(ptr), 0, ""},
		{"target to intent in pointer", 0, dummy("p", symbol.Integer(), ast.IntentIn, symbol.AttrPointer), symbol.Variable(target), 0, ""},
		{"target to intent in pointer before F2008", diag.Fortran2003, dummy("p", symbol.Integer(), ast.IntentIn, symbol.AttrPointer), symbol.Variable(target),
			diag.SeverityError, "Fortran 2008: Non-pointer actual argument to pointer dummy 'p'"},
		{"allocatable", 0, dummy("a", symbol.Integer(), ast.IntentInOut, symbol.AttrAllocatable), symbol.Variable(plain), diag.SeverityError,
			"Actual argument for 'a' must be ALLOCATABLE"},
		{"allocatable to allocatable", 0, dummy("a", symbol.Integer(), ast.IntentInOut, symbol.AttrAllocatable), symbol.Variable(alloc), 0, ""},
		{"constant to intent out", 0, dummy("x", symbol.Integer(), ast.IntentOut, 0), intConst(), diag.SeverityError,
			"Non-variable expression in variable definition context (actual argument to INTENT = OUT/INOUT)"},
		{"intent in dummy to intent out", 0, dummy("x", symbol.Integer(), ast.IntentOut, 0), symbol.Variable(intentIn), diag.SeverityError,
			"Dummy argument 'w' with INTENT(IN) in variable definition context (actual argument to INTENT = OUT/INOUT)"},
		{"variable to intent inout", 0, dummy("x", symbol.Integer(), ast.IntentInOut, 0), symbol.Variable(plain), 0, ""},
		{"character pointer length", 0, dummy("c", symbol.Character(5), ast.IntentIn, symbol.AttrPointer), symbol.Variable(charPtr), diag.SeverityWarning,
			"Character length mismatch (3/5) between actual argument and pointer or allocatable dummy argument 'c'"},
		{"short string", 0, dummy("c", symbol.Character(5), ast.IntentIn, 0), symbol.StringConstant("abc"), diag.SeverityWarning,
			"Character length of actual argument shorter than of dummy argument 'c' (3/5)"},
	}
	for _, tt := range tests {
		c, list := newTestChecker(Options{Std: tt.std})
		ap := args(tt.actual)
		err := c.BindArguments(&ap, []*symbol.Symbol{tt.f}, false, false, here)
		if tt.expected == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			expectClean(t, tt.name, list)
			continue
		}
		if err == nil {
			t.Errorf("%s: expected failure", tt.name)
		}
		expectDiag(t, tt.name, list, tt.sev, tt.expected)
	}
}

func TestBindArgumentsVectorSubscript(t *testing.T) {
	c, list := newTestChecker(Options{})
	arr := withShape(variable("a", symbol.Real(), 0), ast.Explicit(10))
	formal := []*symbol.Symbol{withShape(dummy("x", symbol.Real(), ast.IntentOut, 0), ast.Shaped(ast.ArraySpecAssumed, 1))}
	ap := args(symbol.Variable(arr, symbol.SectionRef(symbol.Vector())))
	if err := c.BindArguments(&ap, formal, false, false, here); err == nil {
		t.Error("expected vector subscript to be rejected")
	}
	expectDiag(t, "vector subscript", list, diag.SeverityError, "Array-section actual argument with vector subscripts is incompatible")
}

func TestBindArgumentsProcedure(t *testing.T) {
	procArg := func(sym *symbol.Symbol) *symbol.Expr {
		return &symbol.Expr{Kind: symbol.ExprVariable, TS: symbol.TypeSpec{Type: symbol.TypeProcedure}, Sym: sym}
	}
	newFormal := func() []*symbol.Symbol {
		f := function("f", symbol.Real())
		f.Attr |= symbol.AttrDummy
		return []*symbol.Symbol{f}
	}
	tests := []struct {
		name     string
		formal   []*symbol.Symbol
		actual   *symbol.Expr
		expected string
	}{
		{"matching function", newFormal(), procArg(function("g", symbol.Real())), ""},
		{"subroutine for function", newFormal(), procArg(subroutine("g")),
			"Interface mismatch in dummy procedure 'f': 'g' is not a function"},
		{"procedure to variable", []*symbol.Symbol{dummy("x", symbol.Real(), ast.IntentIn, 0)}, procArg(function("g", symbol.Real())),
			"Invalid procedure argument"},
		{"variable to procedure", newFormal(), symbol.Variable(variable("v", symbol.Real(), 0)),
			"Expected a procedure for argument 'f'"},
	}
	for _, tt := range tests {
		c, list := newTestChecker(Options{})
		ap := args(tt.actual)
		err := c.BindArguments(&ap, tt.formal, false, false, here)
		if tt.expected == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			expectClean(t, tt.name, list)
			continue
		}
		if err == nil {
			t.Errorf("%s: expected failure", tt.name)
		}
		expectDiag(t, tt.name, list, diag.SeverityError, tt.expected)
	}
}
