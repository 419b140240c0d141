package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
	"github.com/soypat/go-fortran-interfaces/token"
)

// operand summarizes a dummy argument of an operator interface.
type operand struct {
	typ    symbol.BaseType
	intent ast.IntentType
	rank   int
	kind   int
}

// CheckOperatorInterface checks that sym may extend the intrinsic operator
// or assignment op. op is a table slot, so unary plus and minus are given as
// [token.Plus] and [token.Minus]. Errors are reported at the declaration of
// sym, except a conflict with the intrinsic meaning which is reported at
// opWhere.
func (c *Checker) CheckOperatorInterface(sym *symbol.Symbol, op token.Token, opWhere diag.Locus) bool {
	if sym == nil {
		diag.Internalf(nil, "operator interface without symbol")
	}
	where := &sym.DeclaredAt
	dummies := sym.DummyArgs()
	args := [2]operand{{rank: -1, kind: -1}, {rank: -1, kind: -1}}
	for i, f := range dummies {
		if f == nil {
			c.errorf(where, diag.KindInterface, "Alternate return cannot appear in operator interface")
			return false
		}
		if i < 2 {
			args[i] = operand{typ: f.TS.Type, intent: f.Intent, rank: f.Rank(), kind: f.TS.Kind}
		}
	}
	n := len(dummies)
	op = op.FoldUnary()
	unary := op == token.Plus || op == token.Minus || op == token.NOT
	if n == 0 || n > 2 || (n == 1 && !unary) || (n == 2 && op == token.NOT) {
		if op == token.Equals {
			c.errorf(where, diag.KindInterface, "Assignment operator interface must have two arguments")
		} else {
			c.errorf(where, diag.KindInterface, "Operator interface has the wrong number of arguments")
		}
		return false
	}
	t1, t2 := args[0], args[1]

	if op == token.Equals {
		if !sym.IsSubroutine() {
			c.errorf(where, diag.KindInterface, "Assignment operator interface must be a SUBROUTINE")
			return false
		}
		// F2003 12.3.2.1.2: the assignment must not be an intrinsic one.
		lhs, rhs := dummies[0].TS, dummies[1].TS
		if !isDerivedOrClass(lhs.Type) && (t2.rank == 0 || t1.rank == t2.rank) &&
			(lhs.Type == rhs.Type || (lhs.IsNumeric() && rhs.IsNumeric())) {
			c.errorf(where, diag.KindInterface, "Assignment operator interface must not redefine an INTRINSIC type assignment")
			return false
		}
		if t1.intent != ast.IntentOut && t1.intent != ast.IntentInOut {
			c.errorf(where, diag.KindInterface, "First argument of defined assignment must be INTENT(OUT) or INTENT(INOUT)")
			return false
		}
		if t2.intent != ast.IntentIn {
			c.errorf(where, diag.KindInterface, "Second argument of defined assignment must be INTENT(IN)")
			return false
		}
	} else {
		if !sym.IsFunction() {
			c.errorf(where, diag.KindInterface, "Intrinsic operator interface must be a FUNCTION")
			return false
		}
		if t1.intent != ast.IntentIn {
			c.errorf(where, diag.KindInterface, "First argument of operator interface must be INTENT(IN)")
			return false
		}
		if n == 2 && t2.intent != ast.IntentIn {
			c.errorf(where, diag.KindInterface, "Second argument of operator interface must be INTENT(IN)")
			return false
		}
	}

	if conflictsWithIntrinsic(op, n, t1, t2) {
		c.errorf(&opWhere, diag.KindInterface, "Operator interface conflicts with intrinsic interface")
		return false
	}
	return true
}

// conflictsWithIntrinsic reports whether an operator with the given operands
// would replace an intrinsic operation (F2003 7.1.2, 7.1.3 and 12.3.2.1.1).
func conflictsWithIntrinsic(op token.Token, n int, a, b operand) bool {
	if op == token.NOT {
		return a.typ == symbol.TypeLogical
	}
	if n == 1 && (op == token.Plus || op == token.Minus) {
		return a.typ.IsNumeric()
	}
	// Intrinsic character operations need operands of the same kind.
	if a.typ == symbol.TypeCharacter && b.typ == symbol.TypeCharacter && a.kind != b.kind {
		return false
	}
	// Intrinsic operations are elemental, so only differing nonzero ranks are safe.
	if a.rank != b.rank && a.rank != 0 && b.rank != 0 {
		return false
	}
	bothChar := a.typ == symbol.TypeCharacter && b.typ == symbol.TypeCharacter
	switch op.Canonical() {
	case token.EqEq, token.NotEquals:
		return bothChar || (a.typ.IsNumeric() && b.typ.IsNumeric())
	case token.Plus, token.Minus, token.Asterisk, token.Slash, token.DoubleStar:
		return a.typ.IsNumeric() && b.typ.IsNumeric()
	case token.Greater, token.GreaterEq, token.Less, token.LessEq:
		intOrReal := func(t symbol.BaseType) bool { return t == symbol.TypeInteger || t == symbol.TypeReal }
		return bothChar || (intOrReal(a.typ) && intOrReal(b.typ))
	case token.StringConcat:
		return bothChar
	case token.AND, token.OR, token.EQV, token.NEQV:
		return a.typ == symbol.TypeLogical && b.typ == symbol.TypeLogical
	}
	return false
}
