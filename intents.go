package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
	"golang.org/x/exp/slices"
)

// pointerDummy reports whether a dummy argument is a data pointer. For
// CLASS dummies the pointer attribute is that of the polymorphic entity.
func pointerDummy(f *symbol.Symbol) bool {
	return f.Attr.HasAny(symbol.AttrPointer)
}

// checkIntents checks the actual arguments bound to formal against the
// restrictions of PURE procedures and of coindexed objects. actual must be
// in formal order with one entry per dummy, as left by a successful binding.
// Diagnostics are reported at the argument; where nil suppresses them.
func (c *Checker) checkIntents(formal []*symbol.Symbol, actual []*symbol.ActualArg, where *diag.Locus) *diag.Error {
	if len(formal) != len(actual) {
		diag.Internalf(actual, "checkIntents: %d dummies and %d actual arguments", len(formal), len(actual))
	}
	pure := c.pure()
	for i, a := range actual {
		e := a.Expr
		if e == nil || e.Kind != symbol.ExprVariable {
			continue
		}
		f := formal[i]
		at := exprAt(where, e)
		if pure && c.NS.ImpureVariable(e.Sym) && pointerDummy(f) {
			return c.errorf(at, diag.KindDefinability,
				"Procedure argument is local to a PURE procedure and has the POINTER attribute")
		}
		// F2008 C1283.
		if pure && e.IsCoindexed() {
			if f.Intent == ast.IntentInOut || f.Intent == ast.IntentOut {
				return c.errorf(at, diag.KindDefinability,
					"Coindexed actual argument in PURE procedure is passed to an INTENT(%s) argument", f.Intent)
			}
			if pointerDummy(f) {
				return c.errorf(at, diag.KindDefinability,
					"Coindexed actual argument in PURE procedure is passed to a POINTER dummy argument")
			}
		}
		// F2008 12.5.2.4.
		if e.TS.Type == symbol.TypeClass && f.TS.Type == symbol.TypeClass && e.IsCoindexed() {
			return c.errorf(at, diag.KindMismatch,
				"Coindexed polymorphic actual argument is passed polymorphic dummy argument '%s'", f.Name())
		}
	}
	return nil
}

type argPair struct {
	f     *symbol.Symbol
	a     *symbol.Expr
	order int
}

// checkSomeAliasing warns when the same variable is passed to two dummy
// arguments whose intents conflict (IN and OUT, or OUT twice). Only whole
// variables and full arrays are compared. It returns false if a warning
// was issued.
func (c *Checker) checkSomeAliasing(formal []*symbol.Symbol, actual []*symbol.ActualArg, where *diag.Locus) bool {
	if len(formal) != len(actual) {
		diag.Internalf(actual, "checkSomeAliasing: %d dummies and %d actual arguments", len(formal), len(actual))
	}
	if len(formal) == 0 {
		return true
	}
	// Group arguments by the variable they designate, in order of first appearance.
	first := make(map[*symbol.Symbol]int)
	pairs := make([]argPair, len(formal))
	for i, f := range formal {
		p := argPair{f: f, a: actual[i].Expr, order: -1}
		if p.a != nil && p.a.Kind == symbol.ExprVariable {
			if _, ok := first[p.a.Sym]; !ok {
				first[p.a.Sym] = len(first)
			}
			p.order = first[p.a.Sym]
		}
		pairs[i] = p
	}
	slices.SortStableFunc(pairs, func(x, y argPair) int { return x.order - y.order })

	ok := true
	for i, p := range pairs {
		if p.order < 0 || p.a.TS.Type == symbol.TypeProcedure {
			continue
		}
		intent1 := p.f.Intent
		for _, q := range pairs[i+1:] {
			if !sameVariable(p.a, q.a) {
				break
			}
			intent2 := q.f.Intent
			if (intent1 == ast.IntentIn && intent2 == ast.IntentOut) ||
				(intent1 == ast.IntentOut && intent2 == ast.IntentIn) ||
				(intent1 == ast.IntentOut && intent2 == ast.IntentOut) {
				c.warnf(exprAt(where, p.a), diag.KindMismatch,
					"Same actual argument associated with INTENT(%s) argument '%s' and INTENT(%s) argument '%s'",
					intent1, p.f.Name(), intent2, q.f.Name())
				ok = false
			}
		}
	}
	return ok
}

// sameVariable reports whether two actual arguments certainly designate the
// same object. Only whole variables, full arrays and component chains of
// those compare equal.
func sameVariable(e1, e2 *symbol.Expr) bool {
	if e1 == nil || e2 == nil || e1.Kind != symbol.ExprVariable || e2.Kind != symbol.ExprVariable || e1.Sym != e2.Sym {
		return false
	}
	if len(e1.Refs) != len(e2.Refs) {
		return false
	}
	for i, r1 := range e1.Refs {
		r2 := e2.Refs[i]
		if r1.Kind != r2.Kind {
			return false
		}
		switch r1.Kind {
		case symbol.RefArray:
			if r1.Array != symbol.ArrayFull || r2.Array != symbol.ArrayFull {
				return false
			}
		case symbol.RefComponent:
			if r1.Component != r2.Component {
				return false
			}
		case symbol.RefSubstring:
			return false
		default:
			diag.Internalf(r1, "sameVariable: bad reference kind %d", int(r1.Kind))
		}
	}
	return true
}

// checkVarDefinable checks that e may appear in a variable definition
// context, or a pointer association context when pointer is set. context
// describes the use in the message.
func (c *Checker) checkVarDefinable(e *symbol.Expr, pointer bool, context string, at *diag.Locus) *diag.Error {
	var sym *symbol.Symbol
	switch {
	case e.Kind == symbol.ExprVariable:
		sym = e.Sym
	case !pointer && e.Kind == symbol.ExprFunction && e.Sym != nil && e.Sym.ResultVar().Attr.HasAny(symbol.AttrPointer):
		// F2008: a reference to a pointer function is a variable.
		return nil
	default:
		return c.errorf(at, diag.KindDefinability, "Non-variable expression in variable definition context (%s)", context)
	}
	if !pointer && sym.Flavor() == symbol.FlavorParameter {
		return c.errorf(at, diag.KindDefinability, "Named constant '%s' in variable definition context (%s)", sym.Name(), context)
	}
	if !pointer && sym.Flavor() != symbol.FlavorVariable && sym.Flavor() != symbol.FlavorUnknown &&
		!(sym.Flavor() == symbol.FlavorProcedure && (sym.ResultVar() == sym || sym.Attr.HasAny(symbol.AttrProcPointer))) {
		return c.errorf(at, diag.KindDefinability, "'%s' in variable definition context (%s) is not a variable", sym.Name(), context)
	}
	attr := e.Attributes()
	isPointer := attr.HasAny(symbol.AttrPointer)
	if pointer && !isPointer {
		return c.errorf(at, diag.KindDefinability, "Non-POINTER in pointer association context (%s)", context)
	}

	// An INTENT(IN) dummy may still have the target of a pointer component defined.
	checkIntentIn := true
	ptrComponent := sym.Attr.HasAny(symbol.AttrPointer)
	for _, r := range e.Refs {
		if !checkIntentIn {
			break
		}
		if r.Kind != symbol.RefComponent {
			continue
		}
		if ptrComponent {
			checkIntentIn = false
		}
		if r.Component.Attr.HasAny(symbol.AttrPointer) {
			ptrComponent = true
			if !pointer {
				checkIntentIn = false
			}
		}
	}
	if checkIntentIn && sym.Intent == ast.IntentIn {
		if pointer && isPointer {
			return c.errorf(at, diag.KindDefinability, "Dummy argument '%s' with INTENT(IN) in pointer association context (%s)", sym.Name(), context)
		}
		if !pointer && !isPointer && !sym.Attr.HasAny(symbol.AttrPointer) {
			return c.errorf(at, diag.KindDefinability, "Dummy argument '%s' with INTENT(IN) in variable definition context (%s)", sym.Name(), context)
		}
	}
	if !pointer && c.pure() && c.NS.ImpureVariable(sym) {
		return c.errorf(at, diag.KindDefinability, "Variable '%s' can not appear in a variable definition context (%s) in PURE procedure", sym.Name(), context)
	}
	return nil
}
