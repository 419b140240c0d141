package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
	"github.com/soypat/go-fortran-interfaces/token"
	"golang.org/x/exp/slices"
)

// Match is the outcome of an attempt to rewrite an operation.
type Match int

const (
	MatchNo    Match = iota // No interface applies; the expression is unchanged.
	MatchYes                // The expression was rewritten.
	MatchError              // Rewritten, but the rewrite failed to resolve.
)

func (m Match) String() string {
	switch m {
	case MatchNo:
		return "no"
	case MatchYes:
		return "yes"
	case MatchError:
		return "error"
	}
	return "<invalid match>"
}

// SearchInterface returns the specific procedure of list that the actual
// arguments *ap select, or nil if none does. Only subroutines are
// considered when subroutine is set, only functions otherwise. A match of a
// non-elemental procedure is preferred over an elemental one. On success *ap
// is reordered for the selected procedure.
//
// A NULL() argument without MOLD that would select two procedures makes the
// reference ambiguous; this is reported at the NULL() and nil is returned.
func (c *Checker) SearchInterface(list []*symbol.Interface, subroutine bool, ap *[]*symbol.ActualArg) *symbol.Symbol {
	var null *symbol.Expr
	for _, a := range *ap {
		if a.Expr != nil && a.Expr.IsNullWithoutMold() {
			null = a.Expr
			break
		}
	}

	var nullSym, elemSym *symbol.Symbol
	var nullArgs, elemArgs []*symbol.ActualArg
	for _, intr := range list {
		sym := intr.Sym
		if sym.Flavor() == symbol.FlavorDerived {
			continue
		}
		if (subroutine && sym.IsFunction()) || (!subroutine && sym.IsSubroutine()) {
			continue
		}
		probe := slices.Clone(*ap)
		if !c.ArglistMatchesSymbol(&probe, sym) {
			continue
		}
		switch {
		case null != nil && nullSym != nil:
			c.errorf(&null.Where, diag.KindAmbiguity,
				"MOLD= required in NULL() argument: Ambiguity between specific functions %s and %s", nullSym.Name(), sym.Name())
			return nil
		case null != nil:
			nullSym, nullArgs = sym, probe
		case sym.Attr.HasAny(symbol.AttrElemental):
			// F2003 12.4.4.1: an elemental match has lower weight.
			elemSym, elemArgs = sym, probe
		default:
			*ap = probe
			return sym
		}
	}
	if nullSym != nil {
		*ap = nullArgs
		return nullSym
	}
	if elemSym != nil {
		*ap = elemArgs
	}
	return elemSym
}

// matchingTypeboundOp looks for a type-bound GENERIC binding of op (or of
// the user operator uop) on the type of a derived or polymorphic argument
// that matches args. The parent bindings it overrides are searched too. It
// returns the specific binding, the argument the binding was found on and
// the specific binding name.
func (c *Checker) matchingTypeboundOp(args []*symbol.ActualArg, op token.Token, uop string) (tb *symbol.TypeBound, base *symbol.Expr, gname string) {
	for _, a := range args {
		if a.Expr == nil || !isDerivedOrClass(a.Expr.TS.Type) {
			continue
		}
		for a.Expr.Kind == symbol.ExprOp && a.Expr.Op == token.Parentheses {
			a.Expr = a.Expr.Op1
		}
		if a.Expr.TS.Derived == nil {
			continue // CLASS(*) has no bindings.
		}
		derived := a.Expr.TS.Derived

		var generic *symbol.TypeBound
		var ok bool
		if op == token.UserOp {
			generic, ok = derived.FindUserOpBinding(uop)
		} else {
			generic, ok = derived.FindOpBinding(op)
		}
		if !ok {
			// PRIVATE binding of a use-associated type.
			generic = nil
		}

		for ; generic != nil; generic = generic.Overridden {
			if !generic.IsGeneric {
				diag.Internalf(generic, "operator binding '%s' is not GENERIC", generic.Name)
			}
			for _, specific := range generic.Generic {
				if specific.Error {
					continue
				}
				probe := slices.Clone(args)
				if c.ArglistMatchesSymbol(&probe, specific.Specific) {
					return specific, a.Expr, specific.Name
				}
			}
		}
	}
	return nil, nil, ""
}

// buildCompcall turns e into a call of the type-bound procedure tb with the
// binding found on base.
func buildCompcall(e *symbol.Expr, actual []*symbol.ActualArg, base *symbol.Expr, tb *symbol.TypeBound, gname string) {
	name := gname
	if name == "" {
		name = "$op"
	}
	e.Kind = symbol.ExprCompCall
	e.CompCall = &symbol.CompCall{
		TBP:        tb,
		Name:       name,
		Actual:     actual,
		Base:       base,
		IgnorePass: true,
	}
	if e.TS.Type == symbol.TypeUnknown && tb.Function {
		target := tb
		if tb.IsGeneric && len(tb.Generic) > 0 {
			target = tb.Generic[0]
		}
		if target.Specific != nil {
			e.TS = target.Specific.ResultVar().TS
		}
	}
}

// operatorSlots returns the operator table slots to search for op: the
// slot of op and that of its alternate spelling, if any.
func operatorSlots(op token.Token) []token.Token {
	if eq := op.Equivalent(); eq != token.Undefined {
		return []token.Token{op, eq}
	}
	return []token.Token{op}
}

// ExtendExpr tries to replace the operation e by a reference to a function
// extending its operator. Interfaces of the current namespace and its
// hosts are searched first, then the type-bound operators of derived
// operands. On success e becomes a function reference or a type-bound
// call and is passed to the Resolve hook.
func (c *Checker) ExtendExpr(e *symbol.Expr) Match {
	if e.Kind != symbol.ExprOp {
		diag.Internalf(e, "ExtendExpr: not an operation")
	}
	actual := []*symbol.ActualArg{{Expr: e.Op1}}
	if e.Op2 != nil {
		actual = append(actual, &symbol.ActualArg{Expr: e.Op2})
	}
	op := e.Op.FoldUnary()
	var uopName string
	if op == token.UserOp {
		if e.UserOp == nil {
			diag.Internalf(e, "ExtendExpr: user operation without operator")
		}
		uopName = e.UserOp.Name
	}

	var sym *symbol.Symbol
	for ns := c.NS; ns != nil && sym == nil; ns = ns.Parent() {
		if op == token.UserOp {
			if uop := ns.UserOp(uopName); uop != nil {
				sym = c.SearchInterface(uop.Ops, false, &actual)
			}
			continue
		}
		for _, slot := range operatorSlots(op) {
			if sym = c.SearchInterface(ns.Ops[slot], false, &actual); sym != nil {
				break
			}
		}
	}

	if sym == nil {
		var tb *symbol.TypeBound
		var base *symbol.Expr
		var gname string
		for _, slot := range operatorSlots(op) {
			if tb, base, gname = c.matchingTypeboundOp(actual, slot, uopName); tb != nil {
				break
			}
		}
		if tb == nil {
			return MatchNo
		}
		buildCompcall(e, actual, base, tb, gname)
		return c.resolve(e)
	}

	e.Kind = symbol.ExprFunction
	e.Sym = sym
	e.Actual = actual
	e.UserOperator = true
	if e.TS.Type == symbol.TypeUnknown {
		e.TS = sym.ResultVar().TS
	}
	return c.resolve(e)
}

func (c *Checker) resolve(e *symbol.Expr) Match {
	if c.Resolve == nil {
		return MatchYes
	}
	if err := c.Resolve(e); err != nil {
		return MatchError
	}
	return MatchYes
}

// ExtendAssign tries to replace the assignment code by a call of a defined
// assignment. Intrinsic assignments are never replaced. ASSIGNMENT(=)
// interfaces of ns and its hosts are searched first, then type-bound
// assignments of derived operands. It reports whether code was rewritten.
func (c *Checker) ExtendAssign(code *symbol.Code, ns *symbol.Namespace) bool {
	lhs, rhs := code.Expr1, code.Expr2
	if !isDerivedOrClass(lhs.TS.Type) && (rhs.Rank == 0 || rhs.Rank == lhs.Rank) &&
		(lhs.TS.Type == rhs.TS.Type || (lhs.TS.IsNumeric() && rhs.TS.IsNumeric())) {
		return false
	}
	actual := []*symbol.ActualArg{{Expr: lhs}, {Expr: rhs}}

	var sym *symbol.Symbol
	for ; ns != nil && sym == nil; ns = ns.Parent() {
		sym = c.SearchInterface(ns.Ops[token.Equals], true, &actual)
	}
	if sym == nil {
		tb, base, gname := c.matchingTypeboundOp(actual, token.Equals, "")
		if tb == nil {
			return false
		}
		call := &symbol.Expr{Where: code.Loc}
		buildCompcall(call, actual, base, tb, gname)
		call.CompCall.Assign = true
		code.Op = symbol.CodeCompCall
		code.Expr1, code.Expr2 = call, nil
		return true
	}

	code.Op = symbol.CodeAssignCall
	code.Sym = sym
	code.Actual = actual
	code.Expr1, code.Expr2 = nil, nil
	return true
}
