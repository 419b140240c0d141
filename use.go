package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

// ProcedureUse checks a call of sym with the actual arguments *ap at where.
// Calls through an implicit interface only get the checks that need no
// interface. Otherwise the arguments are bound to the dummies, reordering
// *ap, and checked against PURE and coindexing restrictions.
func (c *Checker) ProcedureUse(sym *symbol.Symbol, ap *[]*symbol.ActualArg, where *diag.Locus) error {
	if sym.IfSource == symbol.IfSourceUnknown && c.WarnImplicitInterface {
		c.warnf(where, diag.KindInterface, "Procedure '%s' called with an implicit interface", sym.Name())
	} else if c.WarnImplicitProcedure && sym.Proc == symbol.ProcUnknown && !sym.Attr.HasAny(symbol.AttrISOC) {
		c.warnf(where, diag.KindInterface, "Procedure '%s' called is not explicitly declared", sym.Name())
	}

	if sym.IfSource == symbol.IfSourceUnknown {
		return asError(c.implicitUse(sym, *ap, where))
	}

	formal := sym.DummyArgs()
	if err := c.compareActualFormal(ap, formal, false, sym.Attr.HasAny(symbol.AttrElemental), where); err != nil {
		return err
	}
	if err := c.checkIntents(formal, *ap, where); err != nil {
		return err
	}
	if c.WarnAliasing {
		c.checkSomeAliasing(formal, *ap, where)
	}
	return nil
}

func (c *Checker) implicitUse(sym *symbol.Symbol, actual []*symbol.ActualArg, where *diag.Locus) *diag.Error {
	switch {
	case sym.Attr.HasAny(symbol.AttrPointer):
		return c.errorf(where, diag.KindInterface,
			"The pointer object '%s' must have an explicit function interface or be declared as array", sym.Name())
	case sym.Attr.HasAny(symbol.AttrAllocatable) && !sym.Attr.HasAny(symbol.AttrExternal):
		return c.errorf(where, diag.KindInterface,
			"The allocatable object '%s' must have an explicit function interface or be declared as array", sym.Name())
	case sym.Attr.HasAny(symbol.AttrAllocatable):
		return c.errorf(where, diag.KindInterface, "Allocatable function '%s' must have an explicit function interface", sym.Name())
	}

	cloc := sym.Attr.HasAny(symbol.AttrISOC) && sameName(sym.Name(), "C_LOC")
	for _, a := range actual {
		e := a.Expr
		if a.Name != "" && a.Name[0] != '%' {
			return c.errorf(where, diag.KindInterface, "Keyword argument requires explicit interface for procedure '%s'", sym.Name())
		}
		if e == nil {
			continue
		}
		// TS 29113 6.2.
		if e.TS.Type == symbol.TypeAssumed && !cloc {
			return c.errorf(exprAt(where, e), diag.KindInterface, "Assumed-type argument %s requires an explicit interface", symName(e.Sym))
		}
		// F2008 C1303 and C1304.
		if isDerivedOrClass(e.TS.Type) && e.TS.Derived != nil && e.TS.Derived.HasLockComponent() {
			return c.errorf(exprAt(where, e), diag.KindInterface,
				"Actual argument of LOCK_TYPE or with LOCK_TYPE component requires an explicit interface for procedure '%s'", sym.Name())
		}
		if e.IsNullWithoutMold() {
			return c.errorf(exprAt(where, e), diag.KindInterface, "MOLD argument to NULL required")
		}
		// TS 29113 C407b.
		if e.Kind == symbol.ExprVariable && e.Sym.Rank() == -1 {
			return c.errorf(exprAt(where, e), diag.KindInterface, "Assumed-rank argument requires an explicit interface")
		}
	}
	return nil
}

// PPCUse checks a call through the procedure pointer component comp. The
// interface is the one the component was declared with, if any.
func (c *Checker) PPCUse(comp *symbol.Component, ap *[]*symbol.ActualArg, where *diag.Locus) error {
	iface := comp.TS.Interface
	if iface == nil || iface.IfSource == symbol.IfSourceUnknown {
		if c.WarnImplicitInterface {
			c.warnf(where, diag.KindInterface, "Procedure pointer component '%s' called with an implicit interface", comp.Name)
		}
		for _, a := range *ap {
			if a.Name != "" && a.Name[0] != '%' {
				return c.errorf(where, diag.KindInterface,
					"Keyword argument requires explicit interface for procedure pointer component '%s'", comp.Name)
			}
		}
		return nil
	}

	formal := iface.DummyArgs()
	elemental := comp.Attr.HasAny(symbol.AttrElemental) || iface.Attr.HasAny(symbol.AttrElemental)
	if err := c.compareActualFormal(ap, formal, false, elemental, where); err != nil {
		return err
	}
	if err := c.checkIntents(formal, *ap, where); err != nil {
		return err
	}
	if c.WarnAliasing {
		c.checkSomeAliasing(formal, *ap, where)
	}
	return nil
}

// ArglistMatchesSymbol reports whether the actual arguments *ap can be
// bound to the dummies of sym. Nothing is reported. On a match *ap is
// reordered as by [Checker.BindArguments].
func (c *Checker) ArglistMatchesSymbol(ap *[]*symbol.ActualArg, sym *symbol.Symbol) bool {
	r := !sym.Attr.HasAny(symbol.AttrElemental)
	formal := sym.DummyArgs()
	if c.compareActualFormal(ap, formal, r, !r, nil) != nil {
		return false
	}
	c.checkIntents(formal, *ap, nil)
	return true
}
