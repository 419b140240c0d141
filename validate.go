package interfaces

import (
	"fmt"

	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
	"github.com/soypat/go-fortran-interfaces/token"
	"golang.org/x/exp/slices"
)

// CheckInterfaces validates every interface set declared in ns: generic
// names, user operators and the intrinsic operator and assignment slots.
// The members of a set must be procedures with explicit interfaces, all
// functions or all subroutines, and two members must never be ambiguous.
// Duplicate entries naming one procedure are removed. It reports whether no
// error was found.
func (c *Checker) CheckInterfaces(ns *symbol.Namespace) bool {
	saved := c.NS
	c.NS = ns
	defer func() { c.NS = saved }()

	before := c.errorCount()
	for _, sym := range ns.Symbols() {
		c.checkSymInterfaces(sym)
	}
	for _, uop := range ns.UserOps() {
		c.checkUopInterfaces(uop)
	}
	c.checkOpInterfaces(ns)
	return c.errorCount() == before
}

func (c *Checker) checkOpInterfaces(ns *symbol.Namespace) {
	for op := token.UPlus; op <= token.Parentheses; op++ {
		if op == token.UserOp {
			continue
		}
		var name string
		if op == token.Equals {
			name = "intrinsic assignment operator"
		} else {
			name = fmt.Sprintf("intrinsic '%s' operator", op)
		}
		if !c.checkInterface0(&ns.Ops[op], name) {
			continue
		}
		for _, intr := range ns.Ops[op] {
			c.CheckOperatorInterface(intr.Sym, op, intr.Where)
		}
		for ns2 := ns; ns2 != nil; ns2 = ns2.Parent() {
			if c.checkInterface1(ns.Ops[op], ns2.Ops[op], false, name, true) {
				return
			}
			if other := op.Equivalent(); other != token.Undefined &&
				c.checkInterface1(ns.Ops[op], ns2.Ops[other], false, name, true) {
				return
			}
		}
	}
}

// checkSymInterfaces validates the generic interface of sym when sym is
// declared in the namespace being checked. Host associated generics cannot
// be ambiguous with local ones and are skipped.
func (c *Checker) checkSymInterfaces(sym *symbol.Symbol) {
	if sym.NS != c.NS || len(sym.Generic) == 0 {
		return
	}
	name := fmt.Sprintf("generic interface '%s'", sym.Name())
	if !c.checkInterface0(&sym.Generic, name) {
		return
	}
	for _, p := range sym.Generic {
		if p.Sym.Attr.HasAny(symbol.AttrModProc) &&
			(p.Sym.IfSource != symbol.IfSourceDecl || p.Sym.Attr.HasAny(symbol.AttrProcedure)) {
			c.errorf(&p.Where, diag.KindInterface, "'%s' is not a module procedure", p.Sym.Name())
			return
		}
	}
	referenced := sym.Attr.HasAny(symbol.AttrReferenced) || !sym.Attr.HasAny(symbol.AttrUseAssoc)
	c.checkInterface1(sym.Generic, sym.Generic, true, name, referenced)
}

func (c *Checker) checkUopInterfaces(uop *symbol.UserOp) {
	name := fmt.Sprintf("operator interface '%s'", uop.Name)
	if !c.checkInterface0(&uop.Ops, name) {
		return
	}
	for ns := c.NS; ns != nil; ns = ns.Parent() {
		if uop2 := ns.UserOp(uop.Name); uop2 != nil {
			c.checkInterface1(uop.Ops, uop2.Ops, false, name, true)
		}
	}
}

// checkInterface0 checks that the members of an interface set are
// procedures with explicit interfaces that agree on being functions or
// subroutines, then removes duplicate entries from *list. name describes
// the set in messages. A derived type sharing the generic name is allowed
// when the procedures are functions.
func (c *Checker) checkInterface0(list *[]*symbol.Interface, name string) bool {
	entries := *list
	if len(entries) == 0 {
		return true
	}
	first := entries[0].Sym
	for _, p := range entries {
		sym := p.Sym
		isType := sym.Flavor() == symbol.FlavorDerived
		if (!sym.IsFunction() && !sym.IsSubroutine() || sym.IfSource == symbol.IfSourceUnknown) && !isType {
			if sym.Attr.HasAny(symbol.AttrExternal) {
				c.errorf(&sym.DeclaredAt, diag.KindInterface, "Procedure '%s' in %s has no explicit interface", sym.Name(), name)
			} else {
				c.errorf(&sym.DeclaredAt, diag.KindInterface, "Procedure '%s' in %s is neither function nor subroutine", sym.Name(), name)
			}
			return false
		}
		if (first.IsFunction() && !sym.IsFunction() && !isType) || (first.IsSubroutine() && !sym.IsSubroutine()) {
			if !isType {
				c.errorf(&sym.DeclaredAt, diag.KindInterface, "In %s procedures must be either all SUBROUTINEs or all FUNCTIONs", name)
			} else {
				c.errorf(&sym.DeclaredAt, diag.KindInterface,
					"In %s procedures must be all FUNCTIONs as the generic name is also the name of a derived type", name)
			}
			return false
		}
		// F2003 C1207, lifted in F2008.
		if sym.Proc == symbol.ProcInternal && !c.NotifyStd(diag.StdF2008, &sym.DeclaredAt, "Internal procedure '%s' in %s", sym.Name(), name) {
			return false
		}
	}

	// Remove duplicates, keeping the first entry for each procedure.
	for i := 0; i < len(entries); i++ {
		for j := len(entries) - 1; j > i; j-- {
			if entries[j].Sym == entries[i].Sym {
				entries = slices.Delete(entries, j, j+1)
			}
		}
	}
	*list = entries
	return true
}

// checkInterface1 compares each member of p against each member of q and
// reports the first ambiguous pair. Ambiguity is an error when the
// interface is referenced; otherwise a warning. It reports whether an
// ambiguous pair was found.
func (c *Checker) checkInterface1(p, q []*symbol.Interface, generic bool, name string, referenced bool) bool {
	for _, pi := range p {
		for _, qi := range q {
			ps, qs := pi.Sym, qi.Sym
			if ps == qs {
				continue
			}
			if sameName(ps.Name(), qs.Name()) && sameName(ps.Module, qs.Module) {
				continue // The same procedure accessed twice.
			}
			if ps.Flavor() == symbol.FlavorDerived || qs.Flavor() == symbol.FlavorDerived {
				continue
			}
			if c.compareInterfaces(ps, qs, qs.Name(), generic, false, "", "") != nil {
				continue
			}
			switch {
			case referenced:
				c.errorf(&pi.Where, diag.KindAmbiguity, "Ambiguous interfaces '%s' and '%s' in %s", ps.Name(), qs.Name(), name)
			case !ps.Attr.HasAny(symbol.AttrUseAssoc) && qs.Attr.HasAny(symbol.AttrUseAssoc):
				c.warnf(&pi.Where, diag.KindAmbiguity, "Ambiguous interfaces '%s' and '%s' in %s", ps.Name(), qs.Name(), name)
			default:
				c.warnf(&pi.Where, diag.KindAmbiguity, "Although not referenced, '%s' has ambiguous interfaces", name)
			}
			return true
		}
	}
	return false
}
