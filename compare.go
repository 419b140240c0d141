package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

// CompareInterfaces checks that s2 can be used where the interface s1 is
// expected, as for a procedure actual argument or a procedure pointer
// assignment. name2 names s2 in the message. With strict set all
// characteristics of the dummy arguments and results are compared, otherwise
// only type and rank. A nil error means the interfaces agree.
func (c *Checker) CompareInterfaces(s1, s2 *symbol.Symbol, name2 string, strict bool) error {
	return asError(c.compareInterfaces(s1, s2, name2, false, strict, "", ""))
}

// Ambiguous reports whether two specific procedures of one generic
// interface cannot be told apart by the rules of F2008 12.4.3.4.5. pass1
// and pass2 name passed-object dummies to leave out of the count, empty if
// there are none.
func (c *Checker) Ambiguous(s1, s2 *symbol.Symbol, pass1, pass2 string) bool {
	return c.compareInterfaces(s1, s2, s2.Name(), true, false, pass1, pass2) == nil
}

// compareInterfaces returns nil if s1 and s2 are equal (generic unset) or
// ambiguous (generic set). The error explains the first difference found.
func (c *Checker) compareInterfaces(s1, s2 *symbol.Symbol, name2 string, generic, strict bool, p1, p2 string) *diag.Error {
	if s1.IsFunction() && (s2.IsSubroutine() ||
		(!s2.IsFunction() && s2.TS.Type == symbol.TypeUnknown && !c.hasDefaultType(s2))) {
		return diag.Errorf(diag.KindMismatch, "'%s' is not a function", name2)
	}
	if s1.IsSubroutine() && s2.IsFunction() {
		return diag.Errorf(diag.KindMismatch, "'%s' is not a subroutine", name2)
	}

	if !generic && strict {
		if s1.IsFunction() && s2.IsFunction() {
			if err := c.checkResultCharacteristics(s1, s2); err != nil {
				return err
			}
		}
		if s1.Attr.HasAny(symbol.AttrPure) && !s2.Attr.HasAny(symbol.AttrPure) {
			return diag.Errorf(diag.KindMismatch, "Mismatch in PURE attribute")
		}
		if s1.Attr.HasAny(symbol.AttrElemental) && !s2.Attr.HasAny(symbol.AttrElemental) {
			return diag.Errorf(diag.KindMismatch, "Mismatch in ELEMENTAL attribute")
		}
	}

	if s1.IfSource == symbol.IfSourceUnknown || s2.IfSource == symbol.IfSourceUnknown {
		return nil
	}
	f1, f2 := s1.DummyArgs(), s2.DummyArgs()
	if len(f1) == 0 && len(f2) == 0 {
		return nil
	}

	if generic {
		if c.countTypesTest(f1, f2, p1, p2) || c.countTypesTest(f2, f1, p2, p1) ||
			c.genericCorrespondence(f1, f2, p1, p2) || c.genericCorrespondence(f2, f1, p2, p1) {
			return diag.Errorf(diag.KindAmbiguity, "'%s' is distinguishable", name2)
		}
		return nil
	}

	// Abbreviated correspondence test: arguments are positional and not optional.
	if len(f1) != len(f2) {
		return diag.Errorf(diag.KindMismatch, "'%s' has the wrong number of arguments", name2)
	}
	for i, a1 := range f1 {
		a2 := f2[i]
		if a1.IsUnlimitedPolymorphic() {
			continue
		}
		if strict {
			if err := c.checkDummyCharacteristics(a1, a2, true); err != nil {
				return err
			}
		} else if !c.compareTypeRank(a2, a1) {
			return diag.Errorf(diag.KindMismatch, "Type/rank mismatch in argument '%s'", symName(a1))
		}
	}
	return nil
}

// hasDefaultType reports whether an implicit rule gives sym a type. Unlike
// setDefaultType it leaves sym untouched.
func (c *Checker) hasDefaultType(sym *symbol.Symbol) bool {
	ns := c.namespace(sym)
	return ns != nil && ns.DefaultType(sym.Name()).Type != symbol.TypeUnknown
}

// setDefaultType gives an untyped procedure its implicit type.
func (c *Checker) setDefaultType(sym *symbol.Symbol) error {
	ns := c.namespace(sym)
	if ns == nil {
		return errNoNamespace
	}
	return ns.SetDefaultType(sym)
}

// isPass reports whether dummy is the passed-object argument named pass.
func isPass(dummy *symbol.Symbol, pass string) bool {
	return pass != "" && dummy != nil && sameName(dummy.Name(), pass)
}

func isOptional(dummy *symbol.Symbol) bool {
	return dummy != nil && dummy.Attr.HasAny(symbol.AttrOptional)
}

// countTypesTest partitions the non-optional, non-passed dummies of f1 into
// classes of mutually TR-compatible arguments. It returns true when some
// class has more members than f2 has dummies of that type and rank, which
// makes the two lists distinguishable.
func (c *Checker) countTypesTest(f1, f2 []*symbol.Symbol, p1, p2 string) bool {
	n1 := len(f1)
	flag := make([]int, n1)
	for i := range flag {
		flag[i] = -1
	}
	k := 0
	for i := 0; i < n1; i++ {
		if flag[i] != -1 {
			continue
		}
		if isOptional(f1[i]) || isPass(f1[i], p1) {
			continue
		}
		flag[i] = k
		for j := i + 1; j < n1; j++ {
			if (f1[j] == nil || !(isOptional(f1[j]) || isPass(f1[j], p1))) &&
				(c.compareTypeRankIf(f1[i], f1[j]) || c.compareTypeRankIf(f1[j], f1[i])) {
				flag[j] = k
			}
		}
		k++
	}

	// Visit each class in order of its first member.
	k = 0
	for i := 0; i < n1; i++ {
		if flag[i] != k {
			continue
		}
		ac1 := 1
		for j := i + 1; j < n1; j++ {
			if flag[j] == k {
				ac1++
			}
		}
		ac2 := 0
		for _, f := range f2 {
			if !isPass(f, p2) && (c.compareTypeRankIf(f1[i], f) || c.compareTypeRankIf(f, f1[i])) {
				ac2++
			}
		}
		if ac1 > ac2 {
			return true
		}
		k++
	}
	return false
}

// genericCorrespondence walks f1 and f2 in step. At the first pair of
// non-optional dummies that do not match by position it looks for a
// dummy of f1 at or after that point whose name is missing from f2 or
// names a dummy of a different type or rank. Such a dummy disambiguates the
// lists by keyword. POINTER and ALLOCATABLE dummies are distinguishable
// when Fortran 2008 is allowed.
func (c *Checker) genericCorrespondence(f1, f2 []*symbol.Symbol, p1, p2 string) bool {
	f2008 := c.Std.Allows(diag.StdF2008)
	ptrAlloc := func(a, b *symbol.Symbol) bool {
		return f2008 && (a.Attr.HasAny(symbol.AttrAllocatable) && b.Attr.HasAny(symbol.AttrPointer) ||
			b.Attr.HasAny(symbol.AttrAllocatable) && a.Attr.HasAny(symbol.AttrPointer))
	}
	i, j := 0, 0
	for i < len(f1) {
		if f1[i] == nil || isOptional(f1[i]) {
			i, j = i+1, j+1
			continue
		}
		if isPass(f1[i], p1) {
			i++
			if i >= len(f1) {
				break
			}
		}
		if j < len(f2) && isPass(f2[j], p2) {
			j++
		}
		a1 := f1[i]
		if a1 != nil && j < len(f2) && f2[j] != nil &&
			(c.compareTypeRank(a1, f2[j]) || c.compareTypeRank(f2[j], a1)) && !ptrAlloc(a1, f2[j]) {
			i, j = i+1, j+1
			continue
		}
		for _, g := range f1[i:] {
			if g == nil || isOptional(g) || isPass(g, p1) {
				continue
			}
			sym := findKeywordArg(g.Name(), f2)
			if sym == nil || !c.compareTypeRank(g, sym) || ptrAlloc(sym, g) {
				return true
			}
		}
		i, j = i+1, j+1
	}
	return false
}

// findKeywordArg returns the dummy of formal named name, or nil.
func findKeywordArg(name string, formal []*symbol.Symbol) *symbol.Symbol {
	for _, f := range formal {
		if f != nil && sameName(f.Name(), name) {
			return f
		}
	}
	return nil
}
