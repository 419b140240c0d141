package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

type typePair struct{ a, b *symbol.DerivedType }

// CompareDerivedTypes reports whether a and b denote the same derived type,
// either because they are the same definition, the same type accessed from
// one module, or two SEQUENCE or BIND(C) types with matching components.
func (c *Checker) CompareDerivedTypes(a, b *symbol.DerivedType) bool {
	return c.compareDerived(a, b, make(map[typePair]bool))
}

func (c *Checker) compareDerived(a, b *symbol.DerivedType, seen map[typePair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if sameName(a.Name, b.Name) && a.Module != "" && b.Module != "" && sameName(a.Module, b.Module) {
		return true
	}
	if !sameName(a.Name, b.Name) {
		return false
	}
	if a.PrivateComponents || b.PrivateComponents {
		return false
	}
	if !(a.Sequence && b.Sequence) && !(a.BindC && b.BindC) {
		return false
	}
	if len(a.Components) != len(b.Components) {
		return false
	}
	pair := typePair{a, b}
	if seen[pair] {
		// Already being compared further up; assume equal until proven otherwise.
		return true
	}
	seen[pair] = true
	for i, ca := range a.Components {
		cb := b.Components[i]
		if !sameName(ca.Name, cb.Name) || ca.Access != cb.Access {
			return false
		}
		const attrs = symbol.AttrPointer | symbol.AttrDimension | symbol.AttrAllocatable
		if ca.Attr&attrs != cb.Attr&attrs {
			return false
		}
		if ca.Attr.HasAny(symbol.AttrDimension) && !c.compareArraySpec(ca.AS, cb.AS) {
			return false
		}
		selfA := ca.TS.Type == symbol.TypeDerived && ca.TS.Derived == a
		selfB := cb.TS.Type == symbol.TypeDerived && cb.TS.Derived == b
		switch {
		case selfA != selfB:
			return false
		case !selfA && !c.compareTypes(ca.TS, cb.TS, seen):
			return false
		}
	}
	return true
}

// compareArraySpec compares the array specs of two components. Explicit
// bounds must compare equal.
func (c *Checker) compareArraySpec(a, b *ast.ArraySpec) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil || a.Rank != b.Rank || a.Corank != b.Corank {
		return false
	}
	if a.Rank == 0 {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != ast.ArraySpecExplicit {
		return true
	}
	if len(a.Bounds) != len(b.Bounds) {
		return false
	}
	for i := range a.Bounds {
		if !c.sameBound(a.Bounds[i].Lower, b.Bounds[i].Lower, true) || !c.sameBound(a.Bounds[i].Upper, b.Bounds[i].Upper, false) {
			return false
		}
	}
	return true
}

func (c *Checker) sameBound(x, y ast.Expression, lower bool) bool {
	if lower {
		if x == nil {
			x = ast.Int(1)
		}
		if y == nil {
			y = ast.Int(1)
		}
	}
	if x == nil || y == nil {
		return x == y
	}
	return c.compare(x, y) == ast.Equal
}

// CompareTypes reports whether an entity of type ts2 may be associated with
// one of type ts1: same intrinsic type and kind, or compatible derived types.
func (c *Checker) CompareTypes(ts1, ts2 symbol.TypeSpec) bool {
	return c.compareTypes(ts1, ts2, make(map[typePair]bool))
}

func (c *Checker) compareTypes(ts1, ts2 symbol.TypeSpec, seen map[typePair]bool) bool {
	if ts1.Type == symbol.TypeVoid || ts2.Type == symbol.TypeVoid {
		return true
	}
	if ts1.IsUnlimitedPolymorphic() {
		return true
	}
	// F2003 C717: CLASS(*) accepts SEQUENCE and BIND(C) types.
	if ts2.IsUnlimitedPolymorphic() && ts1.Type == symbol.TypeDerived && ts1.Derived != nil &&
		(ts1.Derived.Sequence || ts1.Derived.BindC) {
		return true
	}
	if ts1.Type != ts2.Type && (!isDerivedOrClass(ts1.Type) || !isDerivedOrClass(ts2.Type)) {
		return false
	}
	if !isDerivedOrClass(ts1.Type) {
		return ts1.Kind == ts2.Kind
	}
	if c.typeCompatible(ts1, ts2, seen) {
		return true
	}
	return c.compareDerived(ts1.Derived, ts2.Derived, seen)
}

func isDerivedOrClass(bt symbol.BaseType) bool {
	return bt == symbol.TypeDerived || bt == symbol.TypeClass
}

// TypeCompatible reports whether an entity of type ts2 is type compatible
// with one declared ts1 (F2003 5.1.1.2). CLASS(T) accepts T and its extensions.
func (c *Checker) TypeCompatible(ts1, ts2 symbol.TypeSpec) bool {
	return c.typeCompatible(ts1, ts2, make(map[typePair]bool))
}

func (c *Checker) typeCompatible(ts1, ts2 symbol.TypeSpec, seen map[typePair]bool) bool {
	class1, class2 := ts1.Type == symbol.TypeClass, ts2.Type == symbol.TypeClass
	derived1, derived2 := ts1.Type == symbol.TypeDerived, ts2.Type == symbol.TypeDerived
	if class1 && ts1.Derived == nil {
		return true
	}
	equal := func(a, b *symbol.DerivedType) bool { return c.compareDerived(a, b, seen) }
	switch {
	case !derived1 && !derived2 && !class1 && !class2:
		return ts1.Type == ts2.Type
	case derived1 && derived2, derived1 && class2:
		return equal(ts1.Derived, ts2.Derived)
	case class1 && (derived2 || class2):
		return ts2.Derived != nil && ts2.Derived.IsExtensionOf(ts1.Derived, equal)
	}
	return false
}

// compareTypeRank reports whether s1 and s2 agree in type and rank. Assumed
// rank matches any rank and TYPE(*) any type.
func (c *Checker) compareTypeRank(s1, s2 *symbol.Symbol) bool {
	if s1 == nil || s2 == nil {
		return s1 == s2
	}
	r1, r2 := 0, 0
	if s1.AS != nil {
		r1 = s1.AS.Rank
	}
	if s2.AS != nil {
		r2 = s2.AS.Rank
	}
	if r1 != r2 && !s1.HasShape(ast.ArraySpecAssumedRank) && !s2.HasShape(ast.ArraySpecAssumedRank) {
		return false
	}
	return c.CompareTypes(s1.TS, s2.TS) || s1.TS.Type == symbol.TypeAssumed || s2.TS.Type == symbol.TypeAssumed
}

// compareTypeRankIf is compareTypeRank extended to dummy procedures, which
// agree if they are both subroutines or both functions with agreeing results.
func (c *Checker) compareTypeRankIf(s1, s2 *symbol.Symbol) bool {
	if s1 == nil || s2 == nil {
		return s1 == s2
	}
	if s1 == s2 {
		return true
	}
	proc1, proc2 := s1.Flavor() == symbol.FlavorProcedure, s2.Flavor() == symbol.FlavorProcedure
	if !proc1 && !proc2 {
		return c.compareTypeRank(s1, s2)
	}
	if !proc1 || !proc2 {
		return false
	}
	// External procedures known only by usage are compared by TKR.
	for _, s := range [2]*symbol.Symbol{s1, s2} {
		if !s.IsFunction() && !s.IsSubroutine() {
			return s.Attr.HasAny(symbol.AttrExternal) && c.compareTypeRank(s1, s2)
		}
	}
	if s1.IsFunction() != s2.IsFunction() || s1.IsSubroutine() != s2.IsSubroutine() {
		return false
	}
	return !s1.IsFunction() || c.compareTypeRank(s1, s2)
}
