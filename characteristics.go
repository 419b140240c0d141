package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

// checkDummyCharacteristics compares the characteristics of two dummy
// arguments (F2008 12.3.2.2). Type and rank are only compared when
// typeMustAgree is set, which is not the case for passed-object dummies.
// The returned error carries no locus; callers wrap its message.
func (c *Checker) checkDummyCharacteristics(s1, s2 *symbol.Symbol, typeMustAgree bool) *diag.Error {
	if s1 == nil || s2 == nil {
		if s1 == s2 {
			return nil
		}
		return diag.Errorf(diag.KindMismatch, "Alternate return mismatch")
	}
	name := s1.Name()
	if typeMustAgree && (!c.compareTypeRank(s1, s2) || !c.compareTypeRank(s2, s1)) {
		return diag.Errorf(diag.KindMismatch, "Type/rank mismatch in argument '%s'", name)
	}
	if s1.Intent != s2.Intent {
		return diag.Errorf(diag.KindMismatch, "INTENT mismatch in argument '%s'", name)
	}
	for _, a := range []struct {
		attr symbol.Attr
		name string
	}{
		{symbol.AttrOptional, "OPTIONAL"},
		{symbol.AttrAllocatable, "ALLOCATABLE"},
		{symbol.AttrPointer, "POINTER"},
		{symbol.AttrTarget, "TARGET"},
		{symbol.AttrAsynchronous, "ASYNCHRONOUS"},
		{symbol.AttrContiguous, "CONTIGUOUS"},
		{symbol.AttrValue, "VALUE"},
		{symbol.AttrVolatile, "VOLATILE"},
	} {
		if s1.Attr.HasAny(a.attr) != s2.Attr.HasAny(a.attr) {
			return diag.Errorf(diag.KindMismatch, "%s mismatch in argument '%s'", a.name, name)
		}
	}

	if s1.Flavor() == symbol.FlavorProcedure {
		if err := c.compareInterfaces(s1, s2, s2.Name(), false, true, "", ""); err != nil {
			return diag.Errorf(diag.KindMismatch, "Interface mismatch in dummy procedure '%s': %s", name, err.Msg)
		}
	}

	if s1.TS.Type == symbol.TypeCharacter && s1.TS.CharLen != nil && s2.TS.CharLen != nil {
		if c.compareDefinite(s1.TS.CharLen, s2.TS.CharLen) {
			return diag.Errorf(diag.KindMismatch, "Character length mismatch in argument '%s'", name)
		}
	}

	if s1.AS != nil && s2.AS != nil {
		if s1.AS.Kind != s2.AS.Kind {
			return diag.Errorf(diag.KindMismatch, "Shape mismatch in argument '%s'", name)
		}
		if dim := c.shapeMismatch(s1.AS, s2.AS); dim > 0 {
			return diag.Errorf(diag.KindMismatch, "Shape mismatch in dimension %d of argument '%s'", dim, name)
		}
	}
	return nil
}

// checkResultCharacteristics compares the function results of two procedures.
func (c *Checker) checkResultCharacteristics(s1, s2 *symbol.Symbol) *diag.Error {
	r1, r2 := s1.ResultVar(), s2.ResultVar()
	if r1.TS.Type == symbol.TypeUnknown {
		return nil
	}
	if !c.compareTypeRank(r1, r2) {
		return diag.Errorf(diag.KindMismatch, "Type/rank mismatch in function result")
	}
	for _, a := range []struct {
		attr symbol.Attr
		name string
	}{
		{symbol.AttrAllocatable, "ALLOCATABLE"},
		{symbol.AttrPointer, "POINTER"},
		{symbol.AttrContiguous, "CONTIGUOUS"},
	} {
		if r1.Attr.HasAny(a.attr) != r2.Attr.HasAny(a.attr) {
			return diag.Errorf(diag.KindMismatch, "%s attribute mismatch in function result", a.name)
		}
	}
	if r1 != s1 && r1.Attr.HasAny(symbol.AttrProcPointer) != r2.Attr.HasAny(symbol.AttrProcPointer) {
		return diag.Errorf(diag.KindMismatch, "PROCEDURE POINTER mismatch in function result")
	}
	if r1.TS.Type == symbol.TypeCharacter {
		if r1.TS.Deferred != r2.TS.Deferred {
			return diag.Errorf(diag.KindMismatch, "Character length mismatch in function result")
		}
		if r1.TS.CharLen != nil && c.compareDefinite(r1.TS.CharLen, r2.TS.CharLen) {
			return diag.Errorf(diag.KindMismatch, "Character length mismatch in function result")
		}
	}
	if !r1.Attr.HasAny(symbol.AttrAllocatable|symbol.AttrPointer) && r1.AS != nil && r2.AS != nil {
		if r1.AS.Kind != r2.AS.Kind {
			return diag.Errorf(diag.KindMismatch, "Shape mismatch in function result")
		}
		if dim := c.shapeMismatch(r1.AS, r2.AS); dim > 0 {
			return diag.Errorf(diag.KindMismatch, "Shape mismatch in dimension %d of function result", dim)
		}
	}
	return nil
}

// compareDefinite reports whether a and b are known to differ. Expressions
// whose relation cannot be decided are accepted.
func (c *Checker) compareDefinite(a, b ast.Expression) bool {
	switch cmp := c.compare(a, b); cmp {
	case ast.Equal, ast.Indeterminate:
		return false
	case ast.Less, ast.Greater, ast.Unequal:
		return true
	default:
		diag.Internalf(cmp, "unexpected comparison result %d", int(cmp))
		return false
	}
}

// shapeMismatch returns the first dimension (counted from 1, codimensions
// included) whose extents differ in two explicit-shape specs of the same
// kind, or 0 if none does.
func (c *Checker) shapeMismatch(as1, as2 *ast.ArraySpec) int {
	if as1.Kind != ast.ArraySpecExplicit {
		return 0
	}
	n := min(as1.Rank+as1.Corank, len(as1.Bounds), len(as2.Bounds))
	for i := 0; i < n; i++ {
		if c.compareDefinite(ast.Extent(as1.Bounds[i]), ast.Extent(as2.Bounds[i])) {
			return i + 1
		}
	}
	return 0
}
