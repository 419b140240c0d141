package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

// BindArguments matches the actual argument list *ap against the dummy
// arguments formal of an explicit interface. Keyword arguments are placed by
// name and every argument is checked against its dummy. On success *ap is
// replaced by a list in dummy order holding one entry per dummy, with empty
// entries standing for omitted optional arguments. On failure *ap is left
// untouched.
//
// If ranksMustAgree is set, array actual arguments must have the rank of
// their dummy; elemental allows arrays for scalar dummies. Diagnostics are
// reported only if where is not nil.
func (c *Checker) BindArguments(ap *[]*symbol.ActualArg, formal []*symbol.Symbol, ranksMustAgree, elemental bool, where *diag.Locus) error {
	return asError(c.compareActualFormal(ap, formal, ranksMustAgree, elemental, where))
}

func (c *Checker) compareActualFormal(ap *[]*symbol.ActualArg, formal []*symbol.Symbol, ranksMustAgree, elemental bool, where *diag.Locus) *diag.Error {
	actual := *ap
	if len(actual) == 0 && len(formal) == 0 {
		return nil
	}
	n := len(formal)
	bound := make([]*symbol.ActualArg, n)
	fi := 0
	for _, a := range actual {
		// Keywords starting with % are g77 extensions such as %VAL.
		if a.Name != "" && a.Name[0] != '%' {
			fi = -1
			for i, f := range formal {
				if f != nil && sameName(f.Name(), a.Name) {
					fi = i
					break
				}
			}
			if fi < 0 {
				return c.errorf(exprAt(where, a.Expr), diag.KindMismatch, "Keyword argument '%s' is not in the procedure", a.Name)
			}
			if bound[fi] != nil {
				return c.errorf(exprAt(where, a.Expr), diag.KindMismatch,
					"Keyword argument '%s' is already associated with another actual argument", a.Name)
			}
		}
		if fi >= n {
			return c.errorf(where, diag.KindMismatch, "More actual than formal arguments in procedure call")
		}
		f := formal[fi]
		switch {
		case f == nil && a.Expr == nil:
			// Alternate return.
		case f == nil:
			return c.errorf(where, diag.KindMismatch, "Missing alternate return spec in subroutine call")
		case a.IsAltReturn():
			return c.errorf(where, diag.KindMismatch, "Unexpected alternate return spec in subroutine call")
		case a.Expr == nil:
			// Placeholder left by an earlier binding.
			if !f.Attr.HasAny(symbol.AttrOptional) {
				return c.errorf(where, diag.KindMismatch, "Missing actual argument for argument '%s'", f.Name())
			}
		default:
			if err := c.checkActual(f, a.Expr, ranksMustAgree, elemental, where); err != nil {
				return err
			}
		}
		bound[fi] = a
		fi++
	}

	// Omitted arguments must be optional.
	for i, f := range formal {
		if bound[i] != nil {
			continue
		}
		if f == nil {
			return c.errorf(where, diag.KindMismatch, "Missing alternate return spec in subroutine call")
		}
		if !f.Attr.HasAny(symbol.AttrOptional) {
			return c.errorf(where, diag.KindMismatch, "Missing actual argument for argument '%s'", f.Name())
		}
	}
	for i, f := range formal {
		if bound[i] == nil {
			bound[i] = &symbol.ActualArg{}
		}
		if a := bound[i]; a.Expr == nil && a.Label == "" && f != nil {
			a.MissingArgType = f.TS.Type
		}
	}
	*ap = bound
	return nil
}

// checkActual checks one actual argument e against its dummy f after the
// parameter rules of compareParameter.
func (c *Checker) checkActual(f *symbol.Symbol, e *symbol.Expr, ranksMustAgree, elemental bool, where *diag.Locus) *diag.Error {
	at := exprAt(where, e)
	fattr := f.Attr
	if e.Kind == symbol.ExprNull && !fattr.HasAny(symbol.AttrPointer) &&
		(fattr.HasAny(symbol.AttrAllocatable) || !fattr.HasAny(symbol.AttrOptional) || !c.Std.Allows(diag.StdF2008)) {
		if fattr.HasAny(symbol.AttrAllocatable) || !fattr.HasAny(symbol.AttrOptional) {
			return c.errorf(where, diag.KindMismatch, "Unexpected NULL() intrinsic to dummy '%s'", f.Name())
		}
		return c.errorf(where, diag.KindStandard, "Fortran 2008: Null pointer to non-pointer dummy '%s'", f.Name())
	}

	if err := c.compareParameter(f, e, ranksMustAgree, elemental, where); err != nil {
		return err
	}

	// TS 29113 6.3p2.
	if f.TS.Type == symbol.TypeAssumed && isDerivedOrClass(e.TS.Type) && e.TS.Derived != nil && e.TS.Derived.HasBindings() {
		return c.errorf(at, diag.KindMismatch,
			"Actual argument to assumed-type dummy is of derived type with type-bound or FINAL procedures")
	}

	// Allocatable, pointer and assumed-shape dummies need the exact string length.
	if e.TS.Type == symbol.TypeCharacter && (fattr.HasAny(symbol.AttrPointer|symbol.AttrAllocatable) || f.HasShape(ast.ArraySpecAssumed)) {
		alen, aok := ast.ConstInt(e.TS.CharLen)
		flen, fok := ast.ConstInt(f.TS.CharLen)
		if aok && fok && alen != flen {
			if fattr.HasAny(symbol.AttrPointer | symbol.AttrAllocatable) {
				return c.warnf(at, diag.KindMismatch,
					"Character length mismatch (%d/%d) between actual argument and pointer or allocatable dummy argument '%s'",
					alen, flen, f.Name())
			}
			return c.warnf(at, diag.KindMismatch,
				"Character length mismatch (%d/%d) between actual argument and assumed-shape dummy argument '%s'",
				alen, flen, f.Name())
		}
	}
	if fattr.HasAny(symbol.AttrPointer|symbol.AttrAllocatable) && f.TS.Deferred != e.TS.Deferred && e.TS.Type == symbol.TypeCharacter {
		return c.errorf(at, diag.KindMismatch,
			"Actual argument to allocatable or pointer dummy argument '%s' must have a deferred length type parameter if and only if the dummy has one",
			f.Name())
	}

	if f.TS.Type != symbol.TypeClass {
		actualSize, formalSize := exprStorageSize(e), symStorageSize(f)
		if actualSize != 0 && actualSize < formalSize && e.TS.Type != symbol.TypeProcedure && f.Flavor() != symbol.FlavorProcedure {
			if e.TS.Type == symbol.TypeCharacter && f.AS == nil {
				return c.warnf(at, diag.KindMismatch,
					"Character length of actual argument shorter than of dummy argument '%s' (%d/%d)", f.Name(), actualSize, formalSize)
			}
			return c.warnf(at, diag.KindMismatch,
				"Actual argument contains too few elements for dummy argument '%s' (%d/%d)", f.Name(), actualSize, formalSize)
		}
	}

	// F2003 12.4.1.3: procedure pointer dummies need procedure pointer actuals.
	if fattr.HasAny(symbol.AttrProcPointer) &&
		!((e.Kind == symbol.ExprVariable && e.Sym.Attr.HasAny(symbol.AttrProcPointer)) ||
			(e.Kind == symbol.ExprFunction && e.Sym != nil && e.Sym.ResultVar().Attr.HasAny(symbol.AttrProcPointer)) ||
			e.ProcPtrComp() != nil) {
		return c.errorf(at, diag.KindMismatch, "Expected a procedure pointer for argument '%s'", f.Name())
	}
	// F2003 12.4.1.2.
	if e.TS.Type != symbol.TypeProcedure && e.ProcPtrComp() == nil && e.Kind == symbol.ExprVariable && f.Flavor() == symbol.FlavorProcedure {
		return c.errorf(at, diag.KindMismatch, "Expected a procedure for argument '%s'", f.Name())
	}

	if f.HasShape(ast.ArraySpecAssumed) && e.Kind == symbol.ExprVariable && e.Sym.HasShape(ast.ArraySpecAssumedSize) &&
		(len(e.Refs) == 0 || (e.Refs[0].Kind == symbol.RefArray && e.Refs[0].Array == symbol.ArrayFull)) {
		return c.errorf(at, diag.KindMismatch, "Actual argument for '%s' cannot be an assumed-size array", f.Name())
	}

	if e.Kind != symbol.ExprNull {
		switch comparePointer(f, e) {
		case pointerMismatch:
			return c.errorf(at, diag.KindMismatch, "Actual argument for '%s' must be a pointer", f.Name())
		case pointerTarget:
			if !c.Std.Allows(diag.StdF2008) {
				return c.errorf(at, diag.KindStandard, "Fortran 2008: Non-pointer actual argument to pointer dummy '%s'", f.Name())
			}
		}
	}

	coindexed := e.IsCoindexed()
	// F2008 C1242.
	if fattr.HasAny(symbol.AttrPointer) && coindexed {
		return c.errorf(at, diag.KindMismatch, "Coindexed actual argument to pointer dummy '%s'", f.Name())
	}
	if e.Kind == symbol.ExprVariable && coindexed {
		// F2008 12.5.2.5.
		if f.Intent != ast.IntentIn && fattr.HasAny(symbol.AttrAllocatable) {
			return c.errorf(at, diag.KindMismatch, "Coindexed actual argument to allocatable dummy '%s' requires INTENT(IN)", f.Name())
		}
		// F2008 C1237.
		if fattr.HasAny(symbol.AttrAsynchronous|symbol.AttrVolatile) && e.Sym.Attr.HasAny(symbol.AttrAsynchronous|symbol.AttrVolatile) {
			return c.errorf(at, diag.KindMismatch,
				"Coindexed ASYNCHRONOUS or VOLATILE actual argument requires that dummy '%s' has neither ASYNCHRONOUS nor VOLATILE",
				f.Name())
		}
		// F2008 12.5.2.4.
		if f.Intent != ast.IntentIn && !fattr.HasAny(symbol.AttrValue) && e.HasUltimateAllocatable() {
			return c.errorf(at, diag.KindMismatch,
				"Coindexed actual argument with allocatable ultimate component to dummy '%s' requires either VALUE or INTENT(IN)",
				f.Name())
		}
	}

	if f.TS.Type == symbol.TypeClass && fattr.HasAny(symbol.AttrAllocatable) {
		if isArray, full := e.IsClassArrayRef(); isArray && !full {
			return c.errorf(at, diag.KindMismatch, "Actual CLASS array argument for '%s' must be a full array", f.Name())
		}
	}

	if e.Kind != symbol.ExprNull && fattr.HasAny(symbol.AttrAllocatable) && !e.Attributes().HasAny(symbol.AttrAllocatable) {
		return c.errorf(at, diag.KindMismatch, "Actual argument for '%s' must be ALLOCATABLE", f.Name())
	}

	if f.Intent == ast.IntentOut || f.Intent == ast.IntentInOut {
		const context = "actual argument to INTENT = OUT/INOUT"
		if fattr.HasAny(symbol.AttrPointer) {
			if err := c.checkVarDefinable(e, true, context, at); err != nil {
				return err
			}
		}
		if err := c.checkVarDefinable(e, false, context, at); err != nil {
			return err
		}
	}

	if (f.Intent == ast.IntentOut || f.Intent == ast.IntentInOut || fattr.HasAny(symbol.AttrVolatile|symbol.AttrAsynchronous)) &&
		e.HasVectorSubscript() {
		return c.errorf(at, diag.KindMismatch,
			"Array-section actual argument with vector subscripts is incompatible with INTENT(OUT), INTENT(INOUT), VOLATILE or ASYNCHRONOUS attribute of the dummy argument '%s'",
			f.Name())
	}

	// F2003 C1232 and C1233.
	if fattr.HasAny(symbol.AttrVolatile) && e.Kind == symbol.ExprVariable {
		assumedShape := f.HasShape(ast.ArraySpecAssumed)
		if e.Sym.HasShape(ast.ArraySpecAssumed) && !assumedShape {
			return c.errorf(at, diag.KindMismatch,
				"Assumed-shape actual argument is incompatible with the non-assumed-shape dummy argument '%s' due to VOLATILE attribute",
				f.Name())
		}
		if len(e.Refs) > 0 && e.Refs[0].Kind == symbol.RefArray && e.Refs[0].Array == symbol.ArraySection && !assumedShape {
			return c.errorf(at, diag.KindMismatch,
				"Array-section actual argument is incompatible with the non-assumed-shape dummy argument '%s' due to VOLATILE attribute",
				f.Name())
		}
		if e.Sym.Attr.HasAny(symbol.AttrPointer) && e.Sym.AS != nil && !(f.AS != nil && (assumedShape || fattr.HasAny(symbol.AttrPointer))) {
			return c.errorf(at, diag.KindMismatch,
				"Pointer-array actual argument requires an assumed-shape or pointer-array dummy argument '%s' due to VOLATILE attribute",
				f.Name())
		}
	}
	return nil
}

type pointerMatch int

const (
	pointerMismatch pointerMatch = iota
	pointerOK
	pointerTarget // Non-pointer target to an INTENT(IN) pointer, allowed since F2008.
)

func comparePointer(f *symbol.Symbol, e *symbol.Expr) pointerMatch {
	if !f.Attr.HasAny(symbol.AttrPointer) {
		return pointerOK
	}
	attr := e.Attributes()
	switch {
	case attr.HasAny(symbol.AttrPointer):
		return pointerOK
	case attr.HasAny(symbol.AttrTarget) && f.Intent == ast.IntentIn:
		return pointerTarget
	}
	return pointerMismatch
}

// compareParameter checks that the actual argument e may be associated
// with the dummy f: type, kind and rank, polymorphism, coarray, contiguity
// and procedure interface rules.
func (c *Checker) compareParameter(f *symbol.Symbol, e *symbol.Expr, ranksMustAgree, elemental bool, where *diag.Locus) *diag.Error {
	at := exprAt(where, e)
	fattr := f.Attr

	// Dummies of type VOID belong to C interoperability helpers and accept anything.
	if f.TS.Type == symbol.TypeVoid {
		return nil
	}
	if f.TS.Type == symbol.TypeDerived && f.TS.Derived != nil && f.TS.Derived.IsISOC &&
		e.TS.Type == symbol.TypeDerived && e.TS.Derived != nil && e.TS.Derived.IsISOC {
		return nil
	}

	if e.TS.Type == symbol.TypeProcedure {
		act := e.Sym
		if f.Flavor() != symbol.FlavorProcedure {
			return c.errorf(at, diag.KindMismatch, "Invalid procedure argument")
		}
		if err := c.compareInterfaces(f, act, act.Name(), false, true, "", ""); err != nil {
			return c.errorf(at, diag.KindMismatch, "Interface mismatch in dummy procedure '%s': %s", f.Name(), err.Msg)
		}
		switch {
		case f.IsFunction() && !act.IsFunction():
			act.Attr |= symbol.AttrFunction
			if act.TS.Type == symbol.TypeUnknown && c.setDefaultType(act) != nil {
				return c.errorf(at, diag.KindMismatch, "Symbol '%s' has no IMPLICIT type", act.Name())
			}
		case f.IsSubroutine() && !act.IsSubroutine():
			act.Attr |= symbol.AttrSubroutine
		}
		return nil
	}

	if ppc := e.ProcPtrComp(); ppc != nil && ppc.TS.Interface != nil {
		if err := c.compareInterfaces(f, ppc.TS.Interface, ppc.Name, false, true, "", ""); err != nil {
			return c.errorf(at, diag.KindMismatch, "Interface mismatch in dummy procedure '%s': %s", f.Name(), err.Msg)
		}
	}

	// F2008 C1241.
	if fattr.HasAll(symbol.AttrPointer|symbol.AttrContiguous) && !e.IsSimplyContiguous(true) {
		return c.errorf(at, diag.KindMismatch, "Actual argument to contiguous pointer dummy '%s' must be simply contiguous", f.Name())
	}

	hollerith := e.TS.Type == symbol.TypeHollerith || e.Hollerith
	if (e.Kind != symbol.ExprNull || e.TS.Type != symbol.TypeUnknown) && !hollerith && f.TS.Type != symbol.TypeAssumed &&
		!c.CompareTypes(f.TS, e.TS) &&
		!(f.TS.Type == symbol.TypeDerived && e.TS.Type == symbol.TypeClass && c.CompareDerivedTypes(f.TS.Derived, e.TS.Derived)) {
		return c.errorf(at, diag.KindMismatch, "Type mismatch in argument '%s'; passed %s to %s", f.Name(), e.TS, f.TS)
	}

	// F2008 12.5.2.5; IR F08/0073.
	if f.TS.Type == symbol.TypeClass && e.Kind != symbol.ExprNull &&
		((fattr.HasAny(symbol.AttrPointer) && f.Intent != ast.IntentIn) || fattr.HasAny(symbol.AttrAllocatable)) {
		if e.TS.Type != symbol.TypeClass {
			return c.errorf(at, diag.KindMismatch, "Actual argument to '%s' must be polymorphic", f.Name())
		}
		if !c.CompareDerivedTypes(e.TS.Derived, f.TS.Derived) {
			return c.errorf(at, diag.KindMismatch, "Actual argument to '%s' must have the same declared type", f.Name())
		}
	}

	// F2008 12.5.2.5.
	if f.IsUnlimitedPolymorphic() && !e.TS.IsUnlimitedPolymorphic() && fattr.HasAny(symbol.AttrAllocatable|symbol.AttrPointer) {
		return c.errorf(at, diag.KindMismatch,
			"Actual argument to '%s' must be unlimited polymorphic since the formal argument is a pointer or allocatable unlimited polymorphic entity [F2008: 12.5.2.5]",
			f.Name())
	}

	codimension := fattr.HasAny(symbol.AttrCodimension) || f.Corank() > 0
	if codimension && !e.IsCoarray() {
		return c.errorf(at, diag.KindMismatch, "Actual argument to '%s' must be a coarray", f.Name())
	}
	// F2008 12.5.2.6.
	if codimension && fattr.HasAny(symbol.AttrAllocatable) && e.Corank() != f.Corank() {
		return c.errorf(at, diag.KindMismatch, "Corank mismatch in argument '%s' (%d and %d)", f.Name(), f.Corank(), e.Corank())
	}
	if codimension {
		// F2008 12.5.2.8.
		if f.Rank() != 0 && (fattr.HasAny(symbol.AttrContiguous) || !f.HasShape(ast.ArraySpecAssumed)) &&
			e.Attributes().HasAny(symbol.AttrDimension) && !e.IsSimplyContiguous(true) {
			return c.errorf(at, diag.KindMismatch, "Actual argument to '%s' must be simply contiguous", f.Name())
		}
		// F2008 C1303 and C1304.
		lock := fattr.HasAny(symbol.AttrLockComp) || (isDerivedOrClass(f.TS.Type) && f.TS.Derived != nil && f.TS.Derived.HasLockComponent())
		if f.Intent != ast.IntentInOut && lock {
			return c.errorf(at, diag.KindMismatch,
				"Actual argument to non-INTENT(INOUT) dummy '%s', which is LOCK_TYPE or has a LOCK_TYPE component", f.Name())
		}
	}

	// F2008 C1239 and C1240.
	if e.Kind == symbol.ExprVariable && e.Sym.Attr.HasAny(symbol.AttrAsynchronous|symbol.AttrVolatile) &&
		fattr.HasAny(symbol.AttrAsynchronous|symbol.AttrVolatile) && e.Rank != 0 && !e.IsSimplyContiguous(true) &&
		((!f.HasShape(ast.ArraySpecAssumed) && !f.HasShape(ast.ArraySpecAssumedRank) && !fattr.HasAny(symbol.AttrPointer)) ||
			fattr.HasAny(symbol.AttrContiguous)) {
		return c.errorf(at, diag.KindMismatch,
			"Dummy argument '%s' has to be a pointer or assumed-shape array without CONTIGUOUS attribute - as actual argument is not simply contiguous and both are ASYNCHRONOUS or VOLATILE",
			f.Name())
	}

	if fattr.HasAny(symbol.AttrAllocatable) && !codimension && e.Attributes().HasAny(symbol.AttrCodimension) {
		if f.Intent == ast.IntentOut {
			return c.errorf(at, diag.KindMismatch, "Passing coarray to allocatable, noncoarray, INTENT(OUT) dummy argument '%s'", f.Name())
		}
		if c.WarnSurprising && f.Intent != ast.IntentIn {
			c.warnf(at, diag.KindMismatch,
				"Passing coarray to allocatable, noncoarray dummy argument '%s', which is invalid if the allocation status is modified",
				f.Name())
		}
	}

	frank := f.Rank()
	if frank == e.Rank || frank == -1 {
		return nil
	}
	if e.TS.Type == symbol.TypeClass && e.Kind == symbol.ExprVariable && e.Sym.AS != nil && e.Sym.AS.Rank == frank {
		return nil
	}

	rankCheck := where != nil && !elemental && (f.HasShape(ast.ArraySpecAssumed) || f.HasShape(ast.ArraySpecDeferred)) &&
		e.Kind != symbol.ExprNull
	dimension := fattr.HasAny(symbol.AttrDimension) || f.AS != nil && f.AS.Rank != 0
	// Scalar and coindexed, see F2008 12.5.2.4.
	if rankCheck || ranksMustAgree ||
		(fattr.HasAny(symbol.AttrPointer) && e.Kind != symbol.ExprNull) ||
		(e.Rank != 0 && !(elemental || dimension)) ||
		(e.Rank == 0 && f.HasShape(ast.ArraySpecAssumed) && e.Kind != symbol.ExprNull) ||
		(e.Rank == 0 && dimension && e.IsCoindexed()) {
		return c.rankMismatch(at, f.Name(), frank, e.Rank)
	}
	if e.Rank != 0 && (elemental || dimension) {
		return nil
	}

	// A scalar is passed to an array. This is valid (F2008 12.5.2.4) for an
	// array element designator or a CHARACTER scalar.
	isPointer := e.Kind == symbol.ExprVariable && e.Sym.Attr.HasAny(symbol.AttrPointer)
	var elem *symbol.Ref
	for i, r := range e.Refs {
		if r.Kind == symbol.RefComponent {
			isPointer = r.Component.Attr.HasAny(symbol.AttrPointer)
			continue
		}
		rest := e.Refs[i+1:]
		if r.Kind == symbol.RefArray && r.Array == symbol.ArrayElement && r.Dimen() > 0 &&
			(len(rest) == 0 || (len(rest) == 1 && rest[0].Kind == symbol.RefSubstring)) {
			elem = r
			break
		}
	}
	elemAssumedShape := elem != nil && elem.AS != nil && elem.AS.Kind == ast.ArraySpecAssumed

	if e.TS.Type == symbol.TypeClass && e.Kind != symbol.ExprNull {
		return c.errorf(at, diag.KindMismatch, "Polymorphic scalar passed to array dummy argument '%s'", f.Name())
	}
	if e.Kind != symbol.ExprNull && elem != nil && e.TS.Type != symbol.TypeCharacter && (isPointer || elemAssumedShape) {
		return c.errorf(at, diag.KindMismatch,
			"Element of assumed-shaped or pointer array passed to array dummy argument '%s'", f.Name())
	}
	if e.TS.Type == symbol.TypeCharacter && e.Kind != symbol.ExprNull && (elem == nil || isPointer || elemAssumedShape) {
		if f.TS.Kind != symbol.DefaultCharacterKind && !c.Std.Allows(diag.StdGNU) {
			return c.errorf(at, diag.KindStandard,
				"Extension: Scalar non-default-kind, non-C_CHAR-kind CHARACTER actual argument with array dummy argument '%s'", f.Name())
		}
		if !c.Std.Allows(diag.StdF2003) {
			return c.errorf(at, diag.KindStandard,
				"Fortran 2003: Scalar CHARACTER actual argument with array dummy argument '%s'", f.Name())
		}
		return nil
	}
	if elem == nil && e.Kind != symbol.ExprNull {
		return c.rankMismatch(at, f.Name(), frank, e.Rank)
	}
	return nil
}

// rankMismatch reports a rank disagreement between dummy name of rank
// frank and an actual argument of rank arank.
func (c *Checker) rankMismatch(at *diag.Locus, name string, frank, arank int) *diag.Error {
	switch {
	case arank == -1:
		// TS 29113 C407b.
		return c.errorf(at, diag.KindMismatch, "The assumed-rank array requires that the dummy argument '%s' has assumed-rank", name)
	case frank == 0:
		return c.errorf(at, diag.KindMismatch, "Rank mismatch in argument '%s' (scalar and rank-%d)", name, arank)
	case arank == 0:
		return c.errorf(at, diag.KindMismatch, "Rank mismatch in argument '%s' (rank-%d and scalar)", name, frank)
	}
	return c.errorf(at, diag.KindMismatch, "Rank mismatch in argument '%s' (rank-%d and rank-%d)", name, frank, arank)
}
