package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

// CheckTypeboundOverride checks that the specific binding proc may override
// the binding old of the parent type (F2008 4.5.7.3). Errors are reported
// at proc.
func (c *Checker) CheckTypeboundOverride(proc, old *symbol.TypeBound) error {
	return asError(c.checkOverride(proc, old))
}

func (c *Checker) checkOverride(proc, old *symbol.TypeBound) *diag.Error {
	if proc.IsGeneric {
		diag.Internalf(proc, "override check of GENERIC binding '%s'", proc.Name)
	}
	where := &proc.Where
	if old.IsGeneric {
		return c.errorf(where, diag.KindOverride, "Can't overwrite GENERIC '%s'", old.Name)
	}
	pt, ot := proc.Specific, old.Specific
	if pt == nil || ot == nil {
		diag.Internalf(proc, "override check of unresolved binding '%s'", proc.Name)
	}

	switch {
	case old.NonOverridable:
		return c.errorf(where, diag.KindOverride, "'%s' overrides a procedure binding declared NON_OVERRIDABLE", proc.Name)
	case !old.Deferred && proc.Deferred:
		return c.errorf(where, diag.KindOverride, "'%s' must not be DEFERRED as it overrides a non-DEFERRED binding", proc.Name)
	case ot.Attr.HasAny(symbol.AttrPure) && !pt.Attr.HasAny(symbol.AttrPure):
		return c.errorf(where, diag.KindOverride, "'%s' overrides a PURE procedure and must also be PURE", proc.Name)
	case ot.Attr.HasAny(symbol.AttrElemental) && !pt.Attr.HasAny(symbol.AttrElemental):
		return c.errorf(where, diag.KindOverride, "'%s' overrides an ELEMENTAL procedure and must also be ELEMENTAL", proc.Name)
	case !ot.Attr.HasAny(symbol.AttrElemental) && pt.Attr.HasAny(symbol.AttrElemental):
		return c.errorf(where, diag.KindOverride,
			"'%s' overrides a non-ELEMENTAL procedure and must not be ELEMENTAL, either", proc.Name)
	case ot.IsSubroutine() && !pt.IsSubroutine():
		return c.errorf(where, diag.KindOverride, "'%s' overrides a SUBROUTINE and must also be a SUBROUTINE", proc.Name)
	}
	if ot.IsFunction() {
		if !pt.IsFunction() {
			return c.errorf(where, diag.KindOverride, "'%s' overrides a FUNCTION and must also be a FUNCTION", proc.Name)
		}
		if err := c.checkResultCharacteristics(pt, ot); err != nil {
			return c.errorf(where, diag.KindOverride, "Result mismatch for the overriding procedure '%s': %s", proc.Name, err.Msg)
		}
	}
	if old.Access == symbol.AccessPublic && proc.Access == symbol.AccessPrivate {
		return c.errorf(where, diag.KindOverride, "'%s' overrides a PUBLIC procedure and must not be PRIVATE", proc.Name)
	}

	// Walking the dummies also finds the positions of the passed-object
	// dummies; the overridden binding may name its PASS argument.
	procPass, oldPass := 0, 0
	if !proc.NoPass && proc.PassArg == "" {
		procPass = 1
	}
	if !old.NoPass && old.PassArg == "" {
		oldPass = 1
	}
	pf, of := pt.DummyArgs(), ot.DummyArgs()
	n := min(len(pf), len(of))
	for i := 0; i < n; i++ {
		argpos := i + 1
		pa, oa := pf[i], of[i]
		if pa == nil || oa == nil {
			if pa != oa {
				return c.errorf(where, diag.KindOverride,
					"Dummy argument '%s' of '%s' should be named '%s' as to match the corresponding argument of the overridden procedure",
					altName(pa), proc.Name, altName(oa))
			}
			continue
		}
		if proc.PassArg != "" && sameName(proc.PassArg, pa.Name()) {
			procPass = argpos
		}
		if old.PassArg != "" && sameName(old.PassArg, oa.Name()) {
			oldPass = argpos
		}
		if !sameName(pa.Name(), oa.Name()) {
			return c.errorf(where, diag.KindOverride,
				"Dummy argument '%s' of '%s' should be named '%s' as to match the corresponding argument of the overridden procedure",
				pa.Name(), proc.Name, oa.Name())
		}
		checkType := procPass != argpos && oldPass != argpos
		if err := c.checkDummyCharacteristics(pa, oa, checkType); err != nil {
			return c.errorf(where, diag.KindOverride, "Argument mismatch for the overriding procedure '%s': %s", proc.Name, err.Msg)
		}
	}
	if len(pf) != len(of) {
		return c.errorf(where, diag.KindOverride,
			"'%s' must have the same number of formal arguments as the overridden procedure", proc.Name)
	}

	if old.NoPass && !proc.NoPass {
		return c.errorf(where, diag.KindOverride, "'%s' overrides a NOPASS binding and must also be NOPASS", proc.Name)
	}
	if !old.NoPass {
		if proc.NoPass {
			return c.errorf(where, diag.KindOverride, "'%s' overrides a binding with PASS and must also be PASS", proc.Name)
		}
		if procPass != oldPass {
			return c.errorf(where, diag.KindOverride,
				"Passed-object dummy argument of '%s' must be at the same position as the passed-object dummy argument of the overridden procedure",
				proc.Name)
		}
	}
	return nil
}

// altName names a dummy in messages, * for an alternate return.
func altName(s *symbol.Symbol) string {
	if s == nil {
		return "*"
	}
	return s.Name()
}
