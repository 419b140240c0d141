package symbol

import (
	"strconv"

	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/token"
)

// BaseType is the tag of a [TypeSpec].
type BaseType int

const (
	TypeUnknown BaseType = iota
	TypeInteger
	TypeReal
	TypeComplex
	TypeLogical
	TypeCharacter
	TypeDerived   // TYPE(name)
	TypeClass     // CLASS(name) or CLASS(*)
	TypeProcedure // a procedure used as an actual argument
	TypeHollerith
	TypeVoid    // matches any type, used by C interoperability helpers.
	TypeAssumed // TYPE(*)
)

func (bt BaseType) String() string {
	switch bt {
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	case TypeComplex:
		return "COMPLEX"
	case TypeLogical:
		return "LOGICAL"
	case TypeCharacter:
		return "CHARACTER"
	case TypeDerived:
		return "TYPE"
	case TypeClass:
		return "CLASS"
	case TypeProcedure:
		return "PROCEDURE"
	case TypeHollerith:
		return "HOLLERITH"
	case TypeVoid:
		return "VOID"
	case TypeAssumed:
		return "TYPE(*)"
	default:
		return "UNKNOWN"
	}
}

// IsNumeric returns true for INTEGER, REAL and COMPLEX.
func (bt BaseType) IsNumeric() bool {
	return bt == TypeInteger || bt == TypeReal || bt == TypeComplex
}

// Default kind parameters.
const (
	DefaultIntegerKind   = 4
	DefaultRealKind      = 4
	DefaultLogicalKind   = 4
	DefaultCharacterKind = 1
)

// TypeSpec is a declared or computed type.
type TypeSpec struct {
	Type BaseType
	Kind int
	// CharLen is the length of a CHARACTER entity; nil for assumed (*) or
	// deferred (:) length.
	CharLen ast.Expression
	// Deferred is set for CHARACTER(LEN=:).
	Deferred bool
	// Derived is the declared type of TYPE and CLASS entities. Nil for CLASS(*).
	Derived *DerivedType
	// Interface is the interface symbol of a procedure declared by
	// PROCEDURE(iface) or of a procedure pointer component.
	Interface *Symbol
}

// IsUnlimitedPolymorphic reports whether ts is CLASS(*).
func (ts TypeSpec) IsUnlimitedPolymorphic() bool {
	return ts.Type == TypeClass && ts.Derived == nil
}

// IsNumeric returns true for numeric types.
func (ts TypeSpec) IsNumeric() bool { return ts.Type.IsNumeric() }

// String returns the type name as it appears in diagnostics, e.g. INTEGER(4) or TYPE(point).
func (ts TypeSpec) String() string {
	switch ts.Type {
	case TypeInteger, TypeReal, TypeComplex, TypeLogical, TypeCharacter:
		b := append([]byte(ts.Type.String()), '(')
		b = strconv.AppendInt(b, int64(ts.Kind), 10)
		return string(append(b, ')'))
	case TypeDerived:
		return "TYPE(" + ts.Derived.Name + ")"
	case TypeClass:
		if ts.Derived == nil {
			return "CLASS(*)"
		}
		return "CLASS(" + ts.Derived.Name + ")"
	}
	return ts.Type.String()
}

// Scalar type constructors of default kind.
func Integer() TypeSpec { return TypeSpec{Type: TypeInteger, Kind: DefaultIntegerKind} }
func Real() TypeSpec    { return TypeSpec{Type: TypeReal, Kind: DefaultRealKind} }
func Complex() TypeSpec { return TypeSpec{Type: TypeComplex, Kind: DefaultRealKind} }
func Logical() TypeSpec { return TypeSpec{Type: TypeLogical, Kind: DefaultLogicalKind} }

// Character returns a default-kind CHARACTER type of constant length n.
func Character(n int64) TypeSpec {
	return TypeSpec{Type: TypeCharacter, Kind: DefaultCharacterKind, CharLen: ast.Int(n)}
}

// Type returns TYPE(dt).
func Type(dt *DerivedType) TypeSpec { return TypeSpec{Type: TypeDerived, Derived: dt} }

// Class returns CLASS(dt), or CLASS(*) when dt is nil.
func Class(dt *DerivedType) TypeSpec { return TypeSpec{Type: TypeClass, Derived: dt} }

// Access is the accessibility of an entity or binding.
type Access int

const (
	AccessUnknown Access = iota
	AccessPublic
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "PUBLIC"
	case AccessPrivate:
		return "PRIVATE"
	}
	return "UNKNOWN"
}

// Component is a field of a derived type.
type Component struct {
	Name   string
	TS     TypeSpec
	AS     *ast.ArraySpec
	Attr   Attr // Pointer, Allocatable, Dimension, Codimension, Contiguous, ProcPointer.
	Access Access
}

// DerivedType describes a TYPE definition.
type DerivedType struct {
	Name string
	// Module is the name of the module that defines the type, empty if not in a module.
	Module     string
	Components []*Component
	Sequence   bool
	BindC      bool
	// PrivateComponents is set by a PRIVATE statement in the component part.
	PrivateComponents bool
	// IsISOC marks the C_PTR and C_FUNPTR types of ISO_C_BINDING.
	IsISOC bool
	// LockType marks LOCK_TYPE of ISO_FORTRAN_ENV.
	LockType bool
	// UseAssoc is set when the type is accessed by use association.
	UseAssoc bool
	// Parent is the extended type, nil if the type is not an extension.
	Parent *DerivedType

	// Bindings are the type-bound procedures by name.
	Bindings map[string]*TypeBound
	// OpBindings are the type-bound GENERIC bindings of intrinsic operators and assignment.
	OpBindings [token.NumTokens]*TypeBound
	// UserOpBindings are the type-bound GENERIC bindings of user operators by name.
	UserOpBindings map[string]*TypeBound
	// Finalizers lists the FINAL procedures.
	Finalizers []*Symbol
}

// Component returns the component named name or nil.
func (dt *DerivedType) Component(name string) *Component {
	name = ast.NormalizeName(name)
	for _, c := range dt.Components {
		if ast.NormalizeName(c.Name) == name {
			return c
		}
	}
	return nil
}

// IsExtensionOf reports whether dt is base or an extension of it.
func (dt *DerivedType) IsExtensionOf(base *DerivedType, equal func(a, b *DerivedType) bool) bool {
	for t := dt; t != nil; t = t.Parent {
		if equal(base, t) {
			return true
		}
	}
	return false
}

// HasBindings reports whether the type has type-bound procedures or FINAL procedures.
func (dt *DerivedType) HasBindings() bool {
	if len(dt.Finalizers) > 0 || len(dt.Bindings) > 0 || len(dt.UserOpBindings) > 0 {
		return true
	}
	for _, tb := range dt.OpBindings {
		if tb != nil {
			return true
		}
	}
	return false
}

// HasAllocatableComponent reports whether some ultimate component of the type is allocatable.
func (dt *DerivedType) HasAllocatableComponent() bool {
	return dt.hasAllocComp(make(map[*DerivedType]bool))
}

func (dt *DerivedType) hasAllocComp(seen map[*DerivedType]bool) bool {
	if seen[dt] {
		return false
	}
	seen[dt] = true
	for _, c := range dt.Components {
		if c.Attr.HasAny(AttrAllocatable) {
			return true
		}
		if c.Attr.HasAny(AttrPointer) {
			continue
		}
		if (c.TS.Type == TypeDerived || c.TS.Type == TypeClass) && c.TS.Derived != nil && c.TS.Derived.hasAllocComp(seen) {
			return true
		}
	}
	return dt.Parent != nil && dt.Parent.hasAllocComp(seen)
}

// HasLockComponent reports whether the type is LOCK_TYPE or has a LOCK_TYPE component.
func (dt *DerivedType) HasLockComponent() bool {
	return dt.hasLockComp(make(map[*DerivedType]bool))
}

func (dt *DerivedType) hasLockComp(seen map[*DerivedType]bool) bool {
	if dt.LockType {
		return true
	}
	if seen[dt] {
		return false
	}
	seen[dt] = true
	for _, c := range dt.Components {
		if c.TS.Type == TypeDerived && c.TS.Derived != nil && !c.Attr.HasAny(AttrPointer) && c.TS.Derived.hasLockComp(seen) {
			return true
		}
	}
	return false
}

// FindOpBinding looks up the type-bound binding of intrinsic operator op
// through the extension chain. ok is false when the binding found is PRIVATE
// in a use-associated type and therefore not visible.
func (dt *DerivedType) FindOpBinding(op token.Token) (tb *TypeBound, ok bool) {
	for t := dt; t != nil; t = t.Parent {
		if b := t.OpBindings[op]; b != nil {
			return b, !(b.Access == AccessPrivate && t.UseAssoc)
		}
	}
	return nil, true
}

// FindUserOpBinding is like [DerivedType.FindOpBinding] for user operators.
func (dt *DerivedType) FindUserOpBinding(name string) (tb *TypeBound, ok bool) {
	name = ast.NormalizeName(name)
	for t := dt; t != nil; t = t.Parent {
		for key, b := range t.UserOpBindings {
			if ast.NormalizeName(key) == name {
				return b, !(b.Access == AccessPrivate && t.UseAssoc)
			}
		}
	}
	return nil, true
}

// TypeBound is a type-bound procedure binding, either specific or GENERIC.
type TypeBound struct {
	// Name is the binding name.
	Name string
	// Specific is the target procedure of a specific binding.
	Specific *Symbol
	// Generic lists the specific bindings of a GENERIC binding.
	Generic   []*TypeBound
	IsGeneric bool

	Deferred       bool
	NonOverridable bool
	NoPass         bool
	// PassArg is the name given in PASS(name), empty for the first argument.
	PassArg string
	Access  Access
	// Function is set when the binding target is a function.
	Function bool
	// Error marks a binding that failed resolution and must be skipped.
	Error bool
	// Overridden is the binding of the parent type this one overrides.
	Overridden *TypeBound
	Where      diag.Locus
}
