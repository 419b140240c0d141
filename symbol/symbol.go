// Package symbol provides the symbol, type and expression model consumed by
// the interface checker: symbols with their declared attributes, derived
// types with their type-bound bindings, namespaces holding generic and
// operator interface lists, and actual-argument expressions.
package symbol

import (
	"fmt"

	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/token"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Attr is the set of declared attributes of a symbol or component.
type Attr uint64

const (
	AttrOptional Attr = 1 << iota
	AttrPointer
	AttrAllocatable
	AttrTarget
	AttrValue
	AttrVolatile
	AttrAsynchronous
	AttrContiguous
	AttrCodimension
	AttrDimension
	AttrProcPointer
	AttrFunction
	AttrSubroutine
	AttrPure
	AttrElemental
	AttrExternal
	AttrDummy
	AttrGeneric
	AttrUseAssoc
	AttrReferenced
	AttrModProc   // Declared in a MODULE PROCEDURE statement.
	AttrProcedure // Declared in a PROCEDURE statement.
	AttrInCommon
	AttrLockComp
	AttrISOC // Procedure from ISO_C_BINDING.
	AttrAbstract
	// AttrImplicit marks a type that came from implicit typing rules.
	AttrImplicit
)

func (f Attr) HasAny(hasBits Attr) bool { return f&hasBits != 0 }
func (f Attr) HasAll(hasBits Attr) bool { return f&hasBits == hasBits }
func (f Attr) With(mask Attr, setBits bool) Attr {
	if setBits {
		return f | mask
	} else {
		return f &^ mask
	}
}

// Flavor classifies what kind of entity a symbol represents
type Flavor int

const (
	FlavorUnknown   Flavor = iota
	FlavorVariable         // Regular variable
	FlavorParameter        // Named constant (PARAMETER attribute)
	FlavorProcedure        // Function or subroutine
	FlavorDerived          // User-defined TYPE
	FlavorModule           // Module
	FlavorProgram          // Main program
)

// String returns the string representation of Flavor
func (fl Flavor) String() string {
	switch fl {
	case FlavorVariable:
		return "Variable"
	case FlavorParameter:
		return "Parameter"
	case FlavorProcedure:
		return "Procedure"
	case FlavorDerived:
		return "DerivedType"
	case FlavorModule:
		return "Module"
	case FlavorProgram:
		return "Program"
	default:
		return "Unknown"
	}
}

// IfSource tells where the interface of a procedure comes from.
type IfSource int

const (
	IfSourceUnknown IfSource = iota // Implicit interface.
	IfSourceDecl                    // Procedure definition.
	IfSourceIfBody                  // Interface body.
)

func (src IfSource) String() string {
	switch src {
	case IfSourceDecl:
		return "decl"
	case IfSourceIfBody:
		return "interface-body"
	default:
		return "unknown"
	}
}

// ProcKind is the kind of procedure a symbol is.
type ProcKind int

const (
	ProcUnknown ProcKind = iota
	ProcModule
	ProcInternal
	ProcExternal
	ProcDummy
	ProcIntrinsic
	ProcStatementFunction
)

func (pk ProcKind) String() string {
	switch pk {
	case ProcModule:
		return "module"
	case ProcInternal:
		return "internal"
	case ProcExternal:
		return "external"
	case ProcDummy:
		return "dummy"
	case ProcIntrinsic:
		return "intrinsic"
	case ProcStatementFunction:
		return "statement-function"
	default:
		return "unknown"
	}
}

// Symbol represents a declared entity (variable, procedure, type, etc.)
type Symbol struct {
	name   string // Symbol name (case-insensitive in Fortran)
	flavor Flavor

	TS     TypeSpec
	AS     *ast.ArraySpec // Array dimensions (nil if not an array)
	Attr   Attr
	Intent ast.IntentType
	Access Access

	IfSource IfSource
	Proc     ProcKind
	// Formal is the dummy argument list of a procedure. A nil entry is an
	// alternate return placeholder (*).
	Formal []*Symbol
	// Result is the result variable of a function declared with RESULT(name).
	Result *Symbol
	// Generic is the list of specific procedures of a generic name.
	Generic []*Interface
	// Module is the name of the module the symbol was declared in, empty otherwise.
	Module string
	// Derived is the type definition of a FlavorDerived symbol.
	Derived *DerivedType

	NS         *Namespace // Namespace where this symbol is defined
	DeclaredAt diag.Locus
}

// NewSymbol creates a new symbol with the given name and flavor
func NewSymbol(name string, flavor Flavor) *Symbol {
	return &Symbol{
		name:   name,
		flavor: flavor,
	}
}

// Name returns the symbol name
func (s *Symbol) Name() string {
	return s.name
}

// Flavor returns the symbol flavor
func (s *Symbol) Flavor() Flavor {
	return s.flavor
}

// SetFlavor changes the flavor, used when resolution learns what an entity is.
func (s *Symbol) SetFlavor(fl Flavor) {
	s.flavor = fl
}

// IsFunction reports whether the symbol is known to be a function.
func (s *Symbol) IsFunction() bool { return s.Attr.HasAny(AttrFunction) }

// IsSubroutine reports whether the symbol is known to be a subroutine.
func (s *Symbol) IsSubroutine() bool { return s.Attr.HasAny(AttrSubroutine) }

// Rank returns the declared rank, -1 for assumed rank.
func (s *Symbol) Rank() int {
	if s.AS == nil {
		return 0
	}
	if s.AS.Kind == ast.ArraySpecAssumedRank {
		return -1
	}
	return s.AS.Rank
}

// Corank returns the declared corank.
func (s *Symbol) Corank() int {
	if s.AS == nil {
		return 0
	}
	return s.AS.Corank
}

// HasShape reports whether the array spec of s is of the given kind.
func (s *Symbol) HasShape(kind ast.ArraySpecKind) bool {
	return s.AS != nil && s.AS.Kind == kind
}

// IsUnlimitedPolymorphic reports whether s is declared CLASS(*).
func (s *Symbol) IsUnlimitedPolymorphic() bool {
	return s != nil && s.TS.IsUnlimitedPolymorphic()
}

// DummyArgs returns the dummy arguments of a procedure, taken from its
// declared interface if the procedure itself has none.
func (s *Symbol) DummyArgs() []*Symbol {
	if s.Formal == nil && s.TS.Interface != nil {
		return s.TS.Interface.Formal
	}
	return s.Formal
}

// ResultVar returns the symbol that carries the function result
// characteristics: the result of the declared interface, the RESULT
// variable or s itself.
func (s *Symbol) ResultVar() *Symbol {
	if s.TS.Interface != nil && s.TS.Interface.Result != nil {
		return s.TS.Interface.Result
	}
	if s.Result != nil {
		return s.Result
	}
	return s
}

// Interface is one entry in a generic, user-operator or intrinsic-operator
// interface list.
type Interface struct {
	Sym   *Symbol
	Where diag.Locus
}

// UserOp is a user-defined operator (.name.) and the interfaces extending it.
type UserOp struct {
	Name   string
	Ops    []*Interface
	Access Access
}

// Namespace represents a scoping unit with its symbols and operator interfaces.
type Namespace struct {
	parent  *Namespace
	symbols map[string]*Symbol // Case-insensitive keys
	userOps map[string]*UserOp

	// Ops holds the interfaces for intrinsic operators and assignment,
	// indexed by operator token. Unary plus and minus share the binary slots.
	Ops      [token.NumTokens][]*Interface
	Implicit *ImplicitRules
	// Proc is the program unit or procedure owning the namespace.
	Proc *Symbol
}

// NewNamespace creates a namespace contained in parent, inheriting its implicit rules.
// A nil parent creates a root namespace with default implicit rules.
func NewNamespace(parent *Namespace) *Namespace {
	ns := &Namespace{
		parent:  parent,
		symbols: make(map[string]*Symbol),
		userOps: make(map[string]*UserOp),
	}
	if parent != nil {
		ns.Implicit = parent.Implicit.Copy()
	} else {
		ns.Implicit = DefaultImplicitRules()
	}
	return ns
}

// Parent returns the host namespace (nil for a root namespace)
func (ns *Namespace) Parent() *Namespace {
	return ns.parent
}

// Lookup searches for a symbol in this namespace and its hosts
func (ns *Namespace) Lookup(name string) *Symbol {
	name = ast.NormalizeName(name)
	for scope := ns; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal searches for a symbol only in this namespace
func (ns *Namespace) LookupLocal(name string) *Symbol {
	return ns.symbols[ast.NormalizeName(name)]
}

// Define adds a symbol to this namespace
func (ns *Namespace) Define(sym *Symbol) error {
	name := ast.NormalizeName(sym.Name())
	if _, ok := ns.symbols[name]; ok {
		return fmt.Errorf("symbol %s already defined in namespace", sym.Name())
	}
	sym.NS = ns
	ns.symbols[name] = sym
	return nil
}

// Symbols returns the symbols of the namespace sorted by normalized name.
func (ns *Namespace) Symbols() []*Symbol {
	keys := maps.Keys(ns.symbols)
	slices.Sort(keys)
	syms := make([]*Symbol, len(keys))
	for i, k := range keys {
		syms[i] = ns.symbols[k]
	}
	return syms
}

// UserOp returns the user operator named name declared in this namespace, or nil.
func (ns *Namespace) UserOp(name string) *UserOp {
	return ns.userOps[ast.NormalizeName(name)]
}

// GetUserOp returns the user operator named name, creating it if needed.
func (ns *Namespace) GetUserOp(name string) *UserOp {
	key := ast.NormalizeName(name)
	uop := ns.userOps[key]
	if uop == nil {
		uop = &UserOp{Name: name}
		ns.userOps[key] = uop
	}
	return uop
}

// UserOps returns the user operators of the namespace sorted by normalized name.
func (ns *Namespace) UserOps() []*UserOp {
	keys := maps.Keys(ns.userOps)
	slices.Sort(keys)
	uops := make([]*UserOp, len(keys))
	for i, k := range keys {
		uops[i] = ns.userOps[k]
	}
	return uops
}

// Procedure returns the innermost procedure whose scope contains ns, or nil.
func (ns *Namespace) Procedure() *Symbol {
	for scope := ns; scope != nil; scope = scope.parent {
		if scope.Proc != nil && scope.Proc.Flavor() == FlavorProcedure {
			return scope.Proc
		}
	}
	return nil
}

// Pure reports whether code in ns is inside a PURE or ELEMENTAL procedure.
func (ns *Namespace) Pure() bool {
	proc := ns.Procedure()
	return proc != nil && proc.Attr.HasAny(AttrPure|AttrElemental)
}

// ImpureVariable reports whether sym may not be defined from a PURE
// procedure executing in ns: it is use or host associated, in COMMON, or an
// INTENT(IN) dummy of a pure procedure.
func (ns *Namespace) ImpureVariable(sym *Symbol) bool {
	if sym.Attr.HasAny(AttrUseAssoc | AttrInCommon) {
		return true
	}
	for scope := ns; scope != nil; scope = scope.parent {
		if scope == sym.NS {
			break
		}
		if scope.Proc != nil && scope.Proc.Flavor() == FlavorProcedure && !sym.IsFunction() {
			return true
		}
	}
	if sym.NS == nil {
		return false
	}
	proc := sym.NS.Proc
	if sym.Attr.HasAny(AttrDummy) && proc != nil && proc.Attr.HasAny(AttrPure|AttrElemental) &&
		((proc.IsSubroutine() && sym.Intent == ast.IntentIn) || proc.IsFunction()) {
		return true
	}
	return false
}

// DefaultType returns the implicit type of name in ns, which is of type
// [TypeUnknown] if no implicit rule applies.
func (ns *Namespace) DefaultType(name string) TypeSpec {
	for scope := ns; scope != nil; scope = scope.parent {
		if scope.Implicit != nil {
			ts, err := ApplyImplicitType(name, scope.Implicit)
			if err != nil {
				return TypeSpec{}
			}
			return ts
		}
	}
	return TypeSpec{}
}

// SetDefaultType gives sym its implicit type. It fails if no implicit rule applies.
func (ns *Namespace) SetDefaultType(sym *Symbol) error {
	ts := ns.DefaultType(sym.Name())
	if ts.Type == TypeUnknown {
		return fmt.Errorf("symbol '%s' has no IMPLICIT type", sym.Name())
	}
	sym.TS = ts
	sym.Attr |= AttrImplicit
	return nil
}
