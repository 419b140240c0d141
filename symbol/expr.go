package symbol

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/token"
)

// ExprKind is the kind of a resolved expression.
type ExprKind int

const (
	ExprUnknown  ExprKind = iota
	ExprVariable          // Designator, possibly with references.
	ExprConstant
	ExprFunction // Function reference.
	ExprNull     // NULL() intrinsic.
	ExprOp       // Intrinsic or user-defined operation.
	ExprCompCall // Type-bound procedure call.
	ExprArray    // Array constructor.
)

func (k ExprKind) String() string {
	switch k {
	case ExprVariable:
		return "variable"
	case ExprConstant:
		return "constant"
	case ExprFunction:
		return "function"
	case ExprNull:
		return "null"
	case ExprOp:
		return "op"
	case ExprCompCall:
		return "compcall"
	case ExprArray:
		return "array"
	default:
		return "unknown"
	}
}

// Expr is a resolved expression as seen by argument checking.
type Expr struct {
	Kind  ExprKind
	TS    TypeSpec
	Rank  int
	Where diag.Locus
	// Shape holds the constant extents of an array value without
	// references. Nil if not known.
	Shape []int64
	// Sym is the variable designated or the function referenced.
	Sym  *Symbol
	Refs []*Ref
	// CharValue is the value of a CHARACTER constant.
	CharValue string
	// Hollerith marks a Hollerith constant.
	Hollerith bool

	// Op is the operator of an ExprOp. UserOp is set for token.UserOp.
	Op       token.Token
	UserOp   *UserOp
	Op1, Op2 *Expr

	// Actual is the argument list of a function reference.
	Actual []*ActualArg
	// UserOperator marks a function reference resulting from an operator.
	UserOperator bool

	CompCall *CompCall
}

// CompCall is the target of a type-bound procedure call.
type CompCall struct {
	TBP    *TypeBound
	Name   string
	Actual []*ActualArg
	Base   *Expr
	// IgnorePass suppresses insertion of the passed-object argument since
	// it is already in Actual.
	IgnorePass bool
	Assign     bool
}

// ActualArg is one entry of an actual argument list.
type ActualArg struct {
	// Name is the keyword of a keyword argument.
	Name string
	// Expr is nil for alternate return specifiers and omitted optional arguments.
	Expr *Expr
	// Label is the statement label of an alternate return specifier.
	Label string
	// MissingArgType is the type of the dummy argument an omitted
	// entry stands for.
	MissingArgType BaseType
}

// IsAltReturn reports whether a is an alternate return specifier (*label).
func (a *ActualArg) IsAltReturn() bool { return a.Expr == nil && a.Label != "" }

// RefKind is the kind of a part reference.
type RefKind int

const (
	RefArray RefKind = iota
	RefComponent
	RefSubstring
)

// ArrayRefKind classifies an array reference.
type ArrayRefKind int

const (
	ArrayFull ArrayRefKind = iota
	ArrayElement
	ArraySection
)

// DimenType classifies a subscript of a section or element.
type DimenType int

const (
	DimenElement DimenType = iota // Scalar subscript.
	DimenRange                    // Triplet start:end:stride.
	DimenVector                   // Vector subscript.
)

// Subscript is one subscript of an array reference. For DimenElement only
// Start is used.
type Subscript struct {
	Type               DimenType
	Start, End, Stride ast.Expression
}

// At returns the scalar subscript e.
func At(e ast.Expression) Subscript { return Subscript{Type: DimenElement, Start: e} }

// Range returns the triplet start:end:stride. Any part may be nil.
func Range(start, end, stride ast.Expression) Subscript {
	return Subscript{Type: DimenRange, Start: start, End: end, Stride: stride}
}

// Colon returns the triplet ':'.
func Colon() Subscript { return Subscript{Type: DimenRange} }

// Vector returns a vector subscript.
func Vector() Subscript { return Subscript{Type: DimenVector} }

// Ref is a part reference following a designator.
type Ref struct {
	Kind RefKind

	// Array references.
	Array ArrayRefKind
	// AS is the spec of the referenced array.
	AS   *ast.ArraySpec
	Subs []Subscript
	// Codimen is the number of image selectors.
	Codimen int

	// Component references.
	Component *Component

	// Substring references. Length is the length of the parent string.
	Start, End ast.Expression
	Length     ast.Expression
}

// Dimen returns the number of subscripts of an array reference.
func (r *Ref) Dimen() int { return len(r.Subs) }

// FullRef returns a whole-array reference a(:) without subscripts.
func FullRef() *Ref { return &Ref{Kind: RefArray, Array: ArrayFull} }

// ElementRef returns an array element reference with the given subscripts.
func ElementRef(subs ...ast.Expression) *Ref {
	r := &Ref{Kind: RefArray, Array: ArrayElement}
	for _, s := range subs {
		r.Subs = append(r.Subs, At(s))
	}
	return r
}

// SectionRef returns an array section reference.
func SectionRef(subs ...Subscript) *Ref {
	return &Ref{Kind: RefArray, Array: ArraySection, Subs: subs}
}

// ImageRef returns a coindexed reference x[...] with codimen image selectors.
// Array subscripts of a coindexed element may be added to Subs.
func ImageRef(codimen int) *Ref {
	return &Ref{Kind: RefArray, Array: ArrayElement, Codimen: codimen}
}

// ComponentRef returns a reference to a component.
func ComponentRef(c *Component) *Ref { return &Ref{Kind: RefComponent, Component: c} }

// SubstringRef returns the substring (start:end) of a string of the given length.
func SubstringRef(start, end, length ast.Expression) *Ref {
	return &Ref{Kind: RefSubstring, Start: start, End: end, Length: length}
}

// Variable returns the designator sym followed by refs. Rank and type are
// computed from the references, and array references without a spec take
// the spec of the part they subscript.
func Variable(sym *Symbol, refs ...*Ref) *Expr {
	e := &Expr{Kind: ExprVariable, Sym: sym, TS: sym.TS, Refs: refs, Where: sym.DeclaredAt}
	if len(refs) == 0 {
		e.Rank = sym.Rank()
		e.Shape = constShape(sym.AS)
		return e
	}
	as := sym.AS
	total, pending := 0, sym.Rank()
	for _, r := range refs {
		switch r.Kind {
		case RefComponent:
			total += max(pending, 0)
			as = r.Component.AS
			pending = 0
			if as != nil {
				pending = as.Rank
			}
			e.TS = r.Component.TS
		case RefArray:
			if r.AS == nil {
				r.AS = as
			}
			switch r.Array {
			case ArrayFull:
				if r.AS != nil {
					pending = r.AS.Rank
				}
			case ArrayElement:
				pending = 0
			case ArraySection:
				pending = 0
				for _, s := range r.Subs {
					if s.Type != DimenElement {
						pending++
					}
				}
			}
		}
	}
	e.Rank = total + max(pending, 0)
	return e
}

func constShape(as *ast.ArraySpec) []int64 {
	if as == nil || as.Kind != ast.ArraySpecExplicit {
		return nil
	}
	shape := make([]int64, as.Rank)
	for i := range shape {
		ext, ok := ast.ConstInt(ast.Extent(as.Bounds[i]))
		if !ok {
			return nil
		}
		shape[i] = max(ext+1, 0)
	}
	return shape
}

// Constant returns a constant expression of type ts. A non-nil shape makes
// it an array constant.
func Constant(ts TypeSpec, shape ...int64) *Expr {
	return &Expr{Kind: ExprConstant, TS: ts, Rank: len(shape), Shape: shape}
}

// StringConstant returns a default-kind CHARACTER constant.
func StringConstant(s string) *Expr {
	return &Expr{Kind: ExprConstant, TS: Character(int64(len(s))), CharValue: s}
}

// Null returns NULL(). mold may be nil; otherwise the result takes its type and rank.
func Null(mold *Expr) *Expr {
	e := &Expr{Kind: ExprNull}
	if mold != nil {
		e.TS = mold.TS
		e.Rank = mold.Rank
	}
	return e
}

// FunctionRef returns a reference to function sym with the given actual arguments.
func FunctionRef(sym *Symbol, actual ...*ActualArg) *Expr {
	r := sym.ResultVar()
	return &Expr{Kind: ExprFunction, Sym: sym, TS: r.TS, Rank: r.Rank(), Actual: actual}
}

// Operation returns the intrinsic operation op1 op op2. op2 is nil for unary operators.
func Operation(op token.Token, op1, op2 *Expr) *Expr {
	e := &Expr{Kind: ExprOp, Op: op, Op1: op1, Op2: op2}
	if op1 != nil {
		e.TS, e.Rank = op1.TS, op1.Rank
	}
	if op2 != nil && op2.Rank > e.Rank {
		e.Rank = op2.Rank
	}
	if op.IsRelational() || op.IsLogical() {
		e.TS = Logical()
	}
	return e
}

// IsNullWithoutMold reports whether e is NULL() with no type to infer.
func (e *Expr) IsNullWithoutMold() bool {
	return e.Kind == ExprNull && e.TS.Type == TypeUnknown
}

// Attributes returns the attributes of the entity e designates: those of
// the innermost part reference, adjusted by subscripts. A function reference
// has the attributes of its result. Other expressions have none.
func (e *Expr) Attributes() Attr {
	const varAttrs = AttrPointer | AttrAllocatable | AttrTarget | AttrDimension | AttrCodimension |
		AttrProcPointer | AttrContiguous | AttrVolatile | AttrAsynchronous | AttrOptional |
		AttrFunction | AttrSubroutine | AttrExternal
	switch e.Kind {
	case ExprFunction:
		if e.Sym == nil {
			return 0
		}
		r := e.Sym.ResultVar()
		a := r.Attr & (AttrPointer | AttrAllocatable | AttrDimension | AttrProcPointer | AttrContiguous)
		if r.Rank() != 0 {
			a |= AttrDimension
		}
		if r != e.Sym && e.Sym.Attr.HasAny(AttrProcPointer) {
			a |= AttrProcPointer
		}
		if a.HasAny(AttrPointer) {
			a |= AttrTarget
		}
		return a
	case ExprVariable:
	default:
		return 0
	}
	sym := e.Sym
	a := sym.Attr & varAttrs
	if sym.AS != nil {
		a = a.With(AttrDimension, sym.AS.Rank != 0)
		a = a.With(AttrCodimension, sym.AS.Corank > 0)
	}
	if sym.TS.Derived != nil && sym.TS.Derived.HasLockComponent() {
		a |= AttrLockComp
	}
	target := a.HasAny(AttrTarget | AttrPointer | AttrProcPointer)
	for _, r := range e.Refs {
		switch r.Kind {
		case RefArray:
			switch r.Array {
			case ArrayFull:
				a |= AttrDimension
			case ArraySection:
				a = a.With(AttrPointer|AttrAllocatable, false) | AttrDimension
			case ArrayElement:
				if r.Dimen() > 0 {
					a = a.With(AttrPointer|AttrAllocatable, false)
				}
			}
		case RefComponent:
			c := r.Component
			a = c.Attr & (AttrPointer | AttrAllocatable | AttrDimension | AttrCodimension | AttrProcPointer | AttrContiguous)
			if c.AS != nil {
				a = a.With(AttrDimension, c.AS.Rank != 0)
				a = a.With(AttrCodimension, c.AS.Corank > 0)
			}
			if c.TS.Derived != nil && c.TS.Derived.HasLockComponent() {
				a |= AttrLockComp
			}
		case RefSubstring:
			a = a.With(AttrPointer|AttrAllocatable, false)
		}
		if a.HasAny(AttrPointer | AttrProcPointer) {
			target = true
		}
	}
	return a.With(AttrTarget, target)
}

// Flavor returns the flavor of the designated entity.
func (e *Expr) Flavor() Flavor {
	if e.Kind == ExprVariable && e.Sym != nil {
		for _, r := range e.Refs {
			if r.Kind == RefComponent {
				return FlavorVariable
			}
		}
		return e.Sym.Flavor()
	}
	return FlavorUnknown
}

// IsCoindexed reports whether e references a remote image.
func (e *Expr) IsCoindexed() bool {
	for _, r := range e.Refs {
		if r.Kind == RefArray && r.Codimen > 0 {
			return true
		}
	}
	return false
}

// IsCoarray reports whether e designates a coarray (and not a coindexed object).
func (e *Expr) IsCoarray() bool {
	if e.Kind != ExprVariable || e.Sym == nil {
		return false
	}
	coarray := e.Sym.Corank() > 0 || e.Sym.Attr.HasAny(AttrCodimension)
	for _, r := range e.Refs {
		switch r.Kind {
		case RefComponent:
			c := r.Component
			coarray = c.Attr.HasAny(AttrCodimension) || (c.AS != nil && c.AS.Corank > 0)
		case RefArray:
			if !coarray {
				break
			}
			if r.Codimen > 0 {
				return false
			}
			for _, s := range r.Subs {
				if s.Type != DimenRange {
					coarray = false
					break
				}
			}
		}
	}
	return coarray
}

// Corank returns the corank of the designated entity: that of the last
// component referenced, or of the symbol.
func (e *Expr) Corank() int {
	if e.Sym == nil {
		return 0
	}
	corank := e.Sym.Corank()
	for _, r := range e.Refs {
		if r.Kind == RefComponent {
			corank = 0
			if r.Component.AS != nil {
				corank = r.Component.AS.Corank
			}
		}
	}
	return corank
}

// IsSimplyContiguous reports whether e is simply contiguous. When strict
// is false sections that are contiguous in practice, such as a(lb:ub) with
// the bounds of a, are accepted. A constant stride of 1 is always allowed.
func (e *Expr) IsSimplyContiguous(strict bool) bool {
	if e.Kind == ExprFunction {
		return e.Sym != nil && e.Sym.ResultVar().Attr.HasAny(AttrContiguous)
	}
	if e.Kind != ExprVariable {
		return false
	}
	if e.Rank == 0 {
		return true
	}
	var ar, part *Ref
	for _, r := range e.Refs {
		if ar != nil {
			return false // Array must be the last part reference.
		}
		switch {
		case r.Kind == RefComponent:
			part = r
		case r.Kind == RefSubstring:
			return false
		case r.Array != ArrayElement:
			ar = r
		}
	}
	sym := e.Sym
	if e.TS.Type != TypeClass {
		if part != nil {
			c := part.Component
			if !c.Attr.HasAny(AttrContiguous) && c.Attr.HasAny(AttrPointer) {
				return false
			}
		} else if !sym.Attr.HasAny(AttrContiguous) &&
			(sym.Attr.HasAny(AttrPointer) || sym.HasShape(ast.ArraySpecAssumedRank) || sym.HasShape(ast.ArraySpecAssumed)) {
			return false
		}
	}
	if ar == nil || ar.Array == ArrayFull {
		return true
	}
	colon := true
	for i, s := range ar.Subs {
		switch s.Type {
		case DimenVector:
			return false
		case DimenElement:
			colon = false
			continue
		}
		if !colon && (strict || s.Start == nil || s.End == nil || ast.Compare(s.Start, s.End) != ast.Equal) {
			return false
		}
		if s.Stride != nil {
			if v, ok := ast.ConstInt(s.Stride); !ok || v != 1 {
				return false
			}
		}
		var bound ast.ArrayBound
		if ar.AS != nil && i < len(ar.AS.Bounds) {
			bound = ar.AS.Bounds[i]
		}
		if s.Start != nil && (strict || !sameConst(s.Start, bound.Lower)) {
			colon = false
		}
		if s.End != nil && (strict || !sameConst(s.End, bound.Upper)) {
			colon = false
		}
	}
	return true
}

func sameConst(a, b ast.Expression) bool {
	va, ok := ast.ConstInt(a)
	if !ok {
		return false
	}
	vb, ok := ast.ConstInt(b)
	return ok && va == vb
}

// HasVectorSubscript reports whether e is an array section with a vector subscript.
func (e *Expr) HasVectorSubscript() bool {
	if e == nil || e.Rank == 0 || e.Kind != ExprVariable {
		return false
	}
	for _, r := range e.Refs {
		if r.Kind == RefArray && r.Array == ArraySection {
			for _, s := range r.Subs {
				if s.Type == DimenVector {
					return true
				}
			}
		}
	}
	return false
}

// HasUltimateAllocatable reports whether the type of the designated
// entity has an allocatable ultimate component.
func (e *Expr) HasUltimateAllocatable() bool {
	if e.Kind != ExprVariable {
		return false
	}
	var last *Ref
	for _, r := range e.Refs {
		if r.Kind == RefComponent {
			last = r
		}
	}
	ts := e.TS
	if last != nil {
		ts = last.Component.TS
	}
	if (ts.Type == TypeDerived || ts.Type == TypeClass) && ts.Derived != nil {
		return ts.Derived.HasAllocatableComponent()
	}
	return false
}

// ProcPtrComp returns the procedure pointer component e references, or nil.
func (e *Expr) ProcPtrComp() *Component {
	if e.Kind != ExprVariable && e.Kind != ExprFunction || len(e.Refs) == 0 {
		return nil
	}
	last := e.Refs[len(e.Refs)-1]
	if last.Kind == RefComponent && last.Component.Attr.HasAny(AttrProcPointer) {
		return last.Component
	}
	return nil
}

// IsClassArrayRef reports whether e is a polymorphic array. full is set
// when e designates the whole array.
func (e *Expr) IsClassArrayRef() (isArray, full bool) {
	if e.Kind != ExprVariable || e.TS.Type != TypeClass || e.Rank == 0 {
		return false, false
	}
	if len(e.Refs) == 0 {
		return true, true
	}
	last := e.Refs[len(e.Refs)-1]
	if last.Kind == RefComponent {
		return true, true
	}
	return true, last.Kind == RefArray && last.Array == ArrayFull
}

// CodeOp is the kind of an executable statement.
type CodeOp int

const (
	CodeAssign     CodeOp = iota // Intrinsic assignment.
	CodeAssignCall               // Defined assignment by subroutine call.
	CodeCompCall                 // Type-bound defined assignment.
)

// Code is an assignment statement, possibly rewritten as a call.
type Code struct {
	Op           CodeOp
	Expr1, Expr2 *Expr
	// Sym is the subroutine of a CodeAssignCall.
	Sym    *Symbol
	Actual []*ActualArg
	Loc    diag.Locus
}
