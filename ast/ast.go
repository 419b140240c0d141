// Package ast holds the specification expressions that appear in declarations
// checked for interface compatibility: array bounds, character lengths and
// kind parameters, together with array specifications and INTENT.
package ast

import (
	"strconv"

	"github.com/soypat/go-fortran-interfaces/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Node is a specification expression node. AppendString renders it in
// Fortran syntax; the rendering of opaque terms doubles as their identity
// in [Compare].
type Node interface {
	AppendString(dst []byte) []byte
}

// Expression is a Node usable as a bound, length or kind value.
type Expression interface {
	Node
	expressionNode()
}

// NormalizeName returns the case-folded form of a Fortran name.
// Fortran names are case-insensitive; all lookups go through this function.
func NormalizeName(name string) string {
	return cases.Upper(language.Und).String(name)
}

// ArraySpecKind represents the kind of array specification
type ArraySpecKind int

const (
	ArraySpecExplicit    ArraySpecKind = iota // Explicit shape: (1:10, 1:20)
	ArraySpecAssumed                          // Assumed shape: (:, :)
	ArraySpecDeferred                         // Deferred shape: (:) with ALLOCATABLE/POINTER
	ArraySpecAssumedSize                      // Assumed size: (*) - F77 style
	ArraySpecAssumedRank                      // Assumed rank: (..)
)

func (ask ArraySpecKind) String() string {
	switch ask {
	case ArraySpecExplicit:
		return "explicit"
	case ArraySpecAssumed:
		return "assumed"
	case ArraySpecDeferred:
		return "deferred"
	case ArraySpecAssumedSize:
		return "assumed-size"
	case ArraySpecAssumedRank:
		return "assumed-rank"
	default:
		return "unknown"
	}
}

// ArrayBound represents a single dimension's bounds (lower:upper)
// For explicit shape: Lower and/or Upper are Expression nodes
// For assumed shape (:): Lower and Upper are nil
// For assumed size (*): Upper is nil in the last dimension
type ArrayBound struct {
	Lower Expression // Lower bound expression (nil means 1 or omitted)
	Upper Expression
}

// ArraySpec represents array and coarray dimension specification.
type ArraySpec struct {
	Kind ArraySpecKind
	// Rank is the number of array dimensions, -1 for assumed rank.
	Rank int
	// Corank is the number of codimensions.
	Corank int
	// Bounds holds Rank+Corank entries, codimensions last.
	Bounds []ArrayBound
}

// Explicit returns an explicit-shape spec with lower bounds 1 and the given upper bounds.
func Explicit(uppers ...int64) *ArraySpec {
	as := &ArraySpec{Kind: ArraySpecExplicit, Rank: len(uppers)}
	for _, u := range uppers {
		as.Bounds = append(as.Bounds, ArrayBound{
			Lower: &IntegerLiteral{Value: 1},
			Upper: &IntegerLiteral{Value: u},
		})
	}
	return as
}

// Shaped returns a spec of rank dimensions with no explicit bounds,
// such as an assumed-shape (:,:) or deferred-shape spec.
func Shaped(kind ArraySpecKind, rank int) *ArraySpec {
	as := &ArraySpec{Kind: kind, Rank: rank}
	if rank > 0 {
		as.Bounds = make([]ArrayBound, rank)
	}
	return as
}

// IntentType represents the INTENT attribute direction
type IntentType int

const (
	IntentUnknown IntentType = iota // No INTENT given.
	IntentInOut
	IntentIn
	IntentOut
)

func (it IntentType) String() string {
	switch it {
	case IntentIn:
		return "IN"
	case IntentOut:
		return "OUT"
	case IntentInOut:
		return "INOUT"
	default:
		return "UNKNOWN"
	}
}

// Identifier is a reference to a named entity, usually a dummy argument or
// a named constant.
type Identifier struct {
	Value string
}

// IntegerLiteral is an integer constant. Raw keeps the source spelling,
// kind suffix included, and may be empty.
type IntegerLiteral struct {
	Value int64
	Raw   string
}

// StringLiteral is a character constant, as found in a LEN= type parameter
// of a constant string actual.
type StringLiteral struct {
	Value string
}

// BinaryExpr is the operation Left Op Right, such as n+1 or 2*m.
type BinaryExpr struct {
	Op          token.Token
	Left, Right Expression
}

// UnaryExpr is the operation Op Operand, such as -n.
type UnaryExpr struct {
	Op      token.Token
	Operand Expression
}

// FunctionCall is a function reference in a specification expression, such
// as size(a) or len(s).
type FunctionCall struct {
	Name string
	Args []Expression
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Expr Expression
}

func (*Identifier) expressionNode()     {}
func (*IntegerLiteral) expressionNode() {}
func (*StringLiteral) expressionNode()  {}
func (*BinaryExpr) expressionNode()     {}
func (*UnaryExpr) expressionNode()      {}
func (*FunctionCall) expressionNode()   {}
func (*ParenExpr) expressionNode()      {}

func (i *Identifier) AppendString(dst []byte) []byte { return append(dst, i.Value...) }

func (il *IntegerLiteral) AppendString(dst []byte) []byte {
	if il.Raw != "" {
		return append(dst, il.Raw...)
	}
	return strconv.AppendInt(dst, il.Value, 10)
}

func (sl *StringLiteral) AppendString(dst []byte) []byte {
	return strconv.AppendQuote(dst, sl.Value)
}

func (be *BinaryExpr) AppendString(dst []byte) []byte {
	dst = be.Left.AppendString(dst)
	dst = append(dst, be.Op.String()...)
	return be.Right.AppendString(dst)
}

func (ue *UnaryExpr) AppendString(dst []byte) []byte {
	return ue.Operand.AppendString(append(dst, ue.Op.String()...))
}

func (fc *FunctionCall) AppendString(dst []byte) []byte {
	dst = append(dst, fc.Name...)
	dst = append(dst, '(')
	for i, arg := range fc.Args {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = arg.AppendString(dst)
	}
	return append(dst, ')')
}

func (pe *ParenExpr) AppendString(dst []byte) []byte {
	dst = append(dst, '(')
	return append(pe.Expr.AppendString(dst), ')')
}

// Int is shorthand for an integer literal node.
func Int(v int64) *IntegerLiteral { return &IntegerLiteral{Value: v} }

// Ident is shorthand for an identifier node.
func Ident(name string) *Identifier { return &Identifier{Value: name} }

// Sub returns the expression x - y.
func Sub(x, y Expression) *BinaryExpr { return &BinaryExpr{Op: token.Minus, Left: x, Right: y} }
