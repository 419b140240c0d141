package ast

import (
	"math"

	"github.com/soypat/go-fortran-interfaces/token"
)

// Comparison is the outcome of comparing two specification expressions.
type Comparison int

const (
	Equal         Comparison = iota // Provably equal.
	Less                            // Provably less.
	Greater                         // Provably greater.
	Unequal                         // Provably different but not ordered.
	Indeterminate                   // Cannot be decided at compile time.
)

func (c Comparison) String() string {
	switch c {
	case Equal:
		return "equal"
	case Less:
		return "less"
	case Greater:
		return "greater"
	case Unequal:
		return "unequal"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Differs reports whether the comparison proves the operands different.
func (c Comparison) Differs() bool {
	return c == Less || c == Greater || c == Unequal
}

// Compare compares two specification expressions symbolically. Integer
// expressions are reduced to a linear combination of opaque terms
// (identifiers and function references) plus a constant, so n+1-1 and n
// compare equal and n and n+1 compare less. Anything else, including
// constant arithmetic that overflows int64, is indeterminate.
func Compare(a, b Expression) Comparison {
	if a == nil || b == nil {
		return Indeterminate
	}
	sa, aok := unparen(a).(*StringLiteral)
	sb, bok := unparen(b).(*StringLiteral)
	if aok && bok {
		if sa.Value == sb.Value {
			return Equal
		}
		return Unequal
	}
	la, ok := linearize(a)
	if !ok {
		return Indeterminate
	}
	lb, ok := linearize(b)
	if !ok {
		return Indeterminate
	}
	if !la.add(lb, -1) || !la.isConst() {
		return Indeterminate
	}
	switch {
	case la.c < 0:
		return Less
	case la.c > 0:
		return Greater
	}
	return Equal
}

// ConstInt returns the value of e if it reduces to an integer constant.
func ConstInt(e Expression) (int64, bool) {
	if e == nil {
		return 0, false
	}
	l, ok := linearize(e)
	if !ok || !l.isConst() {
		return 0, false
	}
	return l.c, true
}

// Extent returns the expression upper-lower for a bound. A missing lower
// bound is taken as 1. Returns nil if the upper bound is missing.
func Extent(b ArrayBound) Expression {
	if b.Upper == nil {
		return nil
	}
	lower := b.Lower
	if lower == nil {
		lower = Int(1)
	}
	return Sub(b.Upper, lower)
}

// Size returns the constant number of elements of an explicit-shape
// spec over its array dimensions.
func (as *ArraySpec) Size() (int64, bool) {
	if as == nil || as.Kind != ArraySpecExplicit {
		return 0, false
	}
	size := int64(1)
	for i := 0; i < as.Rank; i++ {
		ext, ok := ConstInt(Extent(as.Bounds[i]))
		if !ok {
			return 0, false
		}
		ext, ok = AddInt64(ext, 1)
		if !ok {
			return 0, false
		}
		if size, ok = MulInt64(size, max(ext, 0)); !ok {
			return 0, false
		}
	}
	return size, true
}

// AddInt64 returns a+b and whether the sum fits in an int64.
func AddInt64(a, b int64) (int64, bool) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, false
	}
	return s, true
}

// MulInt64 returns a*b and whether the product fits in an int64.
func MulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return p, true
}

// powInt64 returns x**n for n >= 0 by repeated squaring.
func powInt64(x, n int64) (int64, bool) {
	p := int64(1)
	var ok bool
	for n > 0 {
		if n&1 == 1 {
			if p, ok = MulInt64(p, x); !ok {
				return 0, false
			}
		}
		n >>= 1
		if n > 0 {
			if x, ok = MulInt64(x, x); !ok {
				return 0, false
			}
		}
	}
	return p, true
}

func unparen(e Expression) Expression {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}

// linear is c + sum(terms[k]*k).
type linear struct {
	c     int64
	terms map[string]int64
}

func (l *linear) isConst() bool {
	for _, coef := range l.terms {
		if coef != 0 {
			return false
		}
	}
	return true
}

// add sets l to l+sign*o. It reports false on overflow, leaving l invalid.
func (l *linear) add(o linear, sign int64) bool {
	c, ok := MulInt64(sign, o.c)
	if !ok {
		return false
	}
	if l.c, ok = AddInt64(l.c, c); !ok {
		return false
	}
	for k, coef := range o.terms {
		if l.terms == nil {
			l.terms = make(map[string]int64)
		}
		if coef, ok = MulInt64(sign, coef); !ok {
			return false
		}
		if l.terms[k], ok = AddInt64(l.terms[k], coef); !ok {
			return false
		}
	}
	return true
}

// scale sets l to f*l. It reports false on overflow.
func (l *linear) scale(f int64) bool {
	var ok bool
	if l.c, ok = MulInt64(l.c, f); !ok {
		return false
	}
	for k, coef := range l.terms {
		if l.terms[k], ok = MulInt64(coef, f); !ok {
			return false
		}
	}
	return true
}

func opaque(e Expression) linear {
	key := NormalizeName(string(e.AppendString(nil)))
	return linear{terms: map[string]int64{key: 1}}
}

func linearize(e Expression) (linear, bool) {
	switch n := e.(type) {
	case *IntegerLiteral:
		return linear{c: n.Value}, true
	case *Identifier:
		return opaque(n), true
	case *FunctionCall:
		return opaque(n), true
	case *ParenExpr:
		return linearize(n.Expr)
	case *UnaryExpr:
		x, ok := linearize(n.Operand)
		if !ok {
			return x, false
		}
		switch n.Op {
		case token.UMinus, token.Minus:
			if !x.scale(-1) {
				return linear{}, false
			}
		case token.UPlus, token.Plus:
		default:
			return linear{}, false
		}
		return x, true
	case *BinaryExpr:
		x, ok := linearize(n.Left)
		if !ok {
			return x, false
		}
		y, ok := linearize(n.Right)
		if !ok {
			return y, false
		}
		switch n.Op {
		case token.Plus, token.Minus:
			sign := int64(1)
			if n.Op == token.Minus {
				sign = -1
			}
			if !x.add(y, sign) {
				return linear{}, false
			}
			return x, true
		case token.Asterisk:
			if y.isConst() {
				if !x.scale(y.c) {
					return linear{}, false
				}
				return x, true
			} else if x.isConst() {
				if !y.scale(x.c) {
					return linear{}, false
				}
				return y, true
			}
		case token.Slash:
			if x.isConst() && y.isConst() && y.c != 0 {
				if x.c == math.MinInt64 && y.c == -1 {
					return linear{}, false
				}
				return linear{c: x.c / y.c}, true
			}
		case token.DoubleStar:
			if x.isConst() && y.isConst() && y.c >= 0 {
				p, ok := powInt64(x.c, y.c)
				return linear{c: p}, ok
			}
		default:
			return linear{}, false
		}
		return opaque(n), true
	}
	return linear{}, false
}
