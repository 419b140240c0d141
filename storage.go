package interfaces

import (
	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/symbol"
	"github.com/soypat/go-fortran-interfaces/token"
)

// Storage sizes are counted in character storage units for CHARACTER
// entities and in elements otherwise. Zero means unknown.

// symStorageSize returns the storage size of a dummy argument, or 0 if it
// is not a constant.
func symStorageSize(sym *symbol.Symbol) int64 {
	strlen := int64(1)
	if sym.TS.Type == symbol.TypeCharacter {
		n, ok := ast.ConstInt(sym.TS.CharLen)
		if !ok {
			return 0
		}
		strlen = n
	}
	if sym.Rank() == 0 {
		return max(strlen, 0)
	}
	if !sym.HasShape(ast.ArraySpecExplicit) {
		return 0
	}
	elements, ok := sym.AS.Size()
	if !ok {
		return 0
	}
	return product(max(strlen, 0), elements)
}

// exprStorageSize returns the storage size of the sequence of elements an
// actual argument provides. For an array element designator that is the
// number of elements from the element to the end of the array.
func exprStorageSize(e *symbol.Expr) int64 {
	if e == nil {
		return 0
	}
	strlen := int64(1)
	if e.TS.Type == symbol.TypeCharacter {
		if n, ok := ast.ConstInt(e.TS.CharLen); ok {
			strlen = n
		} else if e.Kind == symbol.ExprConstant && e.TS.CharLen == nil {
			strlen = int64(len(e.CharValue))
		} else {
			return 0
		}
	}
	if e.Rank == 0 && len(e.Refs) == 0 {
		return max(strlen, 0)
	}
	elements := int64(1)
	if len(e.Refs) == 0 {
		if e.Shape == nil {
			return 0
		}
		for _, ext := range e.Shape {
			elements = product(elements, max(ext, 0))
		}
		return product(elements, max(strlen, 0))
	}

	var substrlen int64
	strStorage := false
	for _, r := range e.Refs {
		switch {
		case r.Kind == symbol.RefSubstring:
			start, ok := ast.ConstInt(r.Start)
			if r.Start == nil || !ok {
				continue
			}
			if strStorage {
				// The element sequence extends over the rest of the parent string.
				n, ok := ast.ConstInt(r.Length)
				if !ok {
					return 0
				}
				strlen = n
			}
			substrlen = strlen - start + 1

		case r.Kind == symbol.RefArray && r.Array == symbol.ArraySection:
			for i, s := range r.Subs {
				if s.Type == symbol.DimenVector {
					return 0
				}
				stride := int64(1)
				if s.Stride != nil {
					v, ok := ast.ConstInt(s.Stride)
					if !ok {
						return 0
					}
					stride = v
				}
				var bound ast.ArrayBound
				if r.AS != nil && i < len(r.AS.Bounds) {
					bound = r.AS.Bounds[i]
				}
				start, ok := subscriptOrBound(s.Start, bound.Lower, true)
				if !ok {
					return 0
				}
				if s.Type == symbol.DimenElement {
					continue
				}
				end, ok := subscriptOrBound(s.End, bound.Upper, false)
				if !ok || stride == 0 {
					return 0
				}
				steps := &ast.BinaryExpr{Op: token.Slash, Left: ast.Sub(ast.Int(end), ast.Int(start)), Right: ast.Int(stride)}
				n, ok := ast.ConstInt(&ast.BinaryExpr{Op: token.Plus, Left: steps, Right: ast.Int(1)})
				if !ok {
					return 0
				}
				elements = product(elements, max(n, 0))
			}

		case r.Kind == symbol.RefArray && r.Array == symbol.ArrayFull:
			n, ok := r.AS.Size()
			if !ok {
				return 0
			}
			elements = product(elements, n)

		case r.Kind == symbol.RefArray && r.Array == symbol.ArrayElement && e.Kind == symbol.ExprVariable:
			if r.Dimen() == 0 {
				continue // Image selector only.
			}
			if (r.AS != nil && r.AS.Kind == ast.ArraySpecAssumed) || e.Sym.Attr.HasAny(symbol.AttrPointer) {
				elements = 1
				continue
			}
			if r.AS == nil {
				return 0
			}
			strStorage = true
			for i := r.Dimen() - 1; i >= 0; i-- {
				if i >= len(r.AS.Bounds) {
					return 0
				}
				b := r.AS.Bounds[i]
				start, ok0 := ast.ConstInt(r.Subs[i].Start)
				ub, ok1 := ast.ConstInt(b.Upper)
				lb, ok2 := constLower(b.Lower)
				if !ok0 || !ok1 || !ok2 {
					return 0
				}
				ext, ok3 := ast.AddInt64(ub-lb, 1)
				scaled, ok4 := ast.MulInt64(elements, ext)
				if !ok3 || !ok4 {
					return 0
				}
				if elements, ok3 = ast.AddInt64(scaled, lb-start); !ok3 {
					return 0
				}
			}
		}
	}

	if substrlen != 0 {
		if strStorage {
			rest, ok := ast.MulInt64(elements-1, strlen)
			if !ok {
				return 0
			}
			n, ok := ast.AddInt64(substrlen, rest)
			if !ok {
				return 0
			}
			return max(n, 0)
		}
		return product(max(elements, 0), max(substrlen, 0))
	}
	return product(max(elements, 0), max(strlen, 0))
}

// product returns a*b for non-negative sizes, 0 if it overflows.
func product(a, b int64) int64 {
	p, ok := ast.MulInt64(a, b)
	if !ok {
		return 0
	}
	return p
}

// constLower returns the value of a lower bound, 1 when it is omitted.
func constLower(lb ast.Expression) (int64, bool) {
	if lb == nil {
		return 1, true
	}
	return ast.ConstInt(lb)
}

// subscriptOrBound returns the constant value of a section subscript, or of
// the array bound it defaults to.
func subscriptOrBound(sub, bound ast.Expression, lower bool) (int64, bool) {
	if sub != nil {
		return ast.ConstInt(sub)
	}
	if lower {
		return constLower(bound)
	}
	if bound == nil {
		return 0, false
	}
	return ast.ConstInt(bound)
}
