package interfaces

import (
	"testing"

	"github.com/soypat/go-fortran-interfaces/ast"
	"github.com/soypat/go-fortran-interfaces/symbol"
)

func TestCompareTypes(t *testing.T) {
	c, _ := newTestChecker(Options{})
	seqA := &symbol.DerivedType{Name: "pair", Sequence: true, Components: []*symbol.Component{
		{Name: "a", TS: symbol.Integer()}, {Name: "b", TS: symbol.Real()},
	}}
	seqB := &symbol.DerivedType{Name: "PAIR", Sequence: true, Components: []*symbol.Component{
		{Name: "A", TS: symbol.Integer()}, {Name: "B", TS: symbol.Real()},
	}}
	seqC := &symbol.DerivedType{Name: "pair", Sequence: true, Components: []*symbol.Component{
		{Name: "a", TS: symbol.Integer()}, {Name: "b", TS: symbol.Integer()},
	}}
	plainA := &symbol.DerivedType{Name: "pt", Components: []*symbol.Component{{Name: "x", TS: symbol.Real()}}}
	plainB := &symbol.DerivedType{Name: "pt", Components: []*symbol.Component{{Name: "x", TS: symbol.Real()}}}
	modA := &symbol.DerivedType{Name: "pt", Module: "geom"}
	modB := &symbol.DerivedType{Name: "pt", Module: "GEOM"}
	int8 := symbol.Integer()
	int8.Kind = 8

	tests := []struct {
		name     string
		ts1, ts2 symbol.TypeSpec
		expected bool
	}{
		{"same intrinsic", symbol.Integer(), symbol.Integer(), true},
		{"kind differs", symbol.Integer(), int8, false},
		{"type differs", symbol.Real(), symbol.Integer(), false},
		{"void dummy", symbol.TypeSpec{Type: symbol.TypeVoid}, symbol.Real(), true},
		{"unlimited polymorphic dummy", symbol.Class(nil), symbol.Real(), true},
		{"sequence type to CLASS(*)", symbol.Type(seqA), symbol.Class(nil), true},
		{"non-sequence type to CLASS(*)", symbol.Type(plainA), symbol.Class(nil), false},
		{"same definition", symbol.Type(plainA), symbol.Type(plainA), true},
		{"equal sequence types", symbol.Type(seqA), symbol.Type(seqB), true},
		{"sequence types differ in component", symbol.Type(seqA), symbol.Type(seqC), false},
		{"distinct non-sequence types", symbol.Type(plainA), symbol.Type(plainB), false},
		{"same module type", symbol.Type(modA), symbol.Type(modB), true},
	}
	for _, tt := range tests {
		if got := c.CompareTypes(tt.ts1, tt.ts2); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestCompareTypesSymmetric(t *testing.T) {
	c, _ := newTestChecker(Options{})
	types := []symbol.TypeSpec{symbol.Integer(), symbol.Real(), symbol.Complex(), symbol.Logical(), symbol.Character(3)}
	for _, a := range types {
		if !c.CompareTypes(a, a) {
			t.Errorf("%v: expected type to match itself", a)
		}
		for _, b := range types {
			if c.CompareTypes(a, b) != c.CompareTypes(b, a) {
				t.Errorf("%v and %v: comparison is not symmetric", a, b)
			}
		}
	}
}

func TestCompareDerivedRecursive(t *testing.T) {
	c, _ := newTestChecker(Options{})
	node := func() *symbol.DerivedType {
		dt := &symbol.DerivedType{Name: "node", Sequence: true}
		dt.Components = []*symbol.Component{
			{Name: "value", TS: symbol.Integer()},
			{Name: "next", TS: symbol.Type(dt), Attr: symbol.AttrPointer},
		}
		return dt
	}
	a, b := node(), node()
	if !c.CompareDerivedTypes(a, b) {
		t.Error("self-referential sequence types should compare equal")
	}

	// Mutually recursive pair compared through each other.
	x1 := &symbol.DerivedType{Name: "x", Sequence: true}
	y1 := &symbol.DerivedType{Name: "y", Sequence: true}
	x1.Components = []*symbol.Component{{Name: "p", TS: symbol.Type(y1), Attr: symbol.AttrPointer}}
	y1.Components = []*symbol.Component{{Name: "q", TS: symbol.Type(x1), Attr: symbol.AttrPointer}}
	x2 := &symbol.DerivedType{Name: "x", Sequence: true}
	y2 := &symbol.DerivedType{Name: "y", Sequence: true}
	x2.Components = []*symbol.Component{{Name: "p", TS: symbol.Type(y2), Attr: symbol.AttrPointer}}
	y2.Components = []*symbol.Component{{Name: "q", TS: symbol.Type(x2), Attr: symbol.AttrPointer}}
	if !c.CompareDerivedTypes(x1, x2) {
		t.Error("mutually recursive sequence types should compare equal")
	}
}

func TestCompareDerivedArrayComponents(t *testing.T) {
	c, _ := newTestChecker(Options{})
	mk := func(upper int64) *symbol.DerivedType {
		return &symbol.DerivedType{Name: "buf", BindC: true, Components: []*symbol.Component{
			{Name: "data", TS: symbol.Real(), AS: ast.Explicit(upper), Attr: symbol.AttrDimension},
		}}
	}
	if !c.CompareDerivedTypes(mk(8), mk(8)) {
		t.Error("equal array components should compare equal")
	}
	if c.CompareDerivedTypes(mk(8), mk(9)) {
		t.Error("array components with different bounds should differ")
	}
}

func TestTypeCompatible(t *testing.T) {
	c, _ := newTestChecker(Options{})
	base := &symbol.DerivedType{Name: "shape"}
	ext := &symbol.DerivedType{Name: "circle", Parent: base}
	tests := []struct {
		name     string
		ts1, ts2 symbol.TypeSpec
		expected bool
	}{
		{"class accepts extension", symbol.Class(base), symbol.Type(ext), true},
		{"class accepts declared type", symbol.Class(base), symbol.Class(base), true},
		{"class of extension rejects parent", symbol.Class(ext), symbol.Type(base), false},
		{"type rejects extension", symbol.Type(base), symbol.Type(ext), false},
		{"type accepts class of same type", symbol.Type(base), symbol.Class(base), true},
		{"unlimited", symbol.Class(nil), symbol.Real(), true},
		{"intrinsic", symbol.Real(), symbol.Real(), true},
	}
	for _, tt := range tests {
		if got := c.TypeCompatible(tt.ts1, tt.ts2); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestCompareTypeRankAssumedRank(t *testing.T) {
	c, _ := newTestChecker(Options{})
	formal := withShape(dummy("x", symbol.Real(), ast.IntentIn, 0), ast.Shaped(ast.ArraySpecAssumedRank, 0))
	for rank := 0; rank <= 7; rank++ {
		actual := dummy("y", symbol.Real(), ast.IntentIn, 0)
		if rank > 0 {
			withShape(actual, ast.Shaped(ast.ArraySpecAssumed, rank))
		}
		if !c.compareTypeRank(formal, actual) || !c.compareTypeRank(actual, formal) {
			t.Errorf("rank %d: expected assumed rank to match", rank)
		}
	}
	scalar := dummy("s", symbol.Real(), ast.IntentIn, 0)
	vector := withShape(dummy("v", symbol.Real(), ast.IntentIn, 0), ast.Explicit(3))
	if c.compareTypeRank(scalar, vector) {
		t.Error("scalar and rank-1 should not match")
	}
	assumedType := dummy("a", symbol.TypeSpec{Type: symbol.TypeAssumed}, ast.IntentIn, 0)
	if !c.compareTypeRank(assumedType, scalar) {
		t.Error("TYPE(*) should match any type")
	}
}
