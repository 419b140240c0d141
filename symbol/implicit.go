package symbol

import (
	"fmt"
	"unicode"
)

// ImplicitRules stores implicit typing rules for a namespace
type ImplicitRules struct {
	IsNone      bool         // IMPLICIT NONE specified?
	LetterTypes [26]BaseType // Type for each letter A-Z (TypeUnknown = no rule)
	LetterKinds [26]int      // Kind for each letter (0 = default)
}

// Copy creates a deep copy of ImplicitRules
func (ir *ImplicitRules) Copy() *ImplicitRules {
	if ir == nil {
		return nil
	}
	newRules := *ir
	return &newRules
}

// SetRange sets the implicit type of the letters first through last, as in
// IMPLICIT REAL(KIND=8) (A-H).
func (ir *ImplicitRules) SetRange(first, last rune, bt BaseType, kind int) {
	first, last = unicode.ToUpper(first), unicode.ToUpper(last)
	for ch := first; ch <= last && ch >= 'A' && ch <= 'Z'; ch++ {
		ir.LetterTypes[ch-'A'] = bt
		ir.LetterKinds[ch-'A'] = kind
	}
	ir.IsNone = false
}

// ApplyImplicitType determines the type for an identifier based on implicit typing rules.
// Returns the type if implicit typing applies, or an error if the identifier
// is undeclared and IMPLICIT NONE is active.
func ApplyImplicitType(name string, rules *ImplicitRules) (TypeSpec, error) {
	if name == "" {
		return TypeSpec{}, fmt.Errorf("cannot apply implicit type to empty name")
	}

	if rules.IsNone {
		return TypeSpec{}, fmt.Errorf("variable %s used without declaration (IMPLICIT NONE active)", name)
	}

	firstLetter := unicode.ToUpper(rune(name[0]))
	if firstLetter < 'A' || firstLetter > 'Z' {
		return TypeSpec{}, fmt.Errorf("identifier %s does not start with a letter", name)
	}

	bt, kind := GetImplicitTypeForLetter(firstLetter, rules)
	if bt == TypeUnknown {
		return TypeSpec{}, fmt.Errorf("no implicit type defined for letter %c", firstLetter)
	}
	if kind == 0 {
		kind = defaultKind(bt)
	}
	ts := TypeSpec{Type: bt, Kind: kind}
	if bt == TypeCharacter {
		ts.CharLen = Character(1).CharLen
	}
	return ts, nil
}

// GetImplicitTypeForLetter returns the type and kind for a given first letter
// based on the implicit typing rules. The letter should be uppercase A-Z.
func GetImplicitTypeForLetter(letter rune, rules *ImplicitRules) (bt BaseType, kind int) {
	if letter < 'A' || letter > 'Z' {
		return TypeUnknown, 0
	}
	idx := letter - 'A'
	return rules.LetterTypes[idx], rules.LetterKinds[idx]
}

// DefaultImplicitRules returns the default Fortran 77/90 implicit typing rules:
// I-N are INTEGER, A-H and O-Z are REAL.
func DefaultImplicitRules() *ImplicitRules {
	rules := &ImplicitRules{}
	rules.SetRange('A', 'H', TypeReal, 0)
	rules.SetRange('I', 'N', TypeInteger, 0)
	rules.SetRange('O', 'Z', TypeReal, 0)
	return rules
}

func defaultKind(bt BaseType) int {
	switch bt {
	case TypeInteger:
		return DefaultIntegerKind
	case TypeReal, TypeComplex:
		return DefaultRealKind
	case TypeLogical:
		return DefaultLogicalKind
	case TypeCharacter:
		return DefaultCharacterKind
	}
	return 0
}
