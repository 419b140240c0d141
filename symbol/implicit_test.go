package symbol

import (
	"strings"
	"testing"
)

// TestDefaultImplicitRules verifies the default F77/F90 implicit typing rules
func TestDefaultImplicitRules(t *testing.T) {
	rules := DefaultImplicitRules()

	for letter := 'A'; letter <= 'Z'; letter++ {
		bt, _ := GetImplicitTypeForLetter(letter, rules)
		expected := TypeReal
		if letter >= 'I' && letter <= 'N' {
			expected = TypeInteger
		}
		if bt != expected {
			t.Errorf("Letter %c: expected %s, got %s", letter, expected, bt)
		}
	}
}

// TestGetImplicitTypeForLetterInvalidInput tests edge cases
func TestGetImplicitTypeForLetterInvalidInput(t *testing.T) {
	rules := DefaultImplicitRules()

	invalidLetters := []rune{'@', '[', '0', '9', ' '}

	for _, letter := range invalidLetters {
		bt, kind := GetImplicitTypeForLetter(letter, rules)
		if bt != TypeUnknown || kind != 0 {
			t.Errorf("GetImplicitTypeForLetter(%c): expected no type, got %s", letter, bt)
		}
	}
}

// TestApplyImplicitType tests applying implicit typing to identifiers
func TestApplyImplicitType(t *testing.T) {
	rules := DefaultImplicitRules()

	tests := []struct {
		name     string
		wantType string
	}{
		{"i", "INTEGER(4)"},
		{"INDEX", "INTEGER(4)"},
		{"Ncount", "INTEGER(4)"},
		{"x", "REAL(4)"},
		{"ALPHA", "REAL(4)"},
		{"Z99", "REAL(4)"},
	}

	for _, tt := range tests {
		ts, err := ApplyImplicitType(tt.name, rules)
		if err != nil {
			t.Errorf("ApplyImplicitType(%s): unexpected error: %v", tt.name, err)
			continue
		}
		if ts.String() != tt.wantType {
			t.Errorf("ApplyImplicitType(%s): expected type %s, got %s", tt.name, tt.wantType, ts)
		}
	}

	if _, err := ApplyImplicitType("_x", rules); err == nil {
		t.Error("ApplyImplicitType(_x): expected error for non-letter start")
	}
}

// TestApplyImplicitTypeWithIMPLICITNONE tests that IMPLICIT NONE prevents implicit typing
func TestApplyImplicitTypeWithIMPLICITNONE(t *testing.T) {
	rules := &ImplicitRules{IsNone: true}

	_, err := ApplyImplicitType("x", rules)
	if err == nil {
		t.Fatal("ApplyImplicitType with IMPLICIT NONE: expected error, got nil")
	}
	if !strings.Contains(err.Error(), "IMPLICIT NONE") {
		t.Errorf("Expected error to mention IMPLICIT NONE, got: %v", err)
	}
}

// TestApplyImplicitTypeWithKind tests custom IMPLICIT rules with a KIND
func TestApplyImplicitTypeWithKind(t *testing.T) {
	rules := &ImplicitRules{}
	rules.SetRange('a', 'h', TypeReal, 8)
	rules.SetRange('C', 'C', TypeCharacter, 0)

	ts, err := ApplyImplicitType("alpha", rules)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Kind != 8 {
		t.Errorf("expected kind 8, got %d", ts.Kind)
	}
	ts, err = ApplyImplicitType("c", rules)
	if err != nil {
		t.Fatal(err)
	}
	if ts.String() != "CHARACTER(1)" || ts.CharLen == nil {
		t.Errorf("expected CHARACTER(1) of length 1, got %s", ts)
	}
	if _, err := ApplyImplicitType("x", rules); err == nil {
		t.Error("expected error for letter without rule")
	}
}

func TestImplicitRulesCopy(t *testing.T) {
	rules := DefaultImplicitRules()
	cp := rules.Copy()
	cp.IsNone = true
	cp.LetterTypes[0] = TypeLogical
	if rules.IsNone || rules.LetterTypes[0] != TypeReal {
		t.Error("Copy should not alias the original rules")
	}
	var nilRules *ImplicitRules
	if nilRules.Copy() != nil {
		t.Error("Copy of nil should be nil")
	}
}
