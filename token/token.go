package token

import "bytes"

// Token identifies an intrinsic operator or one of the pseudo-operators
// (assignment, parentheses, user-defined) that can carry an interface.
type Token int

// List of all operator tokens an interface block or a type-bound GENERIC can extend.
// When adding a new token add it in between blocks since we use comparison functions to check properties of tokens.
const (
	// Not to be used in code. Is to catch uninitialized tokens.
	Undefined Token = iota // <undefined>

	// ==================== NUMERIC ====================

	UPlus      // unary +
	UMinus     // unary -
	Plus       // +
	Minus      // -
	Asterisk   // *
	Slash      // /
	DoubleStar // **

	// String operator
	StringConcat // //

	// ==================== LOGICAL ====================

	AND  // .and.
	OR   // .or.
	EQV  // .eqv.
	NEQV // .neqv.

	// ==================== RELATIONAL ====================

	// Relational operators (Fortran 90 style)
	EqEq      // ==
	NotEquals // /=
	Greater   // >
	GreaterEq // >=
	Less      // <
	LessEq    // <=

	// Relational operators (Fortran 77 style)
	EQ // .eq.
	NE // .ne.
	GT // .gt.
	GE // .ge.
	LT // .lt.
	LE // .le.

	NOT // .not.

	// ==================== PSEUDO ====================

	UserOp      // <user-op>
	Equals      // =
	Parentheses // parens
	Illegal     // <illegal>
	numToks
)

// NumTokens is the size of a table indexed by [Token], such as the intrinsic
// operator table of a namespace.
const NumTokens = int(numToks)

var names = [numToks]string{
	Undefined:    "<undefined>",
	UPlus:        "+",
	UMinus:       "-",
	Plus:         "+",
	Minus:        "-",
	Asterisk:     "*",
	Slash:        "/",
	DoubleStar:   "**",
	StringConcat: "//",
	AND:          ".and.",
	OR:           ".or.",
	EQV:          ".eqv.",
	NEQV:         ".neqv.",
	EqEq:         "==",
	NotEquals:    "/=",
	Greater:      ">",
	GreaterEq:    ">=",
	Less:         "<",
	LessEq:       "<=",
	EQ:           ".eq.",
	NE:           ".ne.",
	GT:           ".gt.",
	GE:           ".ge.",
	LT:           ".lt.",
	LE:           ".le.",
	NOT:          ".not.",
	UserOp:       "<user-op>",
	Equals:       "=",
	Parentheses:  "parens",
	Illegal:      "<illegal>",
}

// String returns the source spelling of the operator.
func (tok Token) String() string {
	if tok < 0 || tok >= numToks {
		return "<illegal>"
	}
	return names[tok]
}

// IsOperator returns true if the token is an intrinsic operator (unary forms included).
func (tok Token) IsOperator() bool {
	return tok >= UPlus && tok <= NOT
}

// IsNumeric returns true for the arithmetic operators.
func (tok Token) IsNumeric() bool {
	return tok >= UPlus && tok <= DoubleStar
}

// IsLogical returns true for the binary logical operators. .NOT. is not included.
func (tok Token) IsLogical() bool {
	return tok >= AND && tok <= NEQV
}

// IsRelational returns true for both spellings of the relational operators.
func (tok Token) IsRelational() bool {
	return tok >= EqEq && tok <= LE
}

// IsEquality returns true for == and /= in either spelling.
func (tok Token) IsEquality() bool {
	switch tok {
	case EqEq, NotEquals, EQ, NE:
		return true
	}
	return false
}

// IsUnary returns true for the operators that may take a single operand.
func (tok Token) IsUnary() bool {
	switch tok {
	case UPlus, UMinus, Plus, Minus, NOT:
		return true
	}
	return false
}

// FoldUnary changes unary plus and minus into binary plus and minus,
// leaving the rest unchanged. Interfaces for both forms share one table slot.
func (tok Token) FoldUnary() Token {
	switch tok {
	case UPlus:
		return Plus
	case UMinus:
		return Minus
	}
	return tok
}

// Equivalent returns the alternate spelling of a relational operator
// (== for .eq. and so on), or [Undefined] if the operator has only one spelling.
// Both spellings denote the same operator (F2003 C1202).
func (tok Token) Equivalent() Token {
	if !tok.IsRelational() {
		return Undefined
	}
	const span = EQ - EqEq // six operators per spelling.
	if tok >= EQ {
		return tok - span
	}
	return tok + span
}

// Canonical returns the Fortran 90 spelling of a relational operator and tok otherwise.
func (tok Token) Canonical() Token {
	if tok >= EQ && tok <= LE {
		return tok.Equivalent()
	}
	return tok
}

// SameOperator reports whether a and b name the same intrinsic operator,
// treating both relational spellings and unary/binary plus and minus as one.
func SameOperator(a, b Token) bool {
	return a.FoldUnary().Canonical() == b.FoldUnary().Canonical()
}

// LookupOperator returns the token spelled by op, which may be a symbolic
// operator (+, ==, //) or a dotted operator (.EQ., .not.). Returns [Illegal]
// if op is not an intrinsic operator. Dotted operators are case-insensitive.
func LookupOperator(op []byte) Token {
	if len(op) > 2 && op[0] == '.' && op[len(op)-1] == '.' {
		return LookupDotOperator(op[1 : len(op)-1])
	}
	switch string(op) {
	case "+":
		return Plus
	case "-":
		return Minus
	case "*":
		return Asterisk
	case "/":
		return Slash
	case "**":
		return DoubleStar
	case "//":
		return StringConcat
	case "==":
		return EqEq
	case "/=":
		return NotEquals
	case ">":
		return Greater
	case ">=":
		return GreaterEq
	case "<":
		return Less
	case "<=":
		return LessEq
	case "=":
		return Equals
	}
	return Illegal
}

// LookupDotOperator checks if the internal characters in a dot operator
// match with a token. Returns [Illegal] if no match found, which for a
// well-formed name means a user-defined operator.
func LookupDotOperator(ident []byte) Token {
	// Convert to uppercase for case-insensitive comparison
	upper := bytes.ToUpper(ident)
	switch string(upper) {
	default:
		return Illegal
	case "EQ":
		return EQ
	case "NE":
		return NE
	case "LT":
		return LT
	case "LE":
		return LE
	case "GT":
		return GT
	case "GE":
		return GE
	case "AND":
		return AND
	case "OR":
		return OR
	case "NOT":
		return NOT
	case "EQV":
		return EQV
	case "NEQV":
		return NEQV
	}
}
