package interfaces

import (
	"errors"
	"strings"

	"github.com/soypat/go-fortran-interfaces/diag"
	"github.com/soypat/go-fortran-interfaces/symbol"
	"github.com/soypat/go-fortran-interfaces/token"
)

// InterfaceKind is the kind of an interface block.
type InterfaceKind int

const (
	InterfaceNameless   InterfaceKind = iota // INTERFACE
	InterfaceGeneric                         // INTERFACE name
	InterfaceIntrinsicOp                     // INTERFACE OPERATOR(+) or ASSIGNMENT(=)
	InterfaceUserOp                          // INTERFACE OPERATOR(.name.)
	InterfaceAbstract                        // ABSTRACT INTERFACE
)

func (k InterfaceKind) String() string {
	switch k {
	case InterfaceNameless:
		return "nameless"
	case InterfaceGeneric:
		return "generic"
	case InterfaceIntrinsicOp:
		return "intrinsic operator"
	case InterfaceUserOp:
		return "user operator"
	case InterfaceAbstract:
		return "abstract"
	}
	return "<invalid interface kind>"
}

// GenericSpec is the generic specification of an INTERFACE or END
// INTERFACE statement.
type GenericSpec struct {
	Kind InterfaceKind
	// Name is the generic name or the user operator name without dots.
	Name string
	// Op is the intrinsic operator, token.Equals for ASSIGNMENT(=). Unary
	// plus and minus are folded to the binary tokens.
	Op token.Token
}

var errGenericSpec = errors.New("syntax error in generic specification")

// ParseGenericSpec parses the text following INTERFACE or END INTERFACE:
// empty, a generic name, OPERATOR(op), OPERATOR(.name.) or ASSIGNMENT(=).
// Keywords are case-insensitive and blanks around parentheses are ignored.
func ParseGenericSpec(s string) (GenericSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GenericSpec{Kind: InterfaceNameless}, nil
	}
	if arg, ok := cutSpecKeyword(s, "ASSIGNMENT"); ok {
		if arg != "=" {
			return GenericSpec{}, errGenericSpec
		}
		return GenericSpec{Kind: InterfaceIntrinsicOp, Op: token.Equals}, nil
	}
	if arg, ok := cutSpecKeyword(s, "OPERATOR"); ok {
		op := token.LookupOperator([]byte(arg))
		switch {
		case op != token.Illegal && op != token.Equals:
			return GenericSpec{Kind: InterfaceIntrinsicOp, Op: op.FoldUnary()}, nil
		case len(arg) > 2 && arg[0] == '.' && arg[len(arg)-1] == '.' && isLetters(arg[1:len(arg)-1]):
			return GenericSpec{Kind: InterfaceUserOp, Name: arg[1 : len(arg)-1]}, nil
		}
		return GenericSpec{}, errGenericSpec
	}
	if !isName(s) {
		return GenericSpec{}, errGenericSpec
	}
	return GenericSpec{Kind: InterfaceGeneric, Name: s}, nil
}

// cutSpecKeyword returns the parenthesized argument of s if s is keyword(arg).
func cutSpecKeyword(s, keyword string) (arg string, ok bool) {
	if len(s) < len(keyword) || !strings.EqualFold(s[:len(keyword)], keyword) {
		return "", false
	}
	rest := strings.TrimSpace(s[len(keyword):])
	if len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}
	return strings.TrimSpace(rest[1 : len(rest)-1]), true
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i] | 0x20; c < 'a' || c > 'z' {
			return false
		}
	}
	return s != ""
}

func isName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c|0x20 >= 'a' && c|0x20 <= 'z'
		if !letter && (i == 0 || c != '_' && (c < '0' || c > '9')) {
			return false
		}
	}
	return s != ""
}

// InterfaceContext is the interface block being parsed.
type InterfaceContext struct {
	Kind InterfaceKind
	// Sym is the generic symbol of an InterfaceGeneric block.
	Sym *symbol.Symbol
	// UserOp is the operator of an InterfaceUserOp block.
	UserOp *symbol.UserOp
	// Op is the operator of an InterfaceIntrinsicOp block.
	Op token.Token
	// NS is the namespace the block appears in.
	NS *symbol.Namespace
}

// ContextStack tracks the interface blocks being parsed, innermost last.
// With no block open the context is nameless.
type ContextStack struct {
	c     *Checker
	stack []InterfaceContext
}

// NewContextStack returns an empty stack reporting through c.
func NewContextStack(c *Checker) *ContextStack {
	return &ContextStack{c: c}
}

// Current returns the innermost context.
func (cs *ContextStack) Current() InterfaceContext {
	if len(cs.stack) == 0 {
		return InterfaceContext{Kind: InterfaceNameless}
	}
	return cs.stack[len(cs.stack)-1]
}

// Depth returns the number of open interface blocks.
func (cs *ContextStack) Depth() int { return len(cs.stack) }

// Push opens ctx as the innermost context.
func (cs *ContextStack) Push(ctx InterfaceContext) { cs.stack = append(cs.stack, ctx) }

// Pop closes the innermost context and returns it.
func (cs *ContextStack) Pop() InterfaceContext {
	ctx := cs.Current()
	if len(cs.stack) > 0 {
		cs.stack = cs.stack[:len(cs.stack)-1]
	}
	return ctx
}

// Begin opens an interface block for spec in ns. A generic name gets the
// GENERIC attribute, creating its symbol in ns if needed. A dummy
// procedure cannot be generic.
func (cs *ContextStack) Begin(spec GenericSpec, ns *symbol.Namespace, where *diag.Locus) error {
	ctx := InterfaceContext{Kind: spec.Kind, NS: ns}
	switch spec.Kind {
	case InterfaceGeneric:
		sym := ns.LookupLocal(spec.Name)
		if sym == nil {
			sym = symbol.NewSymbol(spec.Name, symbol.FlavorProcedure)
			if err := ns.Define(sym); err != nil {
				return err
			}
		}
		if sym.Attr.HasAny(symbol.AttrDummy) {
			return cs.c.errorf(where, diag.KindInterface, "Dummy procedure '%s' cannot have a generic interface", sym.Name())
		}
		sym.Attr |= symbol.AttrGeneric
		if sym.Flavor() == symbol.FlavorUnknown {
			sym.SetFlavor(symbol.FlavorProcedure)
		}
		ctx.Sym = sym
	case InterfaceUserOp:
		ctx.UserOp = ns.GetUserOp(spec.Name)
	case InterfaceIntrinsicOp:
		ctx.Op = spec.Op.FoldUnary()
	}
	cs.Push(ctx)
	return nil
}

// BeginAbstract opens an ABSTRACT INTERFACE block, a Fortran 2003 feature.
func (cs *ContextStack) BeginAbstract(ns *symbol.Namespace, where *diag.Locus) error {
	if !cs.c.Std.Allows(diag.StdF2003) {
		return cs.c.errorf(where, diag.KindStandard, "%s: ABSTRACT INTERFACE", diag.StdF2003)
	}
	cs.Push(InterfaceContext{Kind: InterfaceAbstract, NS: ns})
	return nil
}

// End closes the innermost block with the END INTERFACE spec. A spec, if
// present, must match the one the block was opened with; both spellings of
// a relational operator match (F2003 C1202). On a mismatch the block stays
// open.
func (cs *ContextStack) End(spec GenericSpec, where *diag.Locus) error {
	cur := cs.Current()
	if err := cs.checkEnd(cur, spec, where); err != nil {
		return err
	}
	cs.Pop()
	return nil
}

func (cs *ContextStack) checkEnd(cur InterfaceContext, spec GenericSpec, where *diag.Locus) *diag.Error {
	c := cs.c
	switch cur.Kind {
	case InterfaceNameless, InterfaceAbstract:
		if spec.Kind != InterfaceNameless {
			return c.errorf(where, diag.KindInterface, "Expected a nameless interface")
		}
		return nil
	}
	if spec.Kind == InterfaceNameless {
		return nil
	}
	switch cur.Kind {
	case InterfaceIntrinsicOp:
		if spec.Kind == InterfaceIntrinsicOp && token.SameOperator(spec.Op, cur.Op) {
			return nil
		}
		if cur.Op == token.Equals {
			return c.errorf(where, diag.KindInterface, "Expected 'END INTERFACE ASSIGNMENT (=)'")
		}
		got := spec.Name
		if spec.Kind == InterfaceIntrinsicOp {
			got = spec.Op.String()
		} else if spec.Kind == InterfaceUserOp {
			got = "." + spec.Name + "."
		}
		return c.errorf(where, diag.KindInterface, "Expecting 'END INTERFACE OPERATOR (%s)', but got %s", cur.Op, got)
	case InterfaceUserOp:
		if spec.Kind != InterfaceUserOp || !sameName(spec.Name, cur.UserOp.Name) {
			return c.errorf(where, diag.KindInterface, "Expecting 'END INTERFACE OPERATOR (.%s.)'", cur.UserOp.Name)
		}
	case InterfaceGeneric:
		if spec.Kind != InterfaceGeneric || !sameName(spec.Name, cur.Sym.Name()) {
			return c.errorf(where, diag.KindInterface, "Expecting 'END INTERFACE %s'", cur.Sym.Name())
		}
	}
	return nil
}

// CheckNewInterface reports an error if sym is already in list.
func (c *Checker) CheckNewInterface(list []*symbol.Interface, sym *symbol.Symbol, where *diag.Locus) error {
	for _, ip := range list {
		if ip.Sym == sym {
			return c.errorf(where, diag.KindInterface, "Entity '%s' is already present in the interface", sym.Name())
		}
	}
	return nil
}

// Add appends sym to the interface list of the innermost block. Nameless
// and abstract blocks have no list. sym must not already be in the list of
// the block or in that of the same generic name or operator of a host.
func (cs *ContextStack) Add(sym *symbol.Symbol, where *diag.Locus) error {
	cur := cs.Current()
	c := cs.c
	var head *[]*symbol.Interface
	switch cur.Kind {
	case InterfaceNameless, InterfaceAbstract:
		return nil
	case InterfaceIntrinsicOp:
		for ns := cur.NS; ns != nil; ns = ns.Parent() {
			for _, slot := range operatorSlots(cur.Op) {
				if err := c.CheckNewInterface(ns.Ops[slot], sym, where); err != nil {
					return err
				}
			}
		}
		head = &cur.NS.Ops[cur.Op]
	case InterfaceGeneric:
		for ns := cur.NS; ns != nil; ns = ns.Parent() {
			generic := ns.LookupLocal(cur.Sym.Name())
			if generic == nil {
				continue
			}
			if err := c.CheckNewInterface(generic.Generic, sym, where); err != nil {
				return err
			}
		}
		head = &cur.Sym.Generic
	case InterfaceUserOp:
		if err := c.CheckNewInterface(cur.UserOp.Ops, sym, where); err != nil {
			return err
		}
		head = &cur.UserOp.Ops
	default:
		diag.Internalf(cur, "Add: bad interface kind %v", cur.Kind)
	}
	intr := &symbol.Interface{Sym: sym}
	if where != nil {
		intr.Where = *where
	}
	*head = append(*head, intr)
	return nil
}

// Head returns the interface list of the innermost block, nil for nameless
// and abstract blocks.
func (cs *ContextStack) Head() []*symbol.Interface {
	cur := cs.Current()
	switch cur.Kind {
	case InterfaceIntrinsicOp:
		return cur.NS.Ops[cur.Op]
	case InterfaceGeneric:
		return cur.Sym.Generic
	case InterfaceUserOp:
		return cur.UserOp.Ops
	}
	return nil
}

// SetHead replaces the interface list of the innermost block.
func (cs *ContextStack) SetHead(list []*symbol.Interface) {
	cur := cs.Current()
	switch cur.Kind {
	case InterfaceIntrinsicOp:
		cur.NS.Ops[cur.Op] = list
	case InterfaceGeneric:
		cur.Sym.Generic = list
	case InterfaceUserOp:
		cur.UserOp.Ops = list
	}
}
