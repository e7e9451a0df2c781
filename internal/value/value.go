// Package value implements the tagged value universe shared by the reader,
// environment, operators, and evaluator: integers, strings, symbols, cons
// cells, lambdas, operators, and the distinguished Nil.
//
// A Value is always handled through its Go interface value (a pointer under
// the hood); two handles that name the same underlying value compare equal
// by pointer. The graph is acyclic by construction (cons/lambda/operator
// values never refer back to an ancestor), so ordinary garbage collection
// plays the role the original design gave to explicit reference counting —
// there is no cycle collector to write because there are no cycles to find.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the sum type every runtime datum implements.
type Value interface {
	// Type returns the variant's tag (e.g. "INTEGER", "CONS"), mirroring
	// the teacher interpreter's Value.Type() convention.
	Type() string
	// String renders the value as a canonical S-expression.
	String() string
}

// nilValue is the sole variant backing the distinguished empty value; its
// only instance is the package-level singleton returned by Nil().
type nilValue struct{}

func (nilValue) Type() string   { return "NIL" }
func (nilValue) String() string { return "NIL" }

var theNil Value = nilValue{}

// Nil returns the canonical empty-value handle. It is also the sole false
// value in the truth model (see IsFalsey in the operators package).
func Nil() Value { return theNil }

// IsNil reports whether v is the canonical Nil handle.
func IsNil(v Value) bool { return v == theNil }

// NotNil is the complement of IsNil.
func NotNil(v Value) bool { return v != theNil }

// Integer is a signed 32-bit integer literal.
type Integer struct {
	Value int32
}

func (i *Integer) Type() string   { return "INTEGER" }
func (i *Integer) String() string { return strconv.FormatInt(int64(i.Value), 10) }

// NewInteger constructs an Integer value.
func NewInteger(v int32) Value { return &Integer{Value: v} }

// String is an immutable text literal; the surface language admits no
// escape sequences (spec §6).
type String struct {
	Value string
}

func (s *String) Type() string   { return "STRING" }
func (s *String) String() string { return `"` + s.Value + `"` }

// NewString constructs a String value.
func NewString(v string) Value { return &String{Value: v} }

// Symbol is an interned name. Callers are responsible for upper-casing the
// name before construction (the reader does this at intake); Symbol itself
// does no further normalization.
type Symbol struct {
	Name string
}

func (s *Symbol) Type() string   { return "SYMBOL" }
func (s *Symbol) String() string { return s.Name }

// NewSymbol constructs a Symbol value from an already-normalized name.
func NewSymbol(name string) Value { return &Symbol{Name: name} }

// Cons is an ordered pair; right-nested chains terminated by Nil form
// proper lists. The reader never produces dotted pairs (a chain whose
// final Cdr is non-Nil and non-Cons).
type Cons struct {
	Car Value
	Cdr Value
}

func (c *Cons) Type() string { return "CONS" }

func (c *Cons) String() string {
	var b strings.Builder
	b.WriteByte('(')
	writeListTail(&b, c)
	b.WriteByte(')')
	return b.String()
}

func writeListTail(b *strings.Builder, c *Cons) {
	b.WriteString(c.Car.String())
	switch cdr := c.Cdr.(type) {
	case *Cons:
		b.WriteByte(' ')
		writeListTail(b, cdr)
	default:
		if NotNil(c.Cdr) {
			// Dotted pair: never produced by the reader, but rendered
			// faithfully if constructed programmatically.
			b.WriteString(" . ")
			b.WriteString(c.Cdr.String())
		}
	}
}

// NewCons constructs a Cons cell.
func NewCons(car, cdr Value) Value { return &Cons{Car: car, Cdr: cdr} }

// List builds a proper (Nil-terminated) list from the given elements, right
// to left, the way the reader's read_list recursion assembles one.
func List(elems ...Value) Value {
	result := Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewCons(elems[i], result)
	}
	return result
}

// Lambda is a user-defined function value: a pair of (parameter-list,
// body), both themselves handles into the value graph. Per design note §9,
// the defining environment is not captured — free variables in the body
// resolve dynamically through the caller's frame chain.
type Lambda struct {
	Params Value
	Body   Value
}

func (l *Lambda) Type() string { return "LAMBDA" }

func (l *Lambda) String() string {
	return fmt.Sprintf("(LAMBDA %s %s)", l.Params.String(), l.Body.String())
}

// NewLambda constructs a Lambda value.
func NewLambda(params, body Value) Value { return &Lambda{Params: params, Body: body} }

// Fn is a primitive operator's implementation: it receives the already
// evaluated argument list and returns a result or a typed error.
type Fn func(args Value) (Value, error)

// Operator is a primitive function value; Fn is invoked by the evaluator's
// Apply with a pre-evaluated argument list.
type Operator struct {
	Name string
	Fn   Fn
}

func (o *Operator) Type() string   { return "OPERATOR" }
func (o *Operator) String() string { return o.Name }

// NewOperator constructs an Operator value.
func NewOperator(name string, fn Fn) Value { return &Operator{Name: name, Fn: fn} }

// Destructure splits a Cons into its Car/Cdr, or reports NotCons.
func Destructure(v Value) (car, cdr Value, ok bool) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, nil, false
	}
	return c.Car, c.Cdr, true
}

// IntegerOf extracts the int32 payload of an Integer value.
func IntegerOf(v Value) (int32, bool) {
	i, ok := v.(*Integer)
	if !ok {
		return 0, false
	}
	return i.Value, true
}

// StringOf extracts the string payload of a String value.
func StringOf(v Value) (string, bool) {
	s, ok := v.(*String)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// SymbolOf extracts the name of a Symbol value.
func SymbolOf(v Value) (string, bool) {
	s, ok := v.(*Symbol)
	if !ok {
		return "", false
	}
	return s.Name, true
}

// Equal implements the variant equality rules from spec §4.1: integer,
// string, and symbol compare by content; cons compares recursively by
// structure and element-equality; operator compares by display name;
// lambda and nil compare by identity.
func Equal(a, b Value) bool {
	if a == b {
		return true
	}
	switch av := a.(type) {
	case *Integer:
		bv, ok := b.(*Integer)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av.Name == bv.Name
	case *Cons:
		bv, ok := b.(*Cons)
		return ok && Equal(av.Car, bv.Car) && Equal(av.Cdr, bv.Cdr)
	case *Operator:
		bv, ok := b.(*Operator)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}
