// Package operators implements the built-in primitive library of spec §4.5:
// arithmetic, comparison, logic, and list deconstruction. Every operator is
// a pure function of its (already evaluated) argument list — no hidden
// state, no environment access — per spec §8's "operator purity" property.
//
// Registration is grounded on the original Rust source's
// evaluator::operators::initialize_operators and the teacher interpreter's
// internal/interp/builtins/register.go convention of one function that
// interns every primitive into the root frame in a single call.
package operators

import (
	"github.com/cwbudde/go-lustre/internal/diag"
	"github.com/cwbudde/go-lustre/internal/env"
	"github.com/cwbudde/go-lustre/internal/value"
)

// True and False are the two truth-model constants operators return:
// Integer(1) for true, Nil for false (spec §4.5).
func True() value.Value  { return value.NewInteger(1) }
func False() value.Value { return value.Nil() }

// boolOf maps a Go bool onto the truth model's two constants.
func boolOf(b bool) value.Value {
	if b {
		return True()
	}
	return False()
}

// IsFalsey reports whether v is the language's single false value. Every
// value other than Nil (including Integer(0) and the empty string) is
// truthy, per spec §4.5/§8.
func IsFalsey(v value.Value) bool {
	return value.IsNil(v)
}

// listElements walks a proper list value into a Go slice, for operators
// that need random access to their arguments (e.g. arity checks).
func listElements(v value.Value) ([]value.Value, error) {
	var out []value.Value
	for value.NotNil(v) {
		car, cdr, ok := value.Destructure(v)
		if !ok {
			return nil, diag.New(diag.KindShape, diag.MsgNotCons, v.Type())
		}
		out = append(out, car)
		v = cdr
	}
	return out, nil
}

func arityError(name string, want string, got int) error {
	return diag.New(diag.KindCallable, diag.MsgWrongArity, name, want, got)
}

func asInteger(v value.Value) (int32, error) {
	n, ok := value.IntegerOf(v)
	if !ok {
		return 0, diag.New(diag.KindShape, diag.MsgNotInteger, v.Type())
	}
	return n, nil
}

func opAdd(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return value.Nil(), nil
	}
	var sum int32
	for _, e := range elems {
		n, err := asInteger(e)
		if err != nil {
			return nil, err
		}
		sum += n
	}
	return value.NewInteger(sum), nil
}

func opSub(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return value.Nil(), nil
	}
	first, err := asInteger(elems[0])
	if err != nil {
		return nil, err
	}
	result := first
	for _, e := range elems[1:] {
		n, err := asInteger(e)
		if err != nil {
			return nil, err
		}
		result -= n
	}
	return value.NewInteger(result), nil
}

func opMul(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return value.Nil(), nil
	}
	var product int32 = 1
	for _, e := range elems {
		n, err := asInteger(e)
		if err != nil {
			return nil, err
		}
		product *= n
	}
	return value.NewInteger(product), nil
}

func opDiv(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return value.Nil(), nil
	}
	first, err := asInteger(elems[0])
	if err != nil {
		return nil, err
	}
	result := first
	for _, e := range elems[1:] {
		n, err := asInteger(e)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, diag.New(diag.KindShape, diag.MsgDivByZero)
		}
		result /= n
	}
	return value.NewInteger(result), nil
}

// compareOp builds a 2-arity integer comparison operator.
func compareOp(name string, cmp func(a, b int32) bool) value.Fn {
	return func(args value.Value) (value.Value, error) {
		elems, err := listElements(args)
		if err != nil {
			return nil, err
		}
		if len(elems) != 2 {
			return nil, arityError(name, "2", len(elems))
		}
		a, err := asInteger(elems[0])
		if err != nil {
			return nil, err
		}
		b, err := asInteger(elems[1])
		if err != nil {
			return nil, err
		}
		return boolOf(cmp(a, b)), nil
	}
}

// logicOp builds a 2-arity logical operator over the truth model.
func logicOp(name string, combine func(a, b bool) bool) value.Fn {
	return func(args value.Value) (value.Value, error) {
		elems, err := listElements(args)
		if err != nil {
			return nil, err
		}
		if len(elems) != 2 {
			return nil, arityError(name, "2", len(elems))
		}
		a := !IsFalsey(elems[0])
		b := !IsFalsey(elems[1])
		return boolOf(combine(a, b)), nil
	}
}

func opNot(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) != 1 {
		return nil, arityError("NOT", "1", len(elems))
	}
	return boolOf(IsFalsey(elems[0])), nil
}

// opCar/opCdr destructure the outer argument list once to reach the inner
// list the caller actually passed, then destructure that — spec §4.5's
// note that CAR/CDR operate on "the list passed", not on args itself.
func opCar(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) != 1 {
		return nil, arityError("CAR", "1", len(elems))
	}
	car, _, ok := value.Destructure(elems[0])
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, elems[0].Type())
	}
	return car, nil
}

func opCdr(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) != 1 {
		return nil, arityError("CDR", "1", len(elems))
	}
	_, cdr, ok := value.Destructure(elems[0])
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, elems[0].Type())
	}
	return cdr, nil
}

// opQuote is the legacy operator form of QUOTE (spec §4.5/§9): the
// evaluator's special form of the same name takes precedence because
// special-form dispatch happens before this operator is ever looked up as
// a callable. A bare QUOTE symbol outside head position evaluates to this
// Operator value (e.g. (def 'q quote)); called that way it returns its
// single argument as received, which, as for every operator, the evaluator
// has already evaluated.
func opQuote(args value.Value) (value.Value, error) {
	elems, err := listElements(args)
	if err != nil {
		return nil, err
	}
	if len(elems) != 1 {
		return nil, arityError("QUOTE", "1", len(elems))
	}
	return elems[0], nil
}

// Initialize interns every built-in operator into env's frame (intended to
// be the root frame). It is idempotent: it never rebinds NIL, already
// interned by env.NewRoot.
func Initialize(e *env.Environment) {
	register := func(name string, fn value.Fn) {
		e.Intern(name, value.NewOperator(name, fn))
	}

	register("+", opAdd)
	register("-", opSub)
	register("*", opMul)
	register("/", opDiv)
	register("=", compareOp("=", func(a, b int32) bool { return a == b }))
	register("<", compareOp("<", func(a, b int32) bool { return a < b }))
	register(">", compareOp(">", func(a, b int32) bool { return a > b }))
	register("AND", logicOp("AND", func(a, b bool) bool { return a && b }))
	register("OR", logicOp("OR", func(a, b bool) bool { return a || b }))
	register("NOT", opNot)
	register("CAR", opCar)
	register("CDR", opCdr)
	register("QUOTE", opQuote)
}
