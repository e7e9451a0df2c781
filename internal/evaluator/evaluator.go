// Package evaluator implements spec §4.6: special-form dispatch, function
// application, and recursive reduction under a lexically scoped
// environment. A single Evaluator struct carries two list-evaluation
// strategies behind its parallel flag — sequential (the default, strictly
// depth-first) and parallel (fans argument evaluation out across
// goroutines, spec §5) — so the same fixture suite exercises both
// (SPEC_FULL.md §8).
package evaluator

import (
	"github.com/cwbudde/go-lustre/internal/diag"
	"github.com/cwbudde/go-lustre/internal/env"
	"github.com/cwbudde/go-lustre/internal/value"
)

// Special form names, matched case-sensitively against the already
// upper-cased symbol the reader produced (spec §4.6).
const (
	formIf     = "IF"
	formQuote  = "QUOTE"
	formLambda = "LAMBDA"
	formDef    = "DEF"
)

// DefaultMaxRecursionDepth bounds non-tail recursion depth, turning a
// runaway program (spec's Non-goal: no TCO) into a typed error instead of
// a native stack overflow. Grounded on the teacher evaluator's
// Config.MaxRecursionDepth / DefaultMaxRecursionDepth convention.
const DefaultMaxRecursionDepth = 10000

// msgRecursionLimit is the message of the *diag.Error of kind KindCallable
// returned when MaxRecursionDepth is exceeded.
const msgRecursionLimit = "recursion limit exceeded (%d)"

// Config configures an Evaluator, grounded on the teacher's small
// evaluator.Config struct threaded through construction rather than
// package-level globals.
type Config struct {
	// Parallel selects the goroutine-fanout argument evaluator (spec §5).
	// Zero value (false) is the sequential, default mode.
	Parallel bool
	// MaxRecursionDepth overrides DefaultMaxRecursionDepth when non-zero.
	MaxRecursionDepth int
}

// Evaluator reduces expressions under an Environment.
type Evaluator struct {
	maxDepth int
	parallel bool
}

// New constructs an Evaluator from cfg. A nil cfg yields the sequential
// evaluator with the default recursion limit.
func New(cfg *Config) *Evaluator {
	e := &Evaluator{maxDepth: DefaultMaxRecursionDepth}
	if cfg != nil {
		e.parallel = cfg.Parallel
		if cfg.MaxRecursionDepth > 0 {
			e.maxDepth = cfg.MaxRecursionDepth
		}
	}
	return e
}

// Eval reduces expr under environment e, per the dispatch order of spec §4.6.
func (ev *Evaluator) Eval(expr value.Value, e *env.Environment) (value.Value, error) {
	return ev.eval(expr, e, 0)
}

func (ev *Evaluator) eval(expr value.Value, e *env.Environment, depth int) (value.Value, error) {
	if depth > ev.maxDepth {
		return nil, diag.New(diag.KindCallable, msgRecursionLimit, ev.maxDepth)
	}

	// 1. Nil evaluates to itself.
	if value.IsNil(expr) {
		return value.Nil(), nil
	}

	// 2. Symbol resolves through the environment chain.
	if name, ok := value.SymbolOf(expr); ok {
		v, found := e.Find(name)
		if !found {
			return nil, diag.New(diag.KindBinding, diag.MsgUnboundSymbol, name)
		}
		return v, nil
	}

	// 4. Cons: special form or application.
	if car, rest, ok := value.Destructure(expr); ok {
		if name, isSym := value.SymbolOf(car); isSym {
			switch name {
			case formIf:
				return ev.evalIf(rest, e, depth)
			case formQuote:
				return ev.evalQuote(rest)
			case formLambda:
				return ev.evalLambda(rest)
			case formDef:
				return ev.evalDef(rest, e, depth)
			}
		}

		callable, err := ev.eval(car, e, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := ev.evalList(rest, e, depth+1)
		if err != nil {
			return nil, err
		}
		return ev.apply(callable, args, e, depth+1)
	}

	// 3. Every other atom (Integer, String, Lambda, Operator) is
	// self-evaluating.
	return expr, nil
}

// evalIf implements the IF special form: only the taken branch is
// evaluated (spec §4.6/§5/§8 — the "single-branch IF" property needed for
// correct recursion, e.g. fact).
func (ev *Evaluator) evalIf(rest value.Value, e *env.Environment, depth int) (value.Value, error) {
	testExpr, afterTest, ok := value.Destructure(rest)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, rest.Type())
	}
	thenExpr, afterThen, ok := value.Destructure(afterTest)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, afterTest.Type())
	}
	elseExpr, _, ok := value.Destructure(afterThen)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, afterThen.Type())
	}

	test, err := ev.eval(testExpr, e, depth+1)
	if err != nil {
		return nil, err
	}
	if value.NotNil(test) {
		return ev.eval(thenExpr, e, depth+1)
	}
	return ev.eval(elseExpr, e, depth+1)
}

// evalQuote implements the QUOTE special form: return the argument
// unevaluated. It shadows the like-named operator because special forms
// are matched before the callable is ever looked up (spec §9).
func (ev *Evaluator) evalQuote(rest value.Value) (value.Value, error) {
	inner, _, ok := value.Destructure(rest)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, rest.Type())
	}
	return inner, nil
}

// evalLambda constructs a Lambda value from (params body). No closure over
// the defining environment is recorded (design note §9): free variables in
// the body resolve dynamically through the caller's frame chain.
func (ev *Evaluator) evalLambda(rest value.Value) (value.Value, error) {
	params, afterParams, ok := value.Destructure(rest)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, rest.Type())
	}
	body, _, ok := value.Destructure(afterParams)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, afterParams.Type())
	}
	return value.NewLambda(params, body), nil
}

// evalDef evaluates (quoted-name value-expr), interning the binding at the
// root environment. Fails if the symbol is already bound there (the
// canonical forbid-redefinition policy, spec §9).
func (ev *Evaluator) evalDef(rest value.Value, e *env.Environment, depth int) (value.Value, error) {
	nameExpr, afterName, ok := value.Destructure(rest)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, rest.Type())
	}
	valueExpr, _, ok := value.Destructure(afterName)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, afterName.Type())
	}

	nameVal, err := ev.eval(nameExpr, e, depth+1)
	if err != nil {
		return nil, err
	}
	name, ok := value.SymbolOf(nameVal)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotSymbol, nameVal.Type())
	}

	v, err := ev.eval(valueExpr, e, depth+1)
	if err != nil {
		return nil, err
	}

	if !e.DefineAtRoot(name, v) {
		return nil, diag.New(diag.KindBinding, diag.MsgAlreadyBound, name)
	}
	return v, nil
}

// evalList evaluates each element of a list in order, dispatching to the
// sequential or parallel strategy per ev.parallel.
func (ev *Evaluator) evalList(list value.Value, e *env.Environment, depth int) (value.Value, error) {
	if ev.parallel {
		return ev.evalListParallel(list, e, depth)
	}
	return ev.evalListSequential(list, e, depth)
}

func (ev *Evaluator) evalListSequential(list value.Value, e *env.Environment, depth int) (value.Value, error) {
	if value.IsNil(list) {
		return value.Nil(), nil
	}
	head, tail, ok := value.Destructure(list)
	if !ok {
		return nil, diag.New(diag.KindShape, diag.MsgNotCons, list.Type())
	}
	v, err := ev.eval(head, e, depth+1)
	if err != nil {
		return nil, err
	}
	restV, err := ev.evalListSequential(tail, e, depth+1)
	if err != nil {
		return nil, err
	}
	return value.NewCons(v, restV), nil
}

// Apply dispatches a callable to its evaluated argument list under
// environment e, the entry point used by callers outside the
// evaluator's own recursion (e.g. the runner's top-level loop never calls
// this directly; it goes through Eval).
func (ev *Evaluator) Apply(callable, args value.Value, e *env.Environment) (value.Value, error) {
	return ev.apply(callable, args, e, 0)
}

// apply dispatches a callable to its evaluated argument list, per spec §4.6.
func (ev *Evaluator) apply(callable, args value.Value, e *env.Environment, depth int) (value.Value, error) {
	switch fn := callable.(type) {
	case *value.Operator:
		return fn.Fn(args)
	case *value.Lambda:
		return ev.applyLambda(fn, args, e, depth)
	default:
		return nil, diag.New(diag.KindCallable, diag.MsgNotCallable, callable.Type())
	}
}

// applyLambda binds parameters in a fresh frame pushed off the call site's
// environment e, not a captured definition-site environment: per design
// note §9, Lambda values carry no closure, so free variables in the body
// resolve dynamically through whichever frame chain is active at the call
// (spec's Non-goal: no lexical closures).
func (ev *Evaluator) applyLambda(fn *value.Lambda, args value.Value, e *env.Environment, depth int) (value.Value, error) {
	scope := env.Push(e)
	params := fn.Params
	nextArgs := args

	for value.NotNil(params) && value.NotNil(nextArgs) {
		param, paramsTail, ok := value.Destructure(params)
		if !ok {
			return nil, diag.New(diag.KindShape, diag.MsgNotCons, params.Type())
		}
		argVal, argsTail, ok := value.Destructure(nextArgs)
		if !ok {
			return nil, diag.New(diag.KindShape, diag.MsgNotCons, nextArgs.Type())
		}
		name, ok := value.SymbolOf(param)
		if !ok {
			return nil, diag.New(diag.KindShape, diag.MsgNotSymbol, param.Type())
		}
		scope.Intern(name, argVal)
		params = paramsTail
		nextArgs = argsTail
	}
	// Excess arguments are silently dropped; missing ones leave the
	// parameter unbound and fail at lookup time inside the body (spec §4.6).

	return ev.eval(fn.Body, scope, depth+1)
}
