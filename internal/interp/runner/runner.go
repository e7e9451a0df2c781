// Package runner assembles the lexer, reader, environment, operator
// library, and evaluator behind a single constructor, grounded on the
// teacher interpreter's internal/interp/runner.Runner: one type that owns
// the full read-eval loop so the CLI and the test fixtures share the exact
// same wiring instead of re-deriving it at each call site.
package runner

import (
	"io"

	"github.com/cwbudde/go-lustre/internal/diag"
	"github.com/cwbudde/go-lustre/internal/env"
	"github.com/cwbudde/go-lustre/internal/evaluator"
	"github.com/cwbudde/go-lustre/internal/lexer"
	"github.com/cwbudde/go-lustre/internal/operators"
	"github.com/cwbudde/go-lustre/internal/reader"
	"github.com/cwbudde/go-lustre/internal/value"
)

// Options configures a Runner's evaluator strategy.
type Options struct {
	// Parallel selects the goroutine-fanout evaluator (spec §5).
	Parallel bool
	// MaxRecursionDepth overrides evaluator.DefaultMaxRecursionDepth when
	// non-zero.
	MaxRecursionDepth int
}

// Runner owns one root environment and evaluator, and reads/evaluates a
// sequence of top-level expressions from a source stream.
type Runner struct {
	env *env.Environment
	ev  *evaluator.Evaluator
}

// New constructs a Runner with the default (sequential) evaluator.
func New() *Runner {
	return NewWithOptions(Options{})
}

// NewWithOptions constructs a Runner with an explicitly configured
// evaluator strategy.
func NewWithOptions(opts Options) *Runner {
	root := env.NewRoot()
	operators.Initialize(root)
	ev := evaluator.New(&evaluator.Config{
		Parallel:          opts.Parallel,
		MaxRecursionDepth: opts.MaxRecursionDepth,
	})
	return &Runner{env: root, ev: ev}
}

// Env exposes the root environment, e.g. for a REPL to report bindings or
// for tests to seed additional definitions before running a fixture.
func (r *Runner) Env() *env.Environment { return r.env }

// EvalString reads and evaluates every top-level expression in src in
// order, returning the value of the last one. An empty or all-whitespace
// src yields Nil.
func (r *Runner) EvalString(src string) (value.Value, error) {
	return r.EvalReader(lexer.NewFromString(src))
}

// EvalStream reads and evaluates every top-level expression from r in
// order, the batch-driver entry point (spec §1's "a REPL or batch driver").
func (r *Runner) EvalStream(src io.Reader) (value.Value, error) {
	return r.EvalReader(lexer.New(src))
}

// EvalReader drives the read-eval loop over an already-constructed lexer,
// shared by EvalString and EvalStream. The REPL does not use it; it calls
// ReadEval one expression at a time.
func (r *Runner) EvalReader(lex *lexer.Lexer) (value.Value, error) {
	rd := reader.New(lex)
	result := value.Nil()
	for {
		expr, ok, err := rd.Read()
		if err != nil {
			return nil, wrapReadError(err)
		}
		if !ok {
			return result, nil
		}
		result, err = r.ev.Eval(expr, r.env)
		if err != nil {
			return nil, err
		}
	}
}

// ReadEval reads and evaluates a single top-level expression from lex. ok
// is false at end of input. Used by the REPL, which needs per-expression
// control rather than EvalReader's drive-to-EOF loop.
func (r *Runner) ReadEval(lex *lexer.Lexer) (v value.Value, ok bool, err error) {
	rd := reader.New(lex)
	expr, ok, err := rd.Read()
	if err != nil {
		return nil, ok, wrapReadError(err)
	}
	if !ok {
		return nil, false, nil
	}
	v, err = r.ev.Eval(expr, r.env)
	return v, true, err
}

// wrapReadError lifts a *lexer.Error or *reader.Error into a *diag.Error so
// every error the Runner returns — lexing, parsing, or evaluation — shares
// the same CLI-facing Format/caret rendering (internal/diag.Error.Format).
func wrapReadError(err error) error {
	switch e := err.(type) {
	case *lexer.Error:
		return &diag.Error{Kind: diag.KindInput, Pos: e.Pos, Msg: e.Msg, Err: e}
	case *reader.Error:
		return &diag.Error{Kind: diag.KindParse, Pos: e.Pos, Msg: e.Msg, Err: e}
	default:
		return err
	}
}
