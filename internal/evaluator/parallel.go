package evaluator

import (
	"sync"

	"github.com/cwbudde/go-lustre/internal/diag"
	"github.com/cwbudde/go-lustre/internal/env"
	"github.com/cwbudde/go-lustre/internal/value"
)

// evalListParallel evaluates each element of list on its own goroutine,
// fanning out the whole list at once and reassembling the results in their
// original left-to-right order (spec §5). Correctness rests on two
// invariants enforced elsewhere: operators are pure (no hidden state) and
// environment reads are safe to share across goroutines under the RWMutex
// in package env — only DEF writes, and DEF always targets the root frame
// under its own exclusive lock (env.Environment.DefineAtRoot).
func (ev *Evaluator) evalListParallel(list value.Value, e *env.Environment, depth int) (value.Value, error) {
	elems, err := flattenList(list)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return value.Nil(), nil
	}

	results := make([]value.Value, len(elems))
	errs := make([]error, len(elems))

	var wg sync.WaitGroup
	wg.Add(len(elems))
	for i, expr := range elems {
		go func(i int, expr value.Value) {
			defer wg.Done()
			results[i], errs[i] = ev.eval(expr, e, depth+1)
		}(i, expr)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return value.List(results...), nil
}

// flattenList walks a proper list into a Go slice without evaluating it.
func flattenList(list value.Value) ([]value.Value, error) {
	var out []value.Value
	for value.NotNil(list) {
		car, cdr, ok := value.Destructure(list)
		if !ok {
			return nil, diag.New(diag.KindShape, diag.MsgNotCons, list.Type())
		}
		out = append(out, car)
		list = cdr
	}
	return out, nil
}
