package runner

import "testing"

func TestEvalStringReturnsLastFormsValue(t *testing.T) {
	r := New()
	got, err := r.EvalString(`(def 'x 1) (def 'y 2) (+ x y)`)
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if got.String() != "3" {
		t.Errorf("got %s, want 3", got.String())
	}
}

func TestEvalStringEmptyInputIsNil(t *testing.T) {
	r := New()
	got, err := r.EvalString("   ")
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if got.String() != "NIL" {
		t.Errorf("got %s, want NIL", got.String())
	}
}

func TestParallelRunnerAgreesWithSequential(t *testing.T) {
	const src = `(def 'fact (lambda (n) (if (< n 1) 1 (* n (fact (- n 1)))))) (fact 7)`

	seq := New()
	seqResult, err := seq.EvalString(src)
	if err != nil {
		t.Fatalf("sequential EvalString: %v", err)
	}

	par := NewWithOptions(Options{Parallel: true})
	parResult, err := par.EvalString(src)
	if err != nil {
		t.Fatalf("parallel EvalString: %v", err)
	}

	if seqResult.String() != "5040" || parResult.String() != "5040" {
		t.Fatalf("got sequential=%s parallel=%s, want both 5040", seqResult.String(), parResult.String())
	}
}

func TestEnvExposesRootBindings(t *testing.T) {
	r := New()
	if _, err := r.EvalString(`(def 'z 99)`); err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if _, ok := r.Env().Find("Z"); !ok {
		t.Fatal("expected Z to be visible through Env()")
	}
}
