package env

import (
	"sync"
	"testing"

	"github.com/cwbudde/go-lustre/internal/value"
)

func TestNewRootInternsNil(t *testing.T) {
	root := NewRoot()
	v, ok := root.Find("NIL")
	if !ok || !value.IsNil(v) {
		t.Fatalf("root must intern NIL, got (%v, %v)", v, ok)
	}
}

func TestInternAndFind(t *testing.T) {
	root := NewRoot()
	root.Intern("X", value.NewInteger(1))
	v, ok := root.Find("X")
	if !ok {
		t.Fatal("expected X to be found")
	}
	if n, _ := value.IntegerOf(v); n != 1 {
		t.Errorf("got %v, want 1", v)
	}
}

func TestChildFindsParentBinding(t *testing.T) {
	root := NewRoot()
	root.Intern("X", value.NewInteger(7))
	child := Push(root)
	v, ok := child.Find("X")
	if !ok {
		t.Fatal("child frame must see root binding")
	}
	if n, _ := value.IntegerOf(v); n != 7 {
		t.Errorf("got %v, want 7", v)
	}
}

func TestChildShadowsParentBinding(t *testing.T) {
	root := NewRoot()
	root.Intern("X", value.NewInteger(1))
	child := Push(root)
	child.Intern("X", value.NewInteger(2))

	if n, _ := value.IntegerOf(mustFind(t, child, "X")); n != 2 {
		t.Errorf("child shadow: got %v, want 2", n)
	}
	if n, _ := value.IntegerOf(mustFind(t, root, "X")); n != 1 {
		t.Errorf("parent unaffected: got %v, want 1", n)
	}
}

func TestFindLocalDoesNotWalkParent(t *testing.T) {
	root := NewRoot()
	root.Intern("X", value.NewInteger(1))
	child := Push(root)

	if _, ok := child.FindLocal("X"); ok {
		t.Fatal("FindLocal must not see the parent frame's binding")
	}
}

func TestUninternRemovesLocalBinding(t *testing.T) {
	root := NewRoot()
	root.Intern("X", value.NewInteger(1))
	root.Unintern("X")
	if _, ok := root.Find("X"); ok {
		t.Fatal("X must be gone after Unintern")
	}
}

func TestRootAndOuter(t *testing.T) {
	root := NewRoot()
	child := Push(root)
	grandchild := Push(child)

	if grandchild.Root() != root {
		t.Error("Root() must walk to the global frame")
	}
	if child.Outer() != root {
		t.Error("Outer() must return the immediate parent")
	}
	if root.Outer() != nil {
		t.Error("root frame has no Outer")
	}
}

func TestDefineAtRootForbidsRedefinition(t *testing.T) {
	root := NewRoot()
	child := Push(root)

	if ok := child.DefineAtRoot("X", value.NewInteger(1)); !ok {
		t.Fatal("first DefineAtRoot must succeed")
	}
	if ok := child.DefineAtRoot("X", value.NewInteger(2)); ok {
		t.Fatal("second DefineAtRoot for the same name must fail")
	}
	if n, _ := value.IntegerOf(mustFind(t, root, "X")); n != 1 {
		t.Errorf("root binding must keep its original value, got %v", n)
	}
}

func TestDefineAtRootConcurrentOnlyOneWins(t *testing.T) {
	root := NewRoot()
	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if root.DefineAtRoot("CONTESTED", value.NewInteger(int32(i))) {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one DefineAtRoot to win, got %d", successes)
	}
}

func mustFind(t *testing.T, e *Environment, name string) value.Value {
	t.Helper()
	v, ok := e.Find(name)
	if !ok {
		t.Fatalf("expected %s to be bound", name)
	}
	return v
}
