// Package env implements the lexically scoped environment chain: a linked
// sequence of frames, each mapping upper-cased symbol names to value
// handles. Frames are created on lambda entry and discarded on lambda exit;
// the bottom frame is the global environment.
//
// The frame shape is grounded on the teacher interpreter's
// internal/interp/runtime.Environment (store + outer pointer, chain-walking
// Get/Set), generalized from its case-insensitive ident.Map-backed store to
// a plain map guarded by sync.RWMutex: golustre's keys are already
// upper-cased by the reader, and the parallel evaluator (spec §5) needs the
// explicit read/write lock that a case-insensitive map would otherwise hide.
package env

import (
	"sync"

	"github.com/cwbudde/go-lustre/internal/value"
)

// Environment is one frame in the lexical scope chain.
type Environment struct {
	mu    sync.RWMutex
	store map[string]value.Value
	outer *Environment
}

// NewRoot constructs the root frame and interns the NIL binding, per spec §4.4.
func NewRoot() *Environment {
	e := &Environment{store: make(map[string]value.Value)}
	e.store["NIL"] = value.Nil()
	return e
}

// Push constructs a child frame referencing parent. Used on lambda entry;
// the frame is discarded (left to the garbage collector) on lambda exit.
func Push(parent *Environment) *Environment {
	return &Environment{store: make(map[string]value.Value), outer: parent}
}

// Find searches the current frame, then the parent chain, for name.
// Lookup is case-sensitive on the already-upper-cased key (spec §4.4).
func (e *Environment) Find(name string) (value.Value, bool) {
	e.mu.RLock()
	v, ok := e.store[name]
	e.mu.RUnlock()
	if ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Find(name)
	}
	return nil, false
}

// FindLocal searches only the current frame, without walking the parent
// chain. DEF does not use it: its forbid-redefinition check runs inside
// DefineAtRoot under the root frame's write lock.
func (e *Environment) FindLocal(name string) (value.Value, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.store[name]
	return v, ok
}

// Intern inserts or replaces name in the current frame only; it never
// rebinds a parent frame's entry. Returns the value for chaining.
func (e *Environment) Intern(name string, v value.Value) value.Value {
	e.mu.Lock()
	e.store[name] = v
	e.mu.Unlock()
	return v
}

// Unintern removes name from the current frame only.
func (e *Environment) Unintern(name string) {
	e.mu.Lock()
	delete(e.store, name)
	e.mu.Unlock()
}

// Root walks to the bottom of the chain and returns the global frame.
func (e *Environment) Root() *Environment {
	cur := e
	for cur.outer != nil {
		cur = cur.outer
	}
	return cur
}

// Outer returns the enclosing frame, or nil at the root.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// DefineAtRoot implements the DEF contract of spec §4.6/§5: the read of
// "is this name already bound at the root?" and the write of the new
// binding happen under the root frame's single write lock, so concurrent
// DEFs in parallel mode serialize correctly. It returns false if name was
// already bound (the canonical forbid-redefinition policy, spec §9).
func (e *Environment) DefineAtRoot(name string, v value.Value) bool {
	root := e.Root()
	root.mu.Lock()
	defer root.mu.Unlock()
	if _, exists := root.store[name]; exists {
		return false
	}
	root.store[name] = v
	return true
}
