package utsuwa

import (
	"fmt"
	"reflect"
)

// Cell is a process-wide storage slot for a single value of type T.
// It starts empty, is filled by Init, and thereafter hands out direct
// references to the contained value. The Cell pointer itself is stable
// for the lifetime of the process, so it can be captured once at
// declaration and used from anywhere.
//
// A Cell provides no interior synchronization. Access from multiple
// goroutines requires external coordination: confine all access to one
// goroutine, or store a payload type that carries its own mutex or
// atomic state.
type Cell[T any] struct {
	val      *T
	name     string
	typeName string
}

var _ CellInfo = (*Cell[struct{}])(nil)

// New declares a new, empty Cell for values of type T. It is intended to
// be called from a package-level var so the cell exists before main runs:
//
//	var appConfig = utsuwa.New[Config]("app-config")
//
// The name identifies the cell in diagnostics and in the registry. New
// records the cell in the process-wide registry for introspection; it
// does not enforce name uniqueness, since uniqueness already follows from
// each cell having exactly one declaration site.
func New[T any](name string) *Cell[T] {
	c := &Cell[T]{
		name:     name,
		typeName: reflect.TypeOf((*T)(nil)).Elem().String(),
	}
	register(c)
	return c
}

// Init fills the cell with v. Startup code is expected to call Init
// exactly once per cell, before any access. Once filled, a cell never
// becomes empty again.
//
// Calling Init on an already-filled cell silently replaces the held
// value; no diagnostic is emitted in either mode. References obtained
// before the replacement keep pointing at the replaced value, so callers
// must not hold them across a re-initialization. Deliberate
// re-initialization is how live reloading works (see the bind package).
func (c *Cell[T]) Init(v T) {
	c.val = &v
}

// Initialized reports whether the cell currently holds a value.
func (c *Cell[T]) Initialized() bool {
	return c.val != nil
}

// Name returns the name the cell was declared with.
func (c *Cell[T]) Name() string {
	return c.name
}

// Type returns the name of the cell's payload type.
func (c *Cell[T]) Type() string {
	return c.typeName
}

// Ref returns a reference to the contained value for reading.
//
// In Checked mode (the default) accessing an empty cell panics with a
// message naming the cell and its payload type; use-before-init is a
// programming error to be fixed, not a condition to be handled. In
// Unchecked mode the emptiness check is skipped and Ref returns an
// invalid (nil) reference for an empty cell.
//
// The returned pointer aliases the cell's single slot. Treat it as
// read-only; MutRef states the intent to mutate.
func (c *Cell[T]) Ref() *T {
	c.check()
	return c.val
}

// MutRef returns a reference to the contained value for mutation.
// Changes made through the reference are visible to every subsequent
// access of the same cell. Failure semantics match Ref.
func (c *Cell[T]) MutRef() *T {
	c.check()
	return c.val
}

// View resolves a read reference once and passes it to fn. It is the
// block form of Ref, for callers that prefer the access to be visibly
// scoped:
//
//	appConfig.View(func(cfg *Config) {
//	    fmt.Println(cfg.Listen)
//	})
func (c *Cell[T]) View(fn func(*T)) {
	fn(c.Ref())
}

// Update resolves a mutable reference once and passes it to fn. It is
// the block form of MutRef.
func (c *Cell[T]) Update(fn func(*T)) {
	fn(c.MutRef())
}

// check enforces the access-mode contract: panic on an empty cell in
// Checked mode, no check at all in Unchecked mode.
func (c *Cell[T]) check() {
	if mode == Checked && c.val == nil {
		panic(fmt.Sprintf("utsuwa: context %q (%s) has not been initialized", c.name, c.typeName))
	}
}
