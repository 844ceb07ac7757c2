package utsuwa

import (
	"errors"
	"fmt"
	"sync"
)

// CellInfo describes a declared cell without exposing its payload type.
// Every *Cell[T] implements it.
type CellInfo interface {
	// Name returns the name the cell was declared with.
	Name() string
	// Type returns the name of the cell's payload type.
	Type() string
	// Initialized reports whether the cell currently holds a value.
	Initialized() bool
}

// registry records every declared cell in declaration order. The mutex
// guards the slice only; no cell access path takes it.
var registry struct {
	mu    sync.Mutex
	cells []CellInfo
}

func register(c CellInfo) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.cells = append(registry.cells, c)
}

// Cells returns a snapshot of every declared cell, in declaration order.
// The registry is observational: it exists so startup code and tools can
// enumerate what the program declared, not to enforce anything.
func Cells() []CellInfo {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return append([]CellInfo(nil), registry.cells...)
}

// Uninitialized returns the declared cells that hold no value yet.
func Uninitialized() []CellInfo {
	var empty []CellInfo
	for _, c := range Cells() {
		if !c.Initialized() {
			empty = append(empty, c)
		}
	}
	return empty
}

// VerifyInitialized returns nil when every declared cell holds a value,
// and otherwise one error per empty cell, joined together. Startup code
// can call it after initialization to catch a forgotten cell at a single
// well-known place instead of at the first faulty access:
//
//	if err := utsuwa.VerifyInitialized(); err != nil {
//	    log.Fatal(err)
//	}
func VerifyInitialized() error {
	var errs []error
	for _, c := range Uninitialized() {
		errs = append(errs, fmt.Errorf("utsuwa: context %q (%s) not initialized", c.Name(), c.Type()))
	}
	return errors.Join(errs...)
}
