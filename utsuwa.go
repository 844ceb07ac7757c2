// Package utsuwa provides named, process-wide context cells.
//
// The name comes from the Japanese word for a vessel (器). Each cell is a
// single vessel: declared empty at program load, filled exactly once by
// startup code, and read or mutated from anywhere in the program without
// threading a handle through function signatures.
//
// Key features:
//   - Explicit singleton declaration via package-level variables
//   - Exactly-once initialization with use-before-init detection
//   - Direct reference access with no per-access allocation
//   - Checked and unchecked access modes, selectable at build or startup
//   - Registry introspection to verify startup initialized every cell
//   - Optional binding of cells to external sources (see the bind package)
//
// A cell performs no synchronization of its own. It assumes a single
// logical owner goroutine or externally synchronized access; callers that
// share a cell across goroutines must provide their own mutual exclusion,
// for example by making the payload type carry a mutex.
package utsuwa
