//go:build utsuwa_unchecked

package utsuwa

// defaultMode is the compiled-in access mode for builds carrying the
// utsuwa_unchecked tag: no emptiness checks anywhere in the process.
const defaultMode = Unchecked
