//go:build !utsuwa_unchecked

package utsuwa

// defaultMode is the compiled-in access mode. Regular builds start in
// Checked mode; building with -tags utsuwa_unchecked starts in Unchecked
// mode instead. SetMode can override either at startup.
const defaultMode = Checked
