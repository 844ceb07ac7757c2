// Package bind connects context cells to external data. A Binder loads
// raw bytes from a Source, decodes them with a codec, and initializes a
// cell; it can also watch the source and re-initialize the cell when the
// data changes. Source implementations live in the file, env, and bytes
// subpackages; anything that can produce bytes can be a Source.
package bind

import (
	"context"
	"errors"
)

// ErrValidation wraps failures reported by a binder's validate callback,
// so callers can distinguish a rejected value from an I/O or decode
// error with errors.Is.
var ErrValidation = errors.New("validation failed")

// Source loads raw data for a binder. Sources handle I/O only; decoding
// is the codec's job.
type Source interface {
	// Load reads the raw data from the source.
	// The context can be used for cancellation and timeouts.
	Load(ctx context.Context) ([]byte, error)

	// String describes the source for diagnostics, e.g. its file path.
	String() string
}

// NotifyFunc is a callback for subscription-based sources. Sources call
// it with (data, nil) when new data is already in hand, (nil, err) on
// watch errors, and (nil, nil) as an event-only signal that tells the
// watcher to fetch via Load.
type NotifyFunc func(data []byte, err error)

// StopFunc stops a subscription or a running watch.
// The context can be used for timeout/cancellation of cleanup operations.
type StopFunc func(ctx context.Context) error

// WatchableSource is a Source that can push change notifications.
// Sources that do not implement it are polled instead.
type WatchableSource interface {
	Source

	// Subscribe starts receiving change notifications.
	// The notify function is called when data changes or an error occurs.
	// Returns a StopFunc to unsubscribe, or an error if subscription failed.
	Subscribe(ctx context.Context, notify NotifyFunc) (StopFunc, error)
}

// SourceFunc adapts a function to the Source interface.
//
// Example:
//
//	src := bind.SourceFunc(func(ctx context.Context) ([]byte, error) {
//	    return secretManager.Fetch(ctx, "app-config")
//	})
type SourceFunc func(ctx context.Context) ([]byte, error)

var _ Source = (SourceFunc)(nil)

// Load implements the Source interface.
func (f SourceFunc) Load(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// String implements the Source interface.
func (f SourceFunc) String() string {
	return "func"
}
