package bind

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"
)

// Default intervals for watching.
const (
	// DefaultDebounceDelay is the default delay used to batch rapid
	// successive changes into a single reload.
	DefaultDebounceDelay = 100 * time.Millisecond

	// DefaultPollInterval is the default polling interval for sources
	// that cannot push notifications.
	DefaultPollInterval = 30 * time.Second
)

// CompareFunc compares two payloads and returns true if they differ.
type CompareFunc func(old, new []byte) bool

// DefaultCompareFunc compares payloads directly using bytes.Equal.
// This is efficient for small to medium-sized data.
func DefaultCompareFunc(old, new []byte) bool {
	return !bytes.Equal(old, new)
}

// HashCompareFunc compares payloads using SHA-256 hashes.
// This is more efficient for large data where keeping a copy is expensive.
func HashCompareFunc(old, new []byte) bool {
	return sha256.Sum256(old) != sha256.Sum256(new)
}

// WatchConfig configures the Watch behavior.
type WatchConfig struct {
	// DebounceDelay is the delay to wait for additional changes before
	// reloading. This batches rapid successive changes into one reload.
	// Default: 100ms
	DebounceDelay time.Duration

	// PollInterval is the interval between polls for sources that do not
	// implement WatchableSource. Default: 30s
	PollInterval time.Duration

	// CompareFunc detects changes between the previous and the freshly
	// loaded payload. Default: DefaultCompareFunc (bytes.Equal).
	CompareFunc CompareFunc

	// OnError is called when a watch cycle fails: a load, decode, or
	// validation error. The cell keeps its previous value. If nil,
	// errors are silently ignored.
	OnError func(err error)

	// OnApply is called after the cell has been re-initialized with a
	// changed value.
	OnApply func()
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay: DefaultDebounceDelay,
		PollInterval:  DefaultPollInterval,
		CompareFunc:   DefaultCompareFunc,
	}
}

// watchEvent is one change signal from a subscription or the poll loop.
// data is nil for event-only signals, which make the watch loop fetch
// fresh bytes via Load.
type watchEvent struct {
	data []byte
	err  error
}

// Watch starts watching the binder's source. When the payload changes,
// the new value is decoded, validated, and re-initialized into the cell.
// Call Load before Watch so the cell and the change-detection baseline
// start from the current source contents.
//
// Sources implementing WatchableSource push notifications; other sources
// are polled at cfg.PollInterval. Rapid successive changes are debounced
// by cfg.DebounceDelay. Failed cycles report through cfg.OnError and
// leave the cell's value in place.
//
// Re-initialization is a plain write to the cell with no synchronization.
// Programs that read the cell from other goroutines while watching must
// provide their own coordination; the straightforward pattern is to do
// all cell access from one goroutine and treat OnApply as the signal.
//
// Returns a stop function that ends the watch and releases the source
// subscription.
//
// Example:
//
//	stop, err := b.Watch(ctx, bind.DefaultWatchConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stop(context.Background())
func (b *Binder[T]) Watch(ctx context.Context, cfg WatchConfig) (stop StopFunc, err error) {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.CompareFunc == nil {
		cfg.CompareFunc = DefaultCompareFunc
	}

	watchCtx, cancel := context.WithCancel(ctx)
	events := make(chan watchEvent, 16)

	var stopSub StopFunc
	if ws, ok := b.source.(WatchableSource); ok {
		stopSub, err = ws.Subscribe(watchCtx, func(data []byte, err error) {
			select {
			case events <- watchEvent{data: data, err: err}:
			case <-watchCtx.Done():
			}
		})
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", b.source, err)
		}
	} else {
		go b.pollLoop(watchCtx, events, cfg)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.watchLoop(watchCtx, events, cfg)
	}()

	stop = func(stopCtx context.Context) error {
		cancel()

		var errs []error
		if stopSub != nil {
			if err := stopSub(stopCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to stop subscription to %s: %w", b.source, err))
			}
		}
		select {
		case <-done:
		case <-stopCtx.Done():
			errs = append(errs, stopCtx.Err())
		}
		return errors.Join(errs...)
	}
	return stop, nil
}

// pollLoop loads the source at the configured interval and forwards the
// result as events. Change detection happens in the watch loop.
func (b *Binder[T]) pollLoop(ctx context.Context, events chan<- watchEvent, cfg WatchConfig) {
	for {
		start := time.Now()

		data, err := b.source.Load(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case events <- watchEvent{data: data, err: err}:
		case <-ctx.Done():
			return
		}

		// Account for load time so polls stay on the interval.
		wait := cfg.PollInterval - time.Since(start)
		if wait <= 0 {
			continue
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}
}

// watchLoop debounces incoming events and applies the latest payload to
// the cell once the debounce period elapses without further changes.
func (b *Binder[T]) watchLoop(ctx context.Context, events <-chan watchEvent, cfg WatchConfig) {
	var debounce *time.Timer
	var pending []byte
	var pendingSet bool

	// fire returns the debounce channel, or a nil channel that never
	// fires while no change is pending.
	fire := func() <-chan time.Time {
		if debounce != nil {
			return debounce.C
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case ev, ok := <-events:
			if !ok {
				return
			}

			// Report errors immediately; they do not reset the debounce.
			if ev.err != nil {
				if cfg.OnError != nil {
					cfg.OnError(fmt.Errorf("failed to watch %s: %w", b.source, ev.err))
				}
				continue
			}

			// Keep the latest payload. Event-only signals clear it so the
			// fire path fetches fresh bytes.
			pending, pendingSet = ev.data, ev.data != nil

			if debounce == nil {
				debounce = time.NewTimer(cfg.DebounceDelay)
			} else {
				debounce.Stop()
				debounce.Reset(cfg.DebounceDelay)
			}

		case <-fire():
			debounce = nil

			data := pending
			if !pendingSet {
				var err error
				data, err = b.source.Load(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					if cfg.OnError != nil {
						cfg.OnError(fmt.Errorf("failed to load %s: %w", b.source, err))
					}
					continue
				}
			}
			pending, pendingSet = nil, false

			// Skip unchanged payloads.
			if b.lastData != nil && !cfg.CompareFunc(b.lastData, data) {
				continue
			}

			if err := b.apply(data); err != nil {
				if cfg.OnError != nil {
					cfg.OnError(err)
				}
				continue
			}
			if cfg.OnApply != nil {
				cfg.OnApply()
			}
		}
	}
}
