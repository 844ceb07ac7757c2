package bind

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Binding is the type-erased surface of a Binder. It lets binders with
// different payload types be loaded and watched together.
type Binding interface {
	Load(ctx context.Context) error
	Watch(ctx context.Context, cfg WatchConfig) (StopFunc, error)
}

var _ Binding = (*Binder[struct{}])(nil)

// Group loads and watches several bindings together, so startup code can
// fill every cell with one call.
type Group struct {
	bindings []Binding
}

// NewGroup creates a Group from the given bindings.
//
// Example:
//
//	g := bind.NewGroup(
//	    bind.New(appConfig, file.New("app.yaml"), yaml.New()),
//	    bind.New(dbConfig, file.New("db.yaml"), yaml.New()),
//	)
//	if err := g.LoadAll(ctx); err != nil {
//	    log.Fatal(err)
//	}
func NewGroup(bindings ...Binding) *Group {
	return &Group{bindings: bindings}
}

// Add appends bindings to the group. Not safe to call after LoadAll or
// WatchAll has started.
func (g *Group) Add(bindings ...Binding) {
	g.bindings = append(g.bindings, bindings...)
}

// LoadAll loads every binding concurrently and waits for all of them.
// It returns the first error encountered. Bindings that succeeded have
// initialized their cells even when LoadAll returns an error; combine
// with utsuwa.VerifyInitialized to decide whether startup can proceed.
func (g *Group) LoadAll(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, b := range g.bindings {
		eg.Go(func() error {
			return b.Load(ctx)
		})
	}
	return eg.Wait()
}

// WatchAll starts watching every binding with the same configuration and
// combines the stop functions into one. If any watch fails to start, the
// already started watches are stopped and the error is returned.
func (g *Group) WatchAll(ctx context.Context, cfg WatchConfig) (StopFunc, error) {
	var stops []StopFunc
	for i, b := range g.bindings {
		stop, err := b.Watch(ctx, cfg)
		if err != nil {
			for _, s := range stops {
				s(ctx)
			}
			return nil, fmt.Errorf("failed to start watch %d: %w", i, err)
		}
		stops = append(stops, stop)
	}

	return func(stopCtx context.Context) error {
		var errs []error
		for _, s := range stops {
			if err := s(stopCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}, nil
}
