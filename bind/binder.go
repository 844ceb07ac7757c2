package bind

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/yacchi/utsuwa"
	"github.com/yacchi/utsuwa/codec"
)

// Binder connects one cell to one source through one codec. Load fills
// the cell from the source; Watch keeps it filled as the source changes.
type Binder[T any] struct {
	cell     *utsuwa.Cell[T]
	source   Source
	codec    codec.Codec
	validate func(*T) error
	fallback *T

	// lastData is the raw payload behind the cell's current value. It is
	// the change-detection baseline for Watch and is only written by Load
	// and the watch loop, which never run concurrently in supported use.
	lastData []byte
}

// Option configures a Binder.
type Option[T any] func(*Binder[T])

// WithValidate sets a validation callback that runs on every decoded
// value before it reaches the cell. A non-nil error rejects the value;
// the cell keeps its previous contents.
//
// Example:
//
//	bind.WithValidate(func(cfg *Config) error {
//	    if cfg.Port == 0 {
//	        return errors.New("port is required")
//	    }
//	    return nil
//	})
func WithValidate[T any](fn func(*T) error) Option[T] {
	return func(b *Binder[T]) {
		b.validate = fn
	}
}

// WithDefault sets the value used when the source does not exist yet.
// When Load fails with fs.ErrNotExist and a default is set, the cell is
// initialized with the default instead of returning the error.
func WithDefault[T any](v T) Option[T] {
	return func(b *Binder[T]) {
		b.fallback = &v
	}
}

// New creates a Binder for the cell. The source produces raw bytes and
// the codec decodes them into the cell's payload type.
//
// Example:
//
//	var appConfig = utsuwa.New[Config]("app-config")
//
//	b := bind.New(appConfig, file.New("~/.config/app.yaml"), yaml.New())
//	if err := b.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
func New[T any](cell *utsuwa.Cell[T], src Source, c codec.Codec, opts ...Option[T]) *Binder[T] {
	b := &Binder[T]{
		cell:   cell,
		source: src,
		codec:  c,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Cell returns the cell this binder fills.
func (b *Binder[T]) Cell() *utsuwa.Cell[T] {
	return b.cell
}

// Load reads from the source, decodes a fresh value, validates it, and
// initializes the cell. The cell is left untouched when any step fails,
// so a failed reload never destroys a previously loaded value.
func (b *Binder[T]) Load(ctx context.Context) error {
	data, err := b.source.Load(ctx)
	if err != nil {
		if b.fallback != nil && errors.Is(err, fs.ErrNotExist) {
			b.cell.Init(*b.fallback)
			b.lastData = nil
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", b.source, err)
	}
	return b.apply(data)
}

// apply decodes, validates, and initializes the cell from raw payload
// bytes, updating the change-detection baseline on success.
func (b *Binder[T]) apply(data []byte) error {
	var v T
	if err := b.codec.Decode(data, &v); err != nil {
		return fmt.Errorf("failed to decode %s as %s: %w", b.source, b.codec.Name(), err)
	}
	if b.validate != nil {
		if err := b.validate(&v); err != nil {
			return fmt.Errorf("%w for %s: %w", ErrValidation, b.source, err)
		}
	}
	b.cell.Init(v)
	b.lastData = data
	return nil
}
