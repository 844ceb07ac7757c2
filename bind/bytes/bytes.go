// Package bytes provides a byte slice based source for binders.
// The data never changes, so the source is never watched.
package bytes

import (
	"context"

	"github.com/yacchi/utsuwa/bind"
)

// Source loads raw data from a fixed byte slice.
type Source struct {
	data []byte
}

// Ensure Source implements the bind.Source interface.
var _ bind.Source = (*Source)(nil)

// New creates a source from raw bytes.
//
// Example:
//
//	data := []byte("server:\n  port: 8080")
//	src := bytes.New(data)
func New(data []byte) *Source {
	return &Source{
		data: data,
	}
}

// FromString creates a source from a string.
//
// Example:
//
//	src := bytes.FromString("server:\n  port: 8080")
func FromString(data string) *Source {
	return New([]byte(data))
}

// Load implements the bind.Source interface.
// Returns a copy of the data to prevent callers from modifying the source.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	// Check for cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]byte, len(s.data))
	copy(result, s.data)
	return result, nil
}

// String implements the bind.Source interface.
func (s *Source) String() string {
	return "bytes"
}
