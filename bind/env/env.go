// Package env provides an environment variable based source for binders.
// Variables carrying a prefix are rendered into a JSON object, so any
// JSON-compatible codec can decode them into the cell's payload type.
package env

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yacchi/utsuwa/bind"
)

// Source renders environment variables with a prefix into a JSON object.
// Variable names are converted to keys by removing the prefix, lowering
// the case, and splitting nested keys on the separator.
//
// Example: with prefix "APP_", variables APP_LISTEN=:8080 and
// APP_DB_HOST=localhost render {"listen": ":8080", "db": {"host":
// "localhost"}}.
//
// Values that parse as JSON numbers, booleans, or null are rendered
// bare, so numeric and boolean fields decode directly; everything else
// is rendered as a JSON string.
type Source struct {
	prefix    string
	separator string
	environ   func() []string
}

// Ensure Source implements the bind.Source interface.
var _ bind.Source = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithSeparator sets the string that splits nested keys. Default is "_".
// Use a multi-character separator such as "__" when key names themselves
// contain underscores.
func WithSeparator(sep string) Option {
	return func(s *Source) {
		s.separator = sep
	}
}

// WithEnviron overrides the function used to snapshot the environment.
// Intended for tests.
func WithEnviron(fn func() []string) Option {
	return func(s *Source) {
		s.environ = fn
	}
}

// New creates a source that snapshots environment variables starting
// with the prefix. The prefix is stripped from variable names when
// building keys.
//
// Example:
//
//	// APP_LISTEN=:8080 APP_DB_HOST=localhost
//	src := env.New("APP_")
//	b := bind.New(appConfig, src, json.New())
func New(prefix string, opts ...Option) *Source {
	s := &Source{
		prefix:    prefix,
		separator: "_",
		environ:   os.Environ,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prefix returns the environment variable prefix.
func (s *Source) Prefix() string {
	return s.prefix
}

// Load implements the bind.Source interface.
// It snapshots the environment at call time; watching an env source
// polls the same snapshot, so changes made with os.Setenv are picked up
// on the next poll.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	// Check for cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := make(map[string]any)

	for _, kv := range s.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if !strings.HasPrefix(key, s.prefix) {
			continue
		}

		key = strings.TrimPrefix(key, s.prefix)
		setNested(data, s.keyToPath(key), scalarValue(value))
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render environment: %w", err)
	}
	return out, nil
}

// String implements the bind.Source interface.
func (s *Source) String() string {
	return "env:" + s.prefix + "*"
}

// keyToPath converts a variable name to a nested key path.
// Example: "SERVER_PORT" -> ["server", "port"]
func (s *Source) keyToPath(key string) []string {
	return strings.Split(strings.ToLower(key), s.separator)
}

// scalarValue parses a raw variable value. JSON numbers, booleans, and
// null pass through typed; everything else stays a string.
func scalarValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case float64, bool, nil:
		return v
	default:
		return raw
	}
}

// setNested sets value at the nested key path, creating intermediate
// maps as needed. A non-map value already on the path is replaced.
func setNested(m map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
