// Package codec defines how raw bytes from a source decode into a cell's
// payload value. Implementations live in subpackages: json and text are
// dependency-free, while yaml, toml, and jsonc carry the corresponding
// parser dependencies.
package codec

// Codec decodes raw bytes into a value.
type Codec interface {
	// Decode unmarshals data into v. v is always a non-nil pointer to
	// the target value.
	Decode(data []byte, v any) error

	// Name returns the codec name for diagnostics (e.g. "json", "yaml").
	Name() string
}

// DecodeFunc is a function that unmarshals bytes into a value.
type DecodeFunc func(data []byte, v any) error

// New creates a Codec from a name and a decode function. Implementations
// that wrap an existing unmarshal function only need this.
//
// Example:
//
//	c := codec.New("json", json.Unmarshal)
func New(name string, decode DecodeFunc) Codec {
	return &codec{name: name, decode: decode}
}

// codec implements Codec using the provided configuration.
type codec struct {
	name   string
	decode DecodeFunc
}

var _ Codec = (*codec)(nil)

// Decode implements the Codec interface.
func (c *codec) Decode(data []byte, v any) error {
	return c.decode(data, v)
}

// Name implements the Codec interface.
func (c *codec) Name() string {
	return c.name
}
