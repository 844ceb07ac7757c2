// Package text provides a codec for plain-text payloads: strings, byte
// slices, and types implementing encoding.TextUnmarshaler. The data is
// passed through verbatim, trailing newlines included.
package text

import (
	"encoding"
	"fmt"

	"github.com/yacchi/utsuwa/codec"
)

// New returns a plain-text codec.
//
// Example:
//
//	b := bind.New(apiToken, file.New("~/.config/app/token"), text.New())
func New() codec.Codec {
	return codec.New("text", decode)
}

func decode(data []byte, v any) error {
	switch dst := v.(type) {
	case *string:
		*dst = string(data)
		return nil
	case *[]byte:
		*dst = append((*dst)[:0], data...)
		return nil
	case encoding.TextUnmarshaler:
		if err := dst.UnmarshalText(data); err != nil {
			return fmt.Errorf("failed to parse text: %w", err)
		}
		return nil
	}
	return fmt.Errorf("text codec cannot decode into %T", v)
}
