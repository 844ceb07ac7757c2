// Package toml provides a TOML codec backed by github.com/pelletier/go-toml/v2.
package toml

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/yacchi/utsuwa/codec"
)

// New returns a TOML codec.
//
// Example:
//
//	b := bind.New(appConfig, file.New("config.toml"), toml.New())
func New() codec.Codec {
	return codec.New("toml", decode)
}

func decode(data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	return nil
}
