// Package json provides a JSON codec backed by encoding/json.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/yacchi/utsuwa/codec"
)

// New returns a JSON codec.
//
// Example:
//
//	b := bind.New(appConfig, file.New("config.json"), json.New())
func New() codec.Codec {
	return codec.New("json", decode)
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
