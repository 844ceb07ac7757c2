// Package jsonc provides a JSONC (JSON with comments) codec backed by
// github.com/tailscale/hujson. Input is standardized to plain JSON before
// decoding, so comments and trailing commas are accepted.
package jsonc

import (
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/yacchi/utsuwa/codec"
)

// New returns a JSONC codec.
//
// Example:
//
//	b := bind.New(appConfig, file.New("~/.config/app.jsonc"), jsonc.New())
func New() codec.Codec {
	return codec.New("jsonc", decode)
}

func decode(data []byte, v any) error {
	val, err := hujson.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse JSONC: %w", err)
	}
	val.Standardize()
	if err := json.Unmarshal(val.Pack(), v); err != nil {
		return fmt.Errorf("failed to decode JSONC: %w", err)
	}
	return nil
}
