// Package yaml provides a YAML codec backed by gopkg.in/yaml.v3.
package yaml

import (
	"fmt"

	"github.com/yacchi/utsuwa/codec"
	"gopkg.in/yaml.v3"
)

// New returns a YAML codec.
//
// Example:
//
//	b := bind.New(appConfig, file.New("~/.config/app.yaml"), yaml.New())
func New() codec.Codec {
	return codec.New("yaml", decode)
}

func decode(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
