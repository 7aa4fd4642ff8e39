// Package embedded provides the default configuration shipped with
// kittyfont, written to disk on first run.
package embedded

import (
	_ "embed"
)

//go:embed config/config.yaml
var defaultConfig []byte

// DefaultConfig returns the default config.yaml contents.
func DefaultConfig() []byte {
	return defaultConfig
}
