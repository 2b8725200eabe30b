package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/jbsync.toml
var defaultConfig []byte

// DefaultConfigContent returns the built-in configuration file content,
// which genconfig writes out as a starting point.
func DefaultConfigContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf's provider interface for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
