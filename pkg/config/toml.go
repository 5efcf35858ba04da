package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToTOMLWithHeader(header string) ([]byte, error) {
	tomlBytes, err := c.ToTOML()
	if err != nil {
		return nil, err
	}

	return withHeader(header, tomlBytes), nil
}

// FromTOML parses a configuration from TOML bytes. Unknown keys are
// rejected so typos surface instead of being silently ignored.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}

	return cfg, nil
}

// Decode parses configuration bytes in the named format ("yaml" or "toml").
func Decode(format string, data []byte) (*Config, error) {
	switch format {
	case "toml":
		return FromTOML(data)
	case "yaml", "yml", "":
		return FromYAML(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
