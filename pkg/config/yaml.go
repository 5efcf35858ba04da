package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	return withHeader(header, yamlBytes), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.TrimOnSave = cloneBool(c.TrimOnSave)
	clone.HighlightTrailingWhiteSpace = cloneBool(c.HighlightTrailingWhiteSpace)
	clone.HighlightOnlyChangedLines = cloneBool(c.HighlightOnlyChangedLines)
	clone.TrimLinesUserIsOn = cloneBool(c.TrimLinesUserIsOn)
	clone.TrimOnlyChangedLines = cloneBool(c.TrimOnlyChangedLines)
	clone.PreserveMarkdownHardBreaks = cloneBool(c.PreserveMarkdownHardBreaks)
	clone.DebugLog = cloneBool(c.DebugLog)
	clone.Backups.Enabled = cloneBool(c.Backups.Enabled)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.CursorLines = slices.Clone(c.CursorLines)

	return &clone
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}

	v := *b

	return &v
}

func withHeader(header string, body []byte) []byte {
	if header == "" {
		return body
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes()
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
