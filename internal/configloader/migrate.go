package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/yaklabco/gotws/pkg/config"
)

// MigrationResult contains the result of converting VS Code settings.
type MigrationResult struct {
	// Config is the converted gotws configuration.
	Config *config.Config

	// Applied lists the settings that were converted, in sorted order.
	Applied []string

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the settings file.
	SourcePath string
}

// ConvertEditorSettings converts the tws section of a VS Code settings file
// (JSON with comments) to gotws format. Settings outside the tws section are
// ignored unless they are known aliases.
func ConvertEditorSettings(path string) (*MigrationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	result, err := ConvertEditorSettingsBytes(content)
	if err != nil {
		return nil, err
	}
	result.SourcePath = path

	return result, nil
}

// ConvertEditorSettingsBytes is ConvertEditorSettings on in-memory content.
func ConvertEditorSettingsBytes(content []byte) (*MigrationResult, error) {
	var raw map[string]any
	if err := parseJSONC(content, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	settings := flattenSettings(raw)

	result := &MigrationResult{Config: &config.Config{}}
	explicit := make(map[string]bool)

	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	// tws settings first so they win over aliases.
	for _, name := range names {
		if !IsEditorSetting(name) {
			continue
		}

		key, _ := ResolveSetting(name)
		if key == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown setting %q; skipping", name))
			continue
		}

		if applySetting(result, key, name, settings[name]) {
			explicit[key] = true
		}
	}

	for _, name := range names {
		key, alias := ResolveSetting(name)
		if !alias {
			continue
		}
		if explicit[key] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%q is overridden by the tws setting for %s", name, key))
			continue
		}
		if applySetting(result, key, name, settings[name]) {
			explicit[key] = true
		}
	}

	return result, nil
}

// applySetting stores a boolean setting and reports whether it was applied.
func applySetting(result *MigrationResult, key, name string, value any) bool {
	b, ok := value.(bool)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("setting %q must be a boolean, got %v; skipping", name, value))
		return false
	}

	result.Config.SetOption(key, b)
	result.Applied = append(result.Applied, name)
	return true
}

// flattenSettings turns a nested {"tws": {"trimOnSave": true}} object into
// dotted names. Language overrides such as "[markdown]" are not flattened.
func flattenSettings(raw map[string]any) map[string]any {
	flat := make(map[string]any, len(raw))
	for name, value := range raw {
		nested, ok := value.(map[string]any)
		if !ok || strings.HasPrefix(name, "[") {
			flat[name] = value
			continue
		}
		for child, childValue := range flattenSettings(nested) {
			flat[name+"."+child] = childValue
		}
	}
	return flat
}

// HasEditorSettings reports whether a VS Code settings file contains any
// setting migrate would convert.
func HasEditorSettings(path string) bool {
	result, err := ConvertEditorSettings(path)
	if err != nil {
		return false
	}
	return len(result.Applied) > 0
}

// parseJSONC parses JSON with comments and trailing commas, the dialect
// VS Code accepts in settings files.
func parseJSONC(content []byte, target any) error {
	standard, err := hujson.Standardize(content)
	if err != nil {
		return fmt.Errorf("standardize JSONC: %w", err)
	}
	if err := json.Unmarshal(standard, target); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	return nil
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# gotws configuration
# Migrated from: %s
# See: https://github.com/yaklabco/gotws
`, filepath.ToSlash(sourcePath))
}
