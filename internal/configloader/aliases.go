package configloader

import (
	"sort"
	"strings"

	"github.com/yaklabco/gotws/pkg/config"
)

// editorSection is the VS Code settings section owned by the extension.
const editorSection = "tws"

// settingAliases maps settings of other whitespace extensions, and of VS
// Code itself, to gotws option keys. They are honored by migrate only when
// the tws section does not set the same option.
//
//nolint:gochecknoglobals // Read-only lookup table.
var settingAliases = map[string]string{
	"files.trimTrailingWhitespace":            "trim_on_save",
	"trailing-spaces.trimOnSave":              "trim_on_save",
	"trailing-spaces.deleteModifiedLinesOnly": "trim_only_changed_lines",
}

// editorKeys maps "tws.<editorKey>" settings to option keys. Built from
// config.Describe so every option is reachable.
//
//nolint:gochecknoglobals // Read-only lookup table.
var editorKeys = func() map[string]string {
	keys := make(map[string]string)
	for _, info := range config.Describe() {
		keys[editorSection+"."+info.EditorKey] = info.Key
	}
	return keys
}()

// ResolveSetting converts a VS Code setting name to a gotws option key.
// The second result reports whether the name is an alias rather than a
// tws setting. Returns "" for unrelated settings.
func ResolveSetting(name string) (string, bool) {
	if key, ok := editorKeys[name]; ok {
		return key, false
	}
	if key, ok := settingAliases[name]; ok {
		return key, true
	}
	return "", false
}

// IsEditorSetting reports whether name belongs to the tws section.
func IsEditorSetting(name string) bool {
	return strings.HasPrefix(name, editorSection+".")
}

// GetAliasesForOption returns all alias settings for an option key.
func GetAliasesForOption(key string) []string {
	var aliases []string
	for alias, target := range settingAliases {
		if target == key {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}
