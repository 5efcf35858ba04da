package configloader

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/yaklabco/gotws/pkg/config"
)

func TestConvertEditorSettings_Flat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	writeFile(t, path, `{
  "editor.fontSize": 14,
  "tws.trimOnSave": false,
  "tws.highlightOnlyChangedLines": false,
  "tws.preserveMarkdownHardBreaks": true
}`)

	result, err := ConvertEditorSettings(path)
	if err != nil {
		t.Fatalf("ConvertEditorSettings() error = %v", err)
	}

	if result.SourcePath != path {
		t.Errorf("SourcePath = %q", result.SourcePath)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}

	want := []string{"tws.highlightOnlyChangedLines", "tws.preserveMarkdownHardBreaks", "tws.trimOnSave"}
	if !reflect.DeepEqual(result.Applied, want) {
		t.Errorf("Applied = %v, want %v", result.Applied, want)
	}

	cfg := result.Config
	if cfg.TrimOnSave == nil || *cfg.TrimOnSave {
		t.Error("expected trim_on_save=false")
	}
	if cfg.PreserveMarkdownHardBreaks == nil || !*cfg.PreserveMarkdownHardBreaks {
		t.Error("expected preserve_markdown_hard_breaks=true")
	}
	if cfg.DebugLog != nil {
		t.Error("settings that were not present must stay unset")
	}
}

func TestConvertEditorSettings_Nested(t *testing.T) {
	t.Parallel()

	result, err := ConvertEditorSettingsBytes([]byte(`{
  "tws": {
    "debugLog": true,
    "trimLinesUserIsOn": true
  }
}`))
	if err != nil {
		t.Fatalf("ConvertEditorSettingsBytes() error = %v", err)
	}

	opts := result.Config.Options()
	if !opts.DebugLog || !opts.TrimLinesUserIsOn {
		t.Errorf("nested settings not applied: %+v", opts)
	}
}

func TestConvertEditorSettings_Comments(t *testing.T) {
	t.Parallel()

	result, err := ConvertEditorSettingsBytes([]byte(`{
  // line comment with "quotes"
  "tws.trimOnlyChangedLines": false, /* block
  comment */
  "files.exclude": {"**/.git": true,},
  "url": "http://example.com/path",
}`))
	if err != nil {
		t.Fatalf("ConvertEditorSettingsBytes() error = %v", err)
	}

	if result.Config.Options().TrimOnlyChangedLines {
		t.Error("expected trim_only_changed_lines=false")
	}
}

func TestConvertEditorSettings_Warnings(t *testing.T) {
	t.Parallel()

	result, err := ConvertEditorSettingsBytes([]byte(`{
  "tws.trimOnSave": "yes",
  "tws.unknownOption": true
}`))
	if err != nil {
		t.Fatalf("ConvertEditorSettingsBytes() error = %v", err)
	}

	if len(result.Applied) != 0 {
		t.Errorf("expected nothing applied, got %v", result.Applied)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "must be a boolean") {
		t.Errorf("unexpected warning %q", result.Warnings[0])
	}
	if !strings.Contains(result.Warnings[1], "unknown setting") {
		t.Errorf("unexpected warning %q", result.Warnings[1])
	}
}

func TestConvertEditorSettings_Aliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings string
		want     config.Options
		warnings int
	}{
		{
			name:     "vscode trim setting",
			settings: `{"files.trimTrailingWhitespace": false}`,
			want: func() config.Options {
				o := config.DefaultOptions()
				o.TrimOnSave = false
				return o
			}(),
		},
		{
			name:     "trailing-spaces modified lines only",
			settings: `{"trailing-spaces.deleteModifiedLinesOnly": false}`,
			want: func() config.Options {
				o := config.DefaultOptions()
				o.TrimOnlyChangedLines = false
				return o
			}(),
		},
		{
			name:     "tws setting wins over alias",
			settings: `{"files.trimTrailingWhitespace": false, "tws.trimOnSave": true}`,
			want:     config.DefaultOptions(),
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ConvertEditorSettingsBytes([]byte(tt.settings))
			if err != nil {
				t.Fatalf("ConvertEditorSettingsBytes() error = %v", err)
			}
			if got := result.Config.Options(); got != tt.want {
				t.Errorf("Options() = %+v, want %+v", got, tt.want)
			}
			if len(result.Warnings) != tt.warnings {
				t.Errorf("warnings = %v, want %d", result.Warnings, tt.warnings)
			}
		})
	}
}

func TestConvertEditorSettings_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ConvertEditorSettings(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ConvertEditorSettingsBytes([]byte(`{"tws.trimOnSave": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestHasEditorSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	with := filepath.Join(dir, "with.json")
	writeFile(t, with, `{"tws.debugLog": true}`)
	without := filepath.Join(dir, "without.json")
	writeFile(t, without, `{"editor.tabSize": 2}`)
	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, `{`)

	if !HasEditorSettings(with) {
		t.Error("expected tws settings to be detected")
	}
	if HasEditorSettings(without) {
		t.Error("unrelated settings must not count")
	}
	if HasEditorSettings(broken) {
		t.Error("unparsable settings must not count")
	}
}

func TestParseJSONC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    map[string]any
		wantErr bool
	}{
		{name: "line comment", input: "{\"a\": 1} // x\n", want: map[string]any{"a": float64(1)}},
		{name: "block comment", input: "{/* x */\"a\": 1}", want: map[string]any{"a": float64(1)}},
		{
			name:  "comment markers in strings",
			input: `{"a":"http://x/*y*/\"//", /* b */ "arr":[1,2,],}`,
			want:  map[string]any{"a": `http://x/*y*/"//`, "arr": []any{float64(1), float64(2)}},
		},
		{name: "trailing comma in string", input: `{"b": ",}",}`, want: map[string]any{"b": ",}"}},
		{name: "unterminated comment", input: `{"a": 1 /* x`, wantErr: true},
		{name: "not an object", input: `{"a": }`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got map[string]any
			err := parseJSONC([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseJSONC() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseJSONC() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseJSONC() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolveSetting(t *testing.T) {
	t.Parallel()

	for _, info := range config.Describe() {
		key, alias := ResolveSetting("tws." + info.EditorKey)
		if key != info.Key || alias {
			t.Errorf("tws.%s resolved to (%q, %v)", info.EditorKey, key, alias)
		}
	}

	if key, alias := ResolveSetting("trailing-spaces.trimOnSave"); key != "trim_on_save" || !alias {
		t.Errorf("alias resolved to (%q, %v)", key, alias)
	}
	if key, _ := ResolveSetting("editor.tabSize"); key != "" {
		t.Errorf("unrelated setting resolved to %q", key)
	}

	want := []string{"files.trimTrailingWhitespace", "trailing-spaces.trimOnSave"}
	if got := GetAliasesForOption("trim_on_save"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetAliasesForOption() = %v, want %v", got, want)
	}
}

func TestGenerateMigrationHeader(t *testing.T) {
	t.Parallel()

	header := GenerateMigrationHeader(".vscode/settings.json")
	if !strings.Contains(header, "# Migrated from: .vscode/settings.json") {
		t.Errorf("unexpected header %q", header)
	}

	cfg, err := config.FromYAML([]byte(header + "trim_on_save: false\n"))
	if err != nil {
		t.Fatalf("header must be valid YAML comments: %v", err)
	}
	if cfg.TrimOnSave == nil || *cfg.TrimOnSave {
		t.Error("expected trim_on_save=false")
	}
}
