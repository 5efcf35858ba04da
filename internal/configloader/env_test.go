package configloader

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/yaklabco/gotws/pkg/config"
)

// Tests in this file use t.Setenv and therefore cannot run in parallel.

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOTWS_TRIM_ON_SAVE", "false")
	t.Setenv("GOTWS_DEBUG_LOG", "1")
	t.Setenv("GOTWS_BASELINE", "file")
	t.Setenv("GOTWS_BASELINE_FILE", "saved.txt")
	t.Setenv("GOTWS_JOBS", " 4 ")
	t.Setenv("GOTWS_FORMAT", "json")
	t.Setenv("GOTWS_BACKUPS_ENABLED", "false")
	t.Setenv("GOTWS_IGNORE", "vendor/**, *.gen.go ,")
	t.Setenv("GOTWS_INCLUDE_VENDORED", "true")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	opts := cfg.Options()
	if opts.TrimOnSave {
		t.Error("expected trim_on_save=false")
	}
	if !opts.DebugLog {
		t.Error("expected debug_log=true")
	}
	if cfg.Baseline.Source != config.BaselineFile || cfg.Baseline.File != "saved.txt" {
		t.Errorf("unexpected baseline %+v", cfg.Baseline)
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Backups.IsEnabled() {
		t.Error("expected backups to be disabled")
	}
	if want := []string{"vendor/**", "*.gen.go"}; !reflect.DeepEqual(cfg.Ignore, want) {
		t.Errorf("Ignore = %v, want %v", cfg.Ignore, want)
	}
	if !cfg.IncludeVendored {
		t.Error("expected include_vendored=true")
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "bool switch", key: "GOTWS_TRIM_ON_SAVE", value: "maybe", want: "invalid boolean for GOTWS_TRIM_ON_SAVE"},
		{name: "plain bool", key: "GOTWS_DRY_RUN", value: "sometimes", want: "invalid boolean for GOTWS_DRY_RUN"},
		{name: "int", key: "GOTWS_JOBS", value: "many", want: "invalid integer for GOTWS_JOBS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			err := LoadFromEnv(config.NewConfig())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	t.Setenv("GOTWS_DRY_RUN", "true")

	if err := LoadFromEnv(nil); err != nil {
		t.Errorf("LoadFromEnv(nil) error = %v", err)
	}
}

func TestLoad_EnvBetweenFilesAndCLI(t *testing.T) {
	dir := newProject(t)
	writeFile(t, dir+"/.gotws.yml", "trim_on_save: true\nhighlight_only_changed_lines: true\n")

	t.Setenv("GOTWS_TRIM_ON_SAVE", "false")
	t.Setenv("GOTWS_HIGHLIGHT_ONLY_CHANGED_LINES", "false")

	opts := LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		NonInteractive:     true,
		CLIConfig:          &config.Config{HighlightOnlyChangedLines: config.Bool(true)},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := result.Config.Options()
	if got.TrimOnSave {
		t.Error("environment should override the project file")
	}
	if !got.HighlightOnlyChangedLines {
		t.Error("CLI should override the environment")
	}
}

func TestLoad_UserConfigFromXDG(t *testing.T) {
	xdg := t.TempDir()
	writeFile(t, xdg+"/gotws/config.toml", "preserve_markdown_hard_breaks = true\n")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	opts := LoadOptions{
		WorkingDir:         newProject(t),
		IgnoreSystemConfig: true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.Options().PreserveMarkdownHardBreaks {
		t.Error("expected user config to be applied")
	}
	if result.Paths.User != xdg+"/gotws/config.toml" {
		t.Errorf("Paths.User = %q", result.Paths.User)
	}
}

func TestListEnvVars(t *testing.T) {
	vars := ListEnvVars()

	for _, info := range config.Describe() {
		name := "GOTWS_" + strings.ToUpper(info.Key)
		if vars[name] != info.Description {
			t.Errorf("%s missing or undocumented", name)
		}
	}

	if vars["GOTWS_BASELINE"] == "" {
		t.Error("GOTWS_BASELINE missing")
	}
	if got := GetEnvVarName("backups.mode"); got != "GOTWS_BACKUPS_MODE" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(unknown) = %q", got)
	}
}
