// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and VS Code settings migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gotws/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// DefaultProjectConfig is the file written by init and migrate.
const DefaultProjectConfig = ".gotws.yml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreEditorSettings skips VS Code settings detection and migration.
	IgnoreEditorSettings bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Prompt is where the migration prompt is written. Defaults to stdout.
	Prompt io.Writer

	// Input is where the migration answer is read. Defaults to stdin.
	Input io.Reader
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if VS Code settings were converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOTWS_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gotws.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gotws/config.yaml)
//  6. System config (/etc/gotws/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	if !opts.IgnoreEditorSettings && !opts.IgnoreProjectConfig {
		migrated, err := handleEditorMigration(paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths.Project, err = FindProjectConfig(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
		}
	}

	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		ignored bool
	}{
		{name: "system", path: paths.System, ignored: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, ignored: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, ignored: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.ignored || layer.path == "" {
			continue
		}

		layerCfg, err := LoadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// LoadConfigFile loads a configuration file, choosing the decoder from the
// file extension.
func LoadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Decode(ConfigFormat(path), content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// handleEditorMigration checks for VS Code settings and offers migration.
func handleEditorMigration(
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
	workDir string,
) (bool, error) {
	if paths.EditorSettings == "" || paths.Project != "" || paths.Explicit != "" {
		return false, nil
	}

	if !HasEditorSettings(paths.EditorSettings) {
		return false, nil
	}

	if opts.NonInteractive || !isInteractive(opts.Input) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found tws settings in %s but no %s; run 'gotws migrate' to convert",
				paths.EditorSettings, DefaultProjectConfig))
		return false, nil
	}

	shouldMigrate, err := promptMigration(opts, paths.EditorSettings)
	if err != nil {
		return false, err
	}
	if !shouldMigrate {
		return false, nil
	}

	migration, err := ConvertEditorSettings(paths.EditorSettings)
	if err != nil {
		return false, fmt.Errorf("convert editor settings: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, DefaultProjectConfig)
	if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(paths.EditorSettings)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s", paths.EditorSettings, outputPath))

	return true, nil
}

// promptMigration asks the user if they want to migrate.
func promptMigration(opts LoadOptions, settingsPath string) (bool, error) {
	out := opts.Prompt
	if out == nil {
		out = os.Stdout
	}
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}

	if _, err := fmt.Fprintf(out, "Found tws settings in %s but no %s\nConvert to gotws format? [Y/n] ",
		settingsPath, DefaultProjectConfig); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if input is a terminal. A reader supplied by
// the caller counts as interactive.
func isInteractive(input io.Reader) bool {
	if input != nil {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration to path, in YAML or TOML by extension.
func WriteConfig(cfg *config.Config, path, header string) error {
	var (
		content []byte
		err     error
	)

	if ConfigFormat(path) == "toml" {
		content, err = cfg.ToTOMLWithHeader(header)
	} else {
		content, err = cfg.ToYAMLWithHeader(header)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
