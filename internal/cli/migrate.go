package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotws/internal/configloader"
	"github.com/yaklabco/gotws/internal/logging"
)

// defaultSettingsPath is where VS Code keeps workspace settings.
const defaultSettingsPath = ".vscode/settings.json"

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [settings.json]",
		Short: "Convert VS Code tws settings to gotws format",
		Long: `Convert the "tws.*" settings of a VS Code settings file to a gotws
configuration file (.gotws.yml).

If no input file is specified, .vscode/settings.json in the current directory
is used. Comments and trailing commas are accepted. The built-in
files.trimTrailingWhitespace setting and the trailing-spaces extension settings
are converted too when no tws setting covers the same option.

Examples:
  gotws migrate                          Convert .vscode/settings.json
  gotws migrate ~/.config/Code/User/settings.json
  gotws migrate --output gotws.toml      Write TOML instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			workDir, err := workingDir(cmd)
			if err != nil {
				return err
			}
			return runMigrate(workDir, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultProjectConfig, "Output file path")

	return cmd
}

func runMigrate(workDir string, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		inputPath = filepath.Join(workDir, defaultSettingsPath)
		if _, err := os.Stat(inputPath); err != nil {
			return errors.New("no .vscode/settings.json found in current directory")
		}
		logger.Info("found VS Code settings", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	output := flags.output
	if !filepath.IsAbs(output) {
		output = filepath.Join(workDir, output)
	}

	if _, err := os.Stat(output); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertEditorSettings(inputPath)
	if err != nil {
		return fmt.Errorf("convert settings: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if len(result.Applied) == 0 {
		return fmt.Errorf("no tws settings found in %s", inputPath)
	}

	header := configloader.GenerateMigrationHeader(inputPath)
	if err := configloader.WriteConfig(result.Config, output, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete",
		logging.FieldInput, inputPath,
		logging.FieldOutput, flags.output,
		logging.FieldSettings, len(result.Applied),
	)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
