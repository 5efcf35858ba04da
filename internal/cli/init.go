package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotws/internal/configloader"
	"github.com/yaklabco/gotws/internal/logging"
	"github.com/yaklabco/gotws/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	commented bool
	format    string
	output    string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gotws configuration file",
		Long: `Create a new .gotws.yml configuration file in the current directory.
Every option is listed with its description and default value.

Examples:
  gotws init                      Create .gotws.yml
  gotws init --commented          Keep every option commented out
  gotws init --format toml        Create .gotws.toml instead
  gotws init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := workingDir(cmd)
			if err != nil {
				return err
			}
			return runInit(workDir, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.commented, "commented", false, "Comment out every option so defaults apply")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gotws.yml or .gotws.toml)")

	return cmd
}

func runInit(workDir string, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "toml" {
			outputPath = ".gotws.toml"
		} else {
			outputPath = configloader.DefaultProjectConfig
		}
	}

	absPath := outputPath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workDir, outputPath)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format:    flags.format,
		Commented: flags.commented,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gotws options' to see the values that apply")

	return nil
}
