package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotws/internal/configloader"
	"github.com/yaklabco/gotws/internal/logging"
	"github.com/yaklabco/gotws/pkg/config"
)

const formatJSON = "json"

// optionInfo represents an option in JSON output.
type optionInfo struct {
	Key         string `json:"key"`
	EditorKey   string `json:"editorKey"`
	Env         string `json:"env"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
	Value       bool   `json:"value"`
}

func newOptionsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List trim and highlight options with their effective values",
		Long: `List every trim and highlight option with its default, the value that
applies in the current directory after configuration files and environment
variables are merged, the GOTWS_ environment variable that sets it, and the
matching VS Code setting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := workingDir(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, workDir, nil)
			if err != nil {
				return err
			}

			infos := describeOptions(cfg)

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding options: %w", err)
				}
				return nil
			}

			logger := logging.NewInteractive()
			for _, info := range infos {
				logger.Info(info.Key,
					logging.FieldValue, strconv.FormatBool(info.Value),
					logging.FieldDefault, strconv.FormatBool(info.Default),
					logging.FieldEnv, info.Env,
					logging.FieldEditorKey, "tws."+info.EditorKey,
					logging.FieldDescription, info.Description,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// describeOptions pairs the option documentation with the values in cfg.
func describeOptions(cfg *config.Config) []optionInfo {
	values := cfg.Options()

	infos := make([]optionInfo, 0, len(config.Describe()))
	for _, doc := range config.Describe() {
		infos = append(infos, optionInfo{
			Key:         doc.Key,
			EditorKey:   doc.EditorKey,
			Env:         configloader.GetEnvVarName(doc.Key),
			Description: doc.Description,
			Default:     doc.Default,
			Value:       optionValue(values, doc.Key),
		})
	}
	return infos
}

func optionValue(opts config.Options, key string) bool {
	switch key {
	case "trim_on_save":
		return opts.TrimOnSave
	case "highlight_trailing_whitespace":
		return opts.HighlightTrailingWhiteSpace
	case "highlight_only_changed_lines":
		return opts.HighlightOnlyChangedLines
	case "trim_lines_user_is_on":
		return opts.TrimLinesUserIsOn
	case "trim_only_changed_lines":
		return opts.TrimOnlyChangedLines
	case "preserve_markdown_hard_breaks":
		return opts.PreserveMarkdownHardBreaks
	case "debug_log":
		return opts.DebugLog
	default:
		return false
	}
}
