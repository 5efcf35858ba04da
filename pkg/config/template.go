package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// OptionInfo documents one behavior switch.
type OptionInfo struct {
	// Key is the configuration file key.
	Key string

	// EditorKey is the equivalent VS Code setting under the "tws" section.
	EditorKey string

	// Description is a one-sentence explanation.
	Description string

	// Default is the value used when no layer sets the option.
	Default bool
}

// Describe returns documentation for every behavior switch, in file order.
func Describe() []OptionInfo {
	defaults := DefaultOptions()

	return []OptionInfo{
		{
			Key:         "trim_on_save",
			EditorKey:   "trimOnSave",
			Description: "Remove trailing whitespace from edited lines when a document is saved.",
			Default:     defaults.TrimOnSave,
		},
		{
			Key:         "highlight_trailing_whitespace",
			EditorKey:   "highlightTrailingWhiteSpace",
			Description: "Report trailing whitespace.",
			Default:     defaults.HighlightTrailingWhiteSpace,
		},
		{
			Key:         "highlight_only_changed_lines",
			EditorKey:   "highlightOnlyChangedLines",
			Description: "Only report trailing whitespace on lines changed since the last save.",
			Default:     defaults.HighlightOnlyChangedLines,
		},
		{
			Key:         "trim_lines_user_is_on",
			EditorKey:   "trimLinesUserIsOn",
			Description: "Also trim the lines the cursor is on.",
			Default:     defaults.TrimLinesUserIsOn,
		},
		{
			Key:         "trim_only_changed_lines",
			EditorKey:   "trimOnlyChangedLines",
			Description: "Only trim lines changed since the last save; when false the whole document is trimmed.",
			Default:     defaults.TrimOnlyChangedLines,
		},
		{
			Key:         "preserve_markdown_hard_breaks",
			EditorKey:   "preserveMarkdownHardBreaks",
			Description: "Keep trailing double spaces that form Markdown hard line breaks.",
			Default:     defaults.PreserveMarkdownHardBreaks,
		},
		{
			Key:         "debug_log",
			EditorKey:   "debugLog",
			Description: "Log every changed line and whitespace span found.",
			Default:     defaults.DebugLog,
		},
	}
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "toml".
	Format string

	// Commented leaves every option commented out so defaults apply.
	Commented bool
}

// GenerateTemplate creates a documented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	switch opts.Format {
	case "yaml", "yml", "":
		writeYAMLTemplate(&buf, opts)
	case "toml":
		writeTOMLTemplate(&buf, opts)
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}

	return buf.Bytes(), nil
}

func writeYAMLTemplate(buf *bytes.Buffer, opts TemplateOptions) {
	buf.WriteString("# gotws configuration\n# See: https://github.com/yaklabco/gotws\n\n")

	for _, info := range Describe() {
		writeComment(buf, info.Description)
		writeSetting(buf, opts.Commented, info.Key+": "+strconv.FormatBool(info.Default))
		buf.WriteByte('\n')
	}

	buf.WriteString(`# Where the last-saved version of each file comes from: git, disk, file, none
baseline:
  source: git
  ref: HEAD
  # file: path/to/baseline

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Backup configuration for trim
backups:
  enabled: true
  mode: sidecar
`)
}

func writeTOMLTemplate(buf *bytes.Buffer, opts TemplateOptions) {
	buf.WriteString("# gotws configuration\n# See: https://github.com/yaklabco/gotws\n\n")

	for _, info := range Describe() {
		writeComment(buf, info.Description)
		writeSetting(buf, opts.Commented, info.Key+" = "+strconv.FormatBool(info.Default))
		buf.WriteByte('\n')
	}

	buf.WriteString(`# File patterns to ignore (glob patterns)
# ignore = ["vendor/**", "node_modules/**"]

# Where the last-saved version of each file comes from: git, disk, file, none
[baseline]
source = "git"
ref = "HEAD"
# file = "path/to/baseline"

# Backup configuration for trim
[backups]
enabled = true
mode = "sidecar"
`)
}

func writeSetting(buf *bytes.Buffer, commented bool, line string) {
	if commented {
		buf.WriteString("# ")
	}
	buf.WriteString(line)
	buf.WriteByte('\n')
}

// writeComment writes text as "# " comment lines wrapped at commentWrapWidth.
func writeComment(buf *bytes.Buffer, text string) {
	for _, line := range wrapText(text, commentWrapWidth) {
		buf.WriteString("# ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}

	return append(lines, current)
}
