package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gotws/internal/configloader"
	"github.com/yaklabco/gotws/internal/ui/pretty"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// Flag annotations read by the help formatter.
const (
	annotationGroup = "gotws_help_group"
	annotationEnv   = "gotws_env"
)

// Help sections for check and trim flags, in display order. Flags without a
// group are listed first under "Flags:".
const (
	groupBaseline  = "Baseline"
	groupSelection = "Selection"
	groupSaving    = "Saving"
	groupOutput    = "Output"
)

//nolint:gochecknoglobals // Read-only display order.
var flagGroupOrder = []string{"", groupBaseline, groupSelection, groupSaving, groupOutput}

// setFlagGroup lists the named flags under group in help output.
func setFlagGroup(flags *pflag.FlagSet, group string, names ...string) {
	for _, name := range names {
		_ = flags.SetAnnotation(name, annotationGroup, []string{group})
	}
}

// bindFlagEnv records the GOTWS_ variable that sets the same value as a
// flag, so help can show them side by side.
func bindFlagEnv(flags *pflag.FlagSet, name, envVar string) {
	_ = flags.SetAnnotation(name, annotationEnv, []string{envVar})
}

type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}

	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders help for gotws commands: check and trim flags are
// split into baseline, selection, saving and output sections, each flag
// followed by the environment variable that sets the same value.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}
{{- range .Commands}}{{if .IsAvailableCommand}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}
{{- end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ flagSections .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagTable .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ envVars }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{ if .Version }} {{ dim .Version }}{{ end }}

{{ with (or .Long .Short) }}{{ trimLines . }}

{{ end }}` + usageTemplate

// ApplyToCommand installs the help and usage renderers on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"command":      h.styles.command.Render,
		"heading":      h.styles.heading.Render,
		"name":         h.styles.name.Render,
		"dim":          h.styles.dim.Render,
		"rpad":         rpad,
		"trimLines":    trimLines,
		"flagSections": h.flagSections,
		"flagTable":    h.flagTable,
		"envVars":      h.envVars,
	}

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagSections renders flags as one section per help group.
func (h *HelpFormatter) flagSections(flags *pflag.FlagSet) string {
	grouped := make(map[string][]*pflag.Flag)
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		var group string
		if values := flag.Annotations[annotationGroup]; len(values) > 0 {
			group = values[0]
		}
		grouped[group] = append(grouped[group], flag)
	})

	sections := make([]string, 0, len(flagGroupOrder))
	for _, group := range flagGroupOrder {
		if len(grouped[group]) == 0 {
			continue
		}

		title := "Flags:"
		if group != "" {
			title = group + " Flags:"
		}
		sections = append(sections, h.styles.heading.Render(title)+"\n"+h.flagRows(grouped[group]))
	}

	return strings.Join(sections, "\n\n")
}

// flagTable renders every visible flag of flags without grouping.
func (h *HelpFormatter) flagTable(flags *pflag.FlagSet) string {
	var visible []*pflag.Flag
	flags.VisitAll(func(flag *pflag.Flag) {
		if !flag.Hidden {
			visible = append(visible, flag)
		}
	})

	return h.flagRows(visible)
}

func (h *HelpFormatter) flagRows(flags []*pflag.Flag) string {
	signatures := make([]string, len(flags))
	width := 0
	for idx, flag := range flags {
		signatures[idx] = flagSignature(flag)
		width = max(width, uniseg.StringWidth(signatures[idx]))
	}

	lines := make([]string, len(flags))
	for idx, flag := range flags {
		_, usage := pflag.UnquoteUsage(flag)
		if def := flagDefault(flag); def != "" {
			usage += " (default " + def + ")"
		}

		line := "  " + h.styles.flag.Render(rpad(signatures[idx], width)) + "   " + usage
		if envVar := flag.Annotations[annotationEnv]; len(envVar) > 0 {
			line += " " + h.styles.dim.Render("[$"+envVar[0]+"]")
		}
		lines[idx] = line
	}

	return strings.Join(lines, "\n")
}

// flagSignature returns "-C, --chdir string" or "    --all".
func flagSignature(flag *pflag.Flag) string {
	signature := "    --" + flag.Name
	if flag.Shorthand != "" {
		signature = "-" + flag.Shorthand + ", --" + flag.Name
	}

	if varName, _ := pflag.UnquoteUsage(flag); varName != "" {
		signature += " " + varName
	}

	return signature
}

// flagDefault returns the default worth showing, or "" for zero values.
func flagDefault(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return ""
	}

	if flag.Value.Type() == "string" {
		return strconv.Quote(flag.DefValue)
	}

	return flag.DefValue
}

// envVars lists the GOTWS_ environment variables, one per line.
func (h *HelpFormatter) envVars() string {
	vars := configloader.ListEnvVars()

	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, uniseg.StringWidth(name))
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+h.styles.flag.Render(rpad(name, width))+"   "+vars[name])
	}

	return strings.Join(lines, "\n")
}

// rpad pads str on the right to padding columns of display width.
func rpad(str string, padding int) string {
	width := uniseg.StringWidth(str)
	if width >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-width)
}

// trimLines removes trailing whitespace from every line of text.
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		if spans := whitespace.Scan(idx, line); len(spans) > 0 {
			lines[idx] = string([]rune(line)[:spans[0].StartColumn])
		}
	}
	return strings.Join(lines, "\n")
}
