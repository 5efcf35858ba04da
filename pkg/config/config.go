// Package config defines core configuration types for gotws.
// These types are pure data structures; discovery and layering live in
// internal/configloader.
package config

// BaselineSource selects where the last-saved version of a document comes from.
type BaselineSource string

const (
	// BaselineGit reads the document from a git revision (default HEAD).
	BaselineGit BaselineSource = "git"

	// BaselineDisk treats the file on disk as the last-saved version, so a
	// document is only dirty when an in-memory edit exists.
	BaselineDisk BaselineSource = "disk"

	// BaselineFile reads the baseline from an explicit file.
	BaselineFile BaselineSource = "file"

	// BaselineNone means no baseline is ever available.
	BaselineNone BaselineSource = "none"
)

// IsValid returns true if the baseline source is known.
func (s BaselineSource) IsValid() bool {
	switch s {
	case BaselineGit, BaselineDisk, BaselineFile, BaselineNone:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatDiff:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when trimming files.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty" toml:"mode,omitempty"` // "sidecar" or "none"
}

// IsEnabled reports whether backups are on. Unset means on.
func (b BackupsConfig) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

// BaselineConfig selects the last-saved version documents are compared to.
type BaselineConfig struct {
	// Source is one of git, disk, file, none.
	Source BaselineSource `yaml:"source,omitempty" toml:"source,omitempty"`

	// Ref is the git revision used with the git source.
	Ref string `yaml:"ref,omitempty" toml:"ref,omitempty"`

	// File is the baseline path used with the file source.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// Config is the root configuration structure for gotws.
//
// Behavior switches are pointers so that a layer which does not mention an
// option leaves the value from a lower layer in place.
type Config struct {
	// TrimOnSave trims trailing whitespace before a document is saved.
	TrimOnSave *bool `yaml:"trim_on_save,omitempty" toml:"trim_on_save,omitempty"`

	// HighlightTrailingWhiteSpace reports trailing whitespace as decorations.
	HighlightTrailingWhiteSpace *bool `yaml:"highlight_trailing_whitespace,omitempty" toml:"highlight_trailing_whitespace,omitempty"`

	// HighlightOnlyChangedLines restricts highlighting to edited lines.
	HighlightOnlyChangedLines *bool `yaml:"highlight_only_changed_lines,omitempty" toml:"highlight_only_changed_lines,omitempty"`

	// TrimLinesUserIsOn allows trimming lines occupied by a cursor.
	TrimLinesUserIsOn *bool `yaml:"trim_lines_user_is_on,omitempty" toml:"trim_lines_user_is_on,omitempty"`

	// TrimOnlyChangedLines restricts trimming to edited lines.
	TrimOnlyChangedLines *bool `yaml:"trim_only_changed_lines,omitempty" toml:"trim_only_changed_lines,omitempty"`

	// PreserveMarkdownHardBreaks keeps two-space hard line breaks in Markdown.
	PreserveMarkdownHardBreaks *bool `yaml:"preserve_markdown_hard_breaks,omitempty" toml:"preserve_markdown_hard_breaks,omitempty"`

	// DebugLog enables debug logging of found whitespace and changed lines.
	DebugLog *bool `yaml:"debug_log,omitempty" toml:"debug_log,omitempty"`

	// Baseline selects the last-saved version source.
	Baseline BaselineConfig `yaml:"baseline,omitempty" toml:"baseline,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// IncludeVendored processes vendored and generated files too.
	IncludeVendored bool `yaml:"include_vendored,omitempty" toml:"include_vendored,omitempty"`

	// Backups configures backup behavior when trimming.
	Backups BackupsConfig `yaml:"backups,omitempty" toml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would be trimmed without writing.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when trimming.
	NoBackups bool `yaml:"-" toml:"-"`

	// CursorLines are 0-based lines treated as occupied by the user's cursor.
	CursorLines []int `yaml:"-" toml:"-"`
}

// Options is the resolved, read-only view of the behavior switches that the
// editor controller consumes.
type Options struct {
	TrimOnSave                  bool
	HighlightTrailingWhiteSpace bool
	HighlightOnlyChangedLines   bool
	TrimLinesUserIsOn           bool
	TrimOnlyChangedLines        bool
	PreserveMarkdownHardBreaks  bool
	DebugLog                    bool
}

// DefaultOptions returns the default behavior switches.
func DefaultOptions() Options {
	return Options{
		TrimOnSave:                  true,
		HighlightTrailingWhiteSpace: true,
		HighlightOnlyChangedLines:   true,
		TrimLinesUserIsOn:           false,
		TrimOnlyChangedLines:        true,
		PreserveMarkdownHardBreaks:  false,
		DebugLog:                    false,
	}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	defaults := DefaultOptions()

	return &Config{
		TrimOnSave:                  Bool(defaults.TrimOnSave),
		HighlightTrailingWhiteSpace: Bool(defaults.HighlightTrailingWhiteSpace),
		HighlightOnlyChangedLines:   Bool(defaults.HighlightOnlyChangedLines),
		TrimLinesUserIsOn:           Bool(defaults.TrimLinesUserIsOn),
		TrimOnlyChangedLines:        Bool(defaults.TrimOnlyChangedLines),
		PreserveMarkdownHardBreaks:  Bool(defaults.PreserveMarkdownHardBreaks),
		DebugLog:                    Bool(defaults.DebugLog),
		Baseline: BaselineConfig{
			Source: BaselineGit,
			Ref:    "HEAD",
		},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Options resolves the behavior switches, falling back to defaults for
// anything left unset.
func (c *Config) Options() Options {
	opts := DefaultOptions()
	if c == nil {
		return opts
	}

	resolve(&opts.TrimOnSave, c.TrimOnSave)
	resolve(&opts.HighlightTrailingWhiteSpace, c.HighlightTrailingWhiteSpace)
	resolve(&opts.HighlightOnlyChangedLines, c.HighlightOnlyChangedLines)
	resolve(&opts.TrimLinesUserIsOn, c.TrimLinesUserIsOn)
	resolve(&opts.TrimOnlyChangedLines, c.TrimOnlyChangedLines)
	resolve(&opts.PreserveMarkdownHardBreaks, c.PreserveMarkdownHardBreaks)
	resolve(&opts.DebugLog, c.DebugLog)

	return opts
}

func resolve(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// SetOption sets the behavior switch named by its configuration file key.
// It reports false for unknown keys.
func (c *Config) SetOption(key string, value bool) bool {
	field := c.optionField(key)
	if field == nil {
		return false
	}
	*field = Bool(value)
	return true
}

func (c *Config) optionField(key string) **bool {
	switch key {
	case "trim_on_save":
		return &c.TrimOnSave
	case "highlight_trailing_whitespace":
		return &c.HighlightTrailingWhiteSpace
	case "highlight_only_changed_lines":
		return &c.HighlightOnlyChangedLines
	case "trim_lines_user_is_on":
		return &c.TrimLinesUserIsOn
	case "trim_only_changed_lines":
		return &c.TrimOnlyChangedLines
	case "preserve_markdown_hard_breaks":
		return &c.PreserveMarkdownHardBreaks
	case "debug_log":
		return &c.DebugLog
	default:
		return nil
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
