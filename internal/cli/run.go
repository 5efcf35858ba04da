package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotws/internal/configloader"
	"github.com/yaklabco/gotws/internal/logging"
	"github.com/yaklabco/gotws/pkg/baseline"
	"github.com/yaklabco/gotws/pkg/config"
	"github.com/yaklabco/gotws/pkg/fsutil"
	"github.com/yaklabco/gotws/pkg/reporter"
	"github.com/yaklabco/gotws/pkg/runner"
)

// runFlags are the flags shared by check and trim. Values only reach the
// configuration when the flag was given, so files and environment are not
// overridden by flag defaults.
type runFlags struct {
	baseline           string
	ref                string
	baselineFile       string
	all                bool
	cursor             []int
	format             string
	jobs               int
	ignore             []string
	includeVendored    bool
	followSymlinks     bool
	preserveHardBreaks bool
	noContext          bool
	compact            bool

	// trim only
	dryRun    bool
	noBackups bool
	cursorOK  bool
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report trailing whitespace",
		Long: `Report trailing whitespace without modifying any file.

By default only lines changed since the saved version are reported. The saved
version is read from git HEAD; use --baseline to pick another source and --all
to report every line.

Exits with status 1 when trailing whitespace is found.

Examples:
  gotws check                        # Check changed lines under the current directory
  gotws check --all docs/            # Check every line of every file under docs/
  gotws check --ref main             # Compare against the main branch
  gotws check --format json          # Output as JSON for CI
  gotws check --format sarif         # Output SARIF for code scanning`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, runner.ModeCheck, flags, info)
		},
	}

	addRunFlags(cmd, flags)

	return cmd
}

func newTrimCommand(info BuildInfo) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "trim [paths...]",
		Short: "Trim trailing whitespace",
		Long: `Trim trailing whitespace the way an editor does on save.

Each file is saved through the same pipeline an editor uses: the trim edits
are computed on will-save, the file is written atomically (after a backup and
a check that it did not change underneath), and did-save refreshes the saved
version. Lines given with --cursor are kept unless trim_lines_user_is_on is
set.

Examples:
  gotws trim                         # Trim changed lines under the current directory
  gotws trim --dry-run --format diff # Show what would change
  gotws trim --all --no-backups .    # Trim every line, without backups
  gotws trim --cursor 12 main.go     # Leave line 12 alone`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, runner.ModeTrim, flags, info)
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would be trimmed without writing")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().BoolVar(&flags.cursorOK, "trim-cursor-lines", false, "also trim the lines given with --cursor")

	setFlagGroup(cmd.Flags(), groupSelection, "trim-cursor-lines")
	setFlagGroup(cmd.Flags(), groupSaving, "dry-run", "no-backups")
	bindFlagEnv(cmd.Flags(), "trim-cursor-lines", "GOTWS_TRIM_LINES_USER_IS_ON")
	bindFlagEnv(cmd.Flags(), "dry-run", "GOTWS_DRY_RUN")
	bindFlagEnv(cmd.Flags(), "no-backups", "GOTWS_NO_BACKUPS")

	return cmd
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.baseline, "baseline", "git", "saved version source: git, disk, file, none")
	cmd.Flags().StringVar(&flags.ref, "ref", "HEAD", "git revision used as the saved version")
	cmd.Flags().StringVar(&flags.baselineFile, "baseline-file", "", "file used as the saved version (implies --baseline file)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "process every line, not only changed lines")
	cmd.Flags().IntSliceVar(&flags.cursor, "cursor", nil, "1-based line the cursor is on (repeatable)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also process vendored and generated files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().BoolVar(&flags.preserveHardBreaks, "preserve-hard-breaks", false,
		"keep two-space Markdown hard line breaks")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	setFlagGroup(cmd.Flags(), groupBaseline, "baseline", "ref", "baseline-file")
	setFlagGroup(cmd.Flags(), groupSelection,
		"all", "cursor", "ignore", "include-vendored", "follow-symlinks", "preserve-hard-breaks")
	setFlagGroup(cmd.Flags(), groupOutput, "format", "no-context", "compact")

	for name, envVar := range map[string]string{
		"baseline":             "GOTWS_BASELINE",
		"ref":                  "GOTWS_BASELINE_REF",
		"baseline-file":        "GOTWS_BASELINE_FILE",
		"format":               "GOTWS_FORMAT",
		"jobs":                 "GOTWS_JOBS",
		"ignore":               "GOTWS_IGNORE",
		"include-vendored":     "GOTWS_INCLUDE_VENDORED",
		"preserve-hard-breaks": "GOTWS_PRESERVE_MARKDOWN_HARD_BREAKS",
	} {
		bindFlagEnv(cmd.Flags(), name, envVar)
	}
}

// cliConfig maps the flags that were set onto a configuration layer.
func (f *runFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("baseline") {
		cfg.Baseline.Source = config.BaselineSource(f.baseline)
	}
	if changed("ref") {
		cfg.Baseline.Ref = f.ref
	}
	if changed("baseline-file") {
		cfg.Baseline.File = f.baselineFile
		if !changed("baseline") {
			cfg.Baseline.Source = config.BaselineFile
		}
	}
	if f.all {
		cfg.HighlightOnlyChangedLines = config.Bool(false)
		cfg.TrimOnlyChangedLines = config.Bool(false)
	}
	if changed("cursor") {
		for _, line := range f.cursor {
			if line < 1 {
				return nil, fmt.Errorf("%w: --cursor lines start at 1, got %d", ErrInvalidUsage, line)
			}
		}
		cfg.CursorLines = lo.Map(f.cursor, func(line, _ int) int { return line - 1 })
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("preserve-hard-breaks") {
		cfg.PreserveMarkdownHardBreaks = config.Bool(f.preserveHardBreaks)
	}
	if changed("trim-cursor-lines") {
		cfg.TrimLinesUserIsOn = config.Bool(f.cursorOK)
	}
	cfg.IncludeVendored = f.includeVendored
	cfg.DryRun = f.dryRun
	cfg.NoBackups = f.noBackups

	return cfg, nil
}

// loadConfig resolves the configuration for a command run from workDir.
func loadConfig(cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(cmdContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
		Prompt:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runFiles(cmd *cobra.Command, args []string, mode runner.Mode, flags *runFlags, info BuildInfo) error {
	ctx := logging.WithFields(cmdContext(cmd), logging.FieldMode, mode.String())
	logger := logging.FromContext(ctx)

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if format == reporter.FormatDiff && (mode != runner.ModeTrim || !cfg.DryRun) {
		return fmt.Errorf("%w: --format diff requires trim --dry-run", ErrInvalidUsage)
	}

	loader, err := baseline.New(cfg.Baseline)
	if err != nil {
		return errors.Join(ErrConfigLoad, err)
	}

	editorOpts := cfg.Options()
	if mode == runner.ModeTrim && !editorOpts.TrimOnSave {
		logger.Warn("trim_on_save is disabled; nothing will be trimmed")
	}
	if mode == runner.ModeCheck && !editorOpts.HighlightTrailingWhiteSpace {
		logger.Warn("highlight_trailing_whitespace is disabled; nothing will be reported")
	}
	if cfg.Baseline.Source == config.BaselineDisk &&
		(editorOpts.HighlightOnlyChangedLines || editorOpts.TrimOnlyChangedLines) {
		logger.Warn("with the disk baseline no line counts as changed; use --all to process every line")
	}

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		IncludeVendored: cfg.IncludeVendored,
		Jobs:            cfg.Jobs,
		Mode:            mode,
		DryRun:          cfg.DryRun,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.Backups.IsEnabled() && !cfg.NoBackups,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		Editor:      editorOpts,
		CursorLines: cfg.CursorLines,
		Baseline:    loader,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldBaseline, string(cfg.Baseline.Source),
		logging.FieldRef, cfg.Baseline.Ref,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	result, err := runner.New(nil).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("%s run failed: %w", mode, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		Mode:        mode,
		DryRun:      cfg.DryRun,
		WorkingDir:  workDir,
		Version:     info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result, mode, cfg.DryRun))
}
