package configloader

import (
	"slices"

	"github.com/yaklabco/gotws/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Behavior switches: override wins whenever it sets the pointer
//   - Strings and ints: override overwrites base if non-zero
//   - Slices: override replaces base entirely if non-nil
//   - Plain booleans: only a true override is visible
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeBool(&result.TrimOnSave, override.TrimOnSave)
	mergeBool(&result.HighlightTrailingWhiteSpace, override.HighlightTrailingWhiteSpace)
	mergeBool(&result.HighlightOnlyChangedLines, override.HighlightOnlyChangedLines)
	mergeBool(&result.TrimLinesUserIsOn, override.TrimLinesUserIsOn)
	mergeBool(&result.TrimOnlyChangedLines, override.TrimOnlyChangedLines)
	mergeBool(&result.PreserveMarkdownHardBreaks, override.PreserveMarkdownHardBreaks)
	mergeBool(&result.DebugLog, override.DebugLog)

	if override.Baseline.Source != "" {
		result.Baseline.Source = override.Baseline.Source
	}
	if override.Baseline.Ref != "" {
		result.Baseline.Ref = override.Baseline.Ref
	}
	if override.Baseline.File != "" {
		result.Baseline.File = override.Baseline.File
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.IncludeVendored {
		result.IncludeVendored = true
	}

	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.CursorLines != nil {
		result.CursorLines = slices.Clone(override.CursorLines)
	}

	return result
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
