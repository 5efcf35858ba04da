package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotws/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 lines with trailing whitespace in 2 files (10 files checked, 1 skipped)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, mode runner.Mode, dryRun bool) string {
	checked := fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))
	if stats.FilesSkipped > 0 {
		checked += fmt.Sprintf(", %d skipped", stats.FilesSkipped)
	}

	var parts []string

	switch {
	case stats.SpansTotal == 0:
		parts = append(parts, s.Success.Render("No trailing whitespace"))
	case mode == runner.ModeTrim && dryRun:
		parts = append(parts, s.Warning.Render(fmt.Sprintf("Would trim %d %s in %d %s",
			stats.SpansTotal, plural(stats.SpansTotal, "line", "lines"),
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	case mode == runner.ModeTrim:
		parts = append(parts, s.Success.Render(fmt.Sprintf("Trimmed %d %s in %d %s",
			stats.SpansTotal, plural(stats.SpansTotal, "line", "lines"),
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	default:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s with trailing whitespace in %d %s",
			stats.SpansTotal, plural(stats.SpansTotal, "line", "lines"),
			stats.FilesWithSpans, plural(stats.FilesWithSpans, wordFile, wordFiles))))
	}

	parts = append(parts, s.Dim.Render("("+checked+")"))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, " ") + "\n"
}
