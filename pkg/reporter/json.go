package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gotws/pkg/runner"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Mode    string           `json:"mode"`
	DryRun  bool             `json:"dryRun,omitempty"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results. Span positions are
// 0-based rune columns, half-open.
type JSONFileResult struct {
	Path        string                `json:"path"`
	Language    string                `json:"language,omitempty"`
	Skipped     string                `json:"skipped,omitempty"`
	HasBaseline bool                  `json:"hasBaseline"`
	Dirty       bool                  `json:"dirty"`
	Spans       []whitespace.LineSpan `json:"spans"`
	Remaining   []whitespace.LineSpan `json:"remaining,omitempty"`
	Modified    bool                  `json:"modified,omitempty"`
	Diff        string                `json:"diff,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked   int `json:"filesChecked"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesWithSpans int `json:"filesWithSpans"`
	FilesModified  int `json:"filesModified"`
	FilesErrored   int `json:"filesErrored"`
	TotalSpans     int `json:"totalSpans"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalSpans, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Mode:    r.opts.Mode.String(),
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        displayPath(r.opts.WorkingDir, file.Path),
			Language:    file.Language,
			Skipped:     string(file.Skipped),
			HasBaseline: file.HasBaseline,
			Dirty:       file.Dirty,
			Spans:       file.Spans,
			Remaining:   file.Remaining,
			Modified:    file.Written,
		}
		if fileResult.Spans == nil {
			fileResult.Spans = []whitespace.LineSpan{}
		}
		if file.Diff.HasChanges() {
			fileResult.Diff = file.Diff.String()
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:   stats.FilesProcessed,
		FilesSkipped:   stats.FilesSkipped,
		FilesWithSpans: stats.FilesWithSpans,
		FilesModified:  stats.FilesModified,
		FilesErrored:   stats.FilesErrored,
		TotalSpans:     stats.SpansTotal,
	}

	return output
}
