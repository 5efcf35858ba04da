package runner

import (
	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/langdetect"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// FileOutcome is the result of one editor session over a file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the go-enry language detected for the file.
	Language string

	// Skipped is set when the file was not opened at all.
	Skipped langdetect.SkipReason

	// HasBaseline reports whether a saved version was found.
	HasBaseline bool

	// Dirty reports whether the file differed from its saved version.
	Dirty bool

	// Spans are the highlighted spans in check mode and the trimmed spans
	// in trim mode.
	Spans []whitespace.LineSpan

	// Snapshot is the text the spans refer to. Only kept when Spans is
	// not empty.
	Snapshot *document.Snapshot

	// Remaining are the spans still highlighted after a trim.
	Remaining []whitespace.LineSpan

	// Diff is the unified diff of the trim. Set in dry-run mode only.
	Diff *fix.Diff

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the trimmed file was written to disk.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts binary, vendored and generated files.
	FilesSkipped int
	FilesErrored int

	// FilesWithSpans counts files with at least one reported span.
	FilesWithSpans int
	SpansTotal     int

	// FilesModified counts files that were (or in dry-run would be) rewritten.
	FilesModified int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasSpans reports whether any trailing whitespace was reported.
func (r *Result) HasSpans() bool {
	if r == nil {
		return false
	}
	return r.Stats.SpansTotal > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped != langdetect.SkipNone:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++

	if len(outcome.Spans) > 0 {
		r.Stats.FilesWithSpans++
		r.Stats.SpansTotal += len(outcome.Spans)
	}

	if outcome.Written || outcome.Diff.HasChanges() {
		r.Stats.FilesModified++
	}
}
