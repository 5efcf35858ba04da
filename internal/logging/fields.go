// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Run configuration fields.
	FieldBaseline = "baseline"
	FieldRef      = "ref"
	FieldMode     = "mode"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"

	// Whitespace fields.
	FieldLine   = "line"
	FieldLines  = "lines"
	FieldSpans  = "spans"
	FieldStatus = "status"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesProcessed    = "files_processed"
	FieldFilesWithSpans    = "files_with_spans"
	FieldSpansTotal        = "spans_total"
	FieldFilesModified     = "files_modified"
	FieldFilesSkipped      = "files_skipped"
	FieldLanguage          = "language"
	FieldBaselineLineCount = "baseline_lines"
	FieldDocumentLineCount = "document_lines"

	// Option listing fields.
	FieldValue       = "value"
	FieldDefault     = "default"
	FieldEnv         = "env"
	FieldEditorKey   = "editor_key"
	FieldDescription = "description"
	FieldSettings    = "settings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
