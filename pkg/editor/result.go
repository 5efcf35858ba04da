package editor

import (
	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// TrimStatus explains the outcome of a trim.
type TrimStatus int

const (
	// StatusClean means the targeted lines had no trailing whitespace.
	StatusClean TrimStatus = iota

	// StatusTrimmed means edits were produced.
	StatusTrimmed

	// StatusNoUnsavedChanges means changed-lines mode found a document
	// without unsaved changes, so there was nothing to consider.
	StatusNoUnsavedChanges

	// StatusNoBaseline means changed-lines mode had no last-saved version to
	// compare against.
	StatusNoBaseline
)

// String returns a short, human readable status.
func (s TrimStatus) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusTrimmed:
		return "trimmed"
	case StatusNoUnsavedChanges:
		return "no unsaved changes"
	case StatusNoBaseline:
		return "no baseline"
	default:
		return "unknown"
	}
}

// TrimResult is the outcome of Controller.Trim.
type TrimResult struct {
	Status TrimStatus

	// Spans are the whitespace runs that will be removed.
	Spans []whitespace.LineSpan

	// Edits are the byte-range deletions that remove Spans.
	Edits []fix.TextEdit
}
