// Package changes classifies which lines of a document were added or
// modified relative to its last-saved baseline.
package changes

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Kind classifies a run of lines in a line diff.
type Kind int

const (
	// Unchanged lines appear in both baseline and current text.
	Unchanged Kind = iota

	// Added lines appear only in the current text.
	Added

	// Removed lines appear only in the baseline.
	Removed
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Hunk is a run of consecutive lines sharing one Kind.
type Hunk struct {
	Kind      Kind
	LineCount int
}

// Diff computes the line diff from baseline to current. A modified region is
// reported as a Removed hunk followed by an Added hunk. Concatenating the
// non-Removed hunks reconstructs current.
func Diff(baseline, current []string) []Hunk {
	matcher := difflib.NewMatcherWithJunk(baseline, current, false, nil)

	var hunks []Hunk

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			hunks = appendHunk(hunks, Unchanged, op.J2-op.J1)
		case 'd':
			hunks = appendHunk(hunks, Removed, op.I2-op.I1)
		case 'i':
			hunks = appendHunk(hunks, Added, op.J2-op.J1)
		case 'r':
			hunks = appendHunk(hunks, Removed, op.I2-op.I1)
			hunks = appendHunk(hunks, Added, op.J2-op.J1)
		}
	}

	return hunks
}

// appendHunk appends a hunk, merging it into the previous one when the kinds
// match and dropping it when empty.
func appendHunk(hunks []Hunk, kind Kind, count int) []Hunk {
	if count <= 0 {
		return hunks
	}

	if n := len(hunks); n > 0 && hunks[n-1].Kind == kind {
		hunks[n-1].LineCount += count
		return hunks
	}

	return append(hunks, Hunk{Kind: kind, LineCount: count})
}
