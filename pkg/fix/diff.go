package fix

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind DiffLineKind

	// Content is the line content (without the diff prefix).
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	if slices.Equal(origLines, modLines) {
		return nil
	}

	matcher := difflib.NewMatcherWithJunk(origLines, modLines, false, nil)

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
	}

	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		hunk := buildHunk(group, origLines, modLines)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			case DiffLineContext:
			}
		}

		diff.Hunks = append(diff.Hunks, hunk)
	}

	if len(diff.Hunks) == 0 {
		return nil
	}

	return diff
}

// buildHunk converts one group of opcodes into a hunk.
func buildHunk(group []difflib.OpCode, orig, mod []string) DiffHunk {
	first, last := group[0], group[len(group)-1]

	hunk := DiffHunk{
		OriginalStart: hunkStart(first.I1, last.I2-first.I1),
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: hunkStart(first.J1, last.J2-first.J1),
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		switch op.Tag {
		case 'e':
			hunk.Lines = appendLines(hunk.Lines, DiffLineContext, orig[op.I1:op.I2])
		case 'd':
			hunk.Lines = appendLines(hunk.Lines, DiffLineRemove, orig[op.I1:op.I2])
		case 'i':
			hunk.Lines = appendLines(hunk.Lines, DiffLineAdd, mod[op.J1:op.J2])
		case 'r':
			hunk.Lines = appendLines(hunk.Lines, DiffLineRemove, orig[op.I1:op.I2])
			hunk.Lines = appendLines(hunk.Lines, DiffLineAdd, mod[op.J1:op.J2])
		}
	}

	return hunk
}

// hunkStart returns the 1-based start line of a hunk side. An empty side
// points at the line before it, as in GNU diff.
func hunkStart(index, count int) int {
	if count == 0 {
		return index
	}
	return index + 1
}

func appendLines(lines []DiffLine, kind DiffLineKind, content []string) []DiffLine {
	for _, text := range content {
		lines = append(lines, DiffLine{Kind: kind, Content: text})
	}
	return lines
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, removing the trailing newline if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")

	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
