package changes

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/gotws/pkg/document"
)

// ErrInconsistentDiff is returned when a hunk sequence does not describe the
// current text: it would address a line past the end, or its unchanged and
// added counts do not sum to the line count.
var ErrInconsistentDiff = errors.New("inconsistent line diff")

// LineSet is a set of 0-based line indices.
type LineSet map[int]struct{}

// NewLineSet returns a set holding lines.
func NewLineSet(lines ...int) LineSet {
	return lo.SliceToMap(lines, func(line int) (int, struct{}) {
		return line, struct{}{}
	})
}

// Contains reports whether line is in the set. A nil set contains nothing.
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// Union returns a new set holding the lines of both sets.
func (s LineSet) Union(other LineSet) LineSet {
	out := make(LineSet, len(s)+len(other))
	for line := range s {
		out[line] = struct{}{}
	}
	for line := range other {
		out[line] = struct{}{}
	}

	return out
}

// ChangedLines returns the strictly increasing indices of lines in current
// that are added or modified relative to baseline, skipping excluded lines.
// A nil baseline means none is available and yields no lines.
func ChangedLines(baseline, current *document.Snapshot, excluded LineSet) ([]int, error) {
	if baseline == nil || current == nil {
		return nil, nil
	}

	hunks := Diff(baseline.Lines(), current.Lines())

	return Walk(hunks, current.LineCount(), excluded)
}

// Walk maps a hunk sequence onto current line indices. Unchanged hunks
// advance the cursor; Added hunks emit each non-excluded line and advance by
// their full count; Removed hunks leave the cursor alone.
func Walk(hunks []Hunk, lineCount int, excluded LineSet) ([]int, error) {
	var lines []int

	cursor := 0

	for _, hunk := range hunks {
		switch hunk.Kind {
		case Unchanged:
			cursor += hunk.LineCount
		case Added:
			for line := cursor; line < cursor+hunk.LineCount; line++ {
				if line >= lineCount {
					return nil, fmt.Errorf("%w: added line %d beyond %d lines", ErrInconsistentDiff, line, lineCount)
				}

				if !excluded.Contains(line) {
					lines = append(lines, line)
				}
			}

			cursor += hunk.LineCount
		case Removed:
			// Removed lines are absent from the current text.
		}
	}

	if cursor != lineCount {
		return nil, fmt.Errorf("%w: hunks cover %d of %d lines", ErrInconsistentDiff, cursor, lineCount)
	}

	return lines, nil
}

// AllLines returns every line index of snap not in excluded.
func AllLines(snap *document.Snapshot, excluded LineSet) []int {
	if snap == nil {
		return nil
	}

	return lo.Filter(lo.Range(snap.LineCount()), func(line int, _ int) bool {
		return !excluded.Contains(line)
	})
}
