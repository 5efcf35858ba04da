// Package whitespace finds runs of whitespace at the end of lines.
package whitespace

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Runes that need special handling beyond unicode.IsSpace.
const (
	nextLine         = '\u0085'
	zeroWidthNoBreak = '\ufeff'
)

// LineSpan is one contiguous run of trailing whitespace. Columns are 0-based
// rune indices into the line text (terminator excluded), half-open
// [StartColumn, EndColumn).
type LineSpan struct {
	Line        int `json:"line"`
	StartColumn int `json:"startColumn"`
	EndColumn   int `json:"endColumn"`
}

// Len returns the number of runes covered by the span.
func (s LineSpan) Len() int {
	return s.EndColumn - s.StartColumn
}

// String formats the span the way debug logs print it: [line, col] - [line, col].
func (s LineSpan) String() string {
	return fmt.Sprintf("[%d, %d] - [%d, %d]", s.Line, s.StartColumn, s.Line, s.EndColumn)
}

// LineSource is anything that exposes numbered lines, such as a
// document.Snapshot.
type LineSource interface {
	LineCount() int
	Line(idx int) string
}

// IsWhitespace reports whether r counts as trailing whitespace: Unicode
// white space other than NEL, plus the zero-width no-break space.
func IsWhitespace(r rune) bool {
	switch r {
	case nextLine:
		return false
	case zeroWidthNoBreak:
		return true
	}

	return unicode.IsSpace(r)
}

// Scan returns the trailing-whitespace span of a single line: empty when the
// line does not end in whitespace, otherwise exactly one span covering the
// maximal whitespace run that reaches the end of the line.
func Scan(line int, text string) []LineSpan {
	end := utf8.RuneCountInString(text)
	start := end

	for idx := len(text); idx > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:idx])
		if !IsWhitespace(r) {
			break
		}

		idx -= size
		start--
	}

	if start == end {
		return nil
	}

	return []LineSpan{{Line: line, StartColumn: start, EndColumn: end}}
}

// ScanAll scans every line, in order.
func ScanAll(lines []string) []LineSpan {
	var spans []LineSpan
	for idx, text := range lines {
		spans = append(spans, Scan(idx, text)...)
	}

	return spans
}

// ScanLines scans only the target lines of src, in the given order. Targets
// outside src are ignored.
func ScanLines(src LineSource, targets []int) []LineSpan {
	var spans []LineSpan
	for _, line := range targets {
		if line < 0 || line >= src.LineCount() {
			continue
		}

		spans = append(spans, Scan(line, src.Line(line))...)
	}

	return spans
}

// ScanSource scans every line of src.
func ScanSource(src LineSource) []LineSpan {
	var spans []LineSpan
	for line := range src.LineCount() {
		spans = append(spans, Scan(line, src.Line(line))...)
	}

	return spans
}
