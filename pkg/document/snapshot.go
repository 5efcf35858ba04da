// Package document models the text a user edits: immutable snapshots with a
// line index, and the host-side document that carries one.
package document

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// LineInfo records the byte layout of one line within a snapshot.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte offset where the line terminator begins
	// (len(content) for a final line without terminator).
	NewlineStart int

	// EndOffset is the byte offset just past the line terminator.
	EndOffset int
}

// Snapshot is an immutable view of a text as an ordered sequence of lines.
// Lines are 0-based and exclude their terminator (LF or CRLF). An empty text
// has exactly one empty line; a text ending with a newline has a final empty
// line.
type Snapshot struct {
	content []byte
	lines   []LineInfo
}

// NewSnapshot builds a snapshot from content. The content is copied so later
// changes to the caller's slice do not leak into the snapshot.
func NewSnapshot(content []byte) *Snapshot {
	owned := bytes.Clone(content)
	if owned == nil {
		owned = []byte{}
	}

	return &Snapshot{
		content: owned,
		lines:   buildLines(owned),
	}
}

// FromString builds a snapshot from a string.
func FromString(text string) *Snapshot {
	return NewSnapshot([]byte(text))
}

// buildLines constructs the line index. It handles both LF and CRLF endings.
func buildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The last line exists even when empty.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines. It is always at least 1.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns the text of line idx without its terminator.
// It returns "" when idx is out of range.
func (s *Snapshot) Line(idx int) string {
	if idx < 0 || idx >= len(s.lines) {
		return ""
	}

	info := s.lines[idx]

	return string(s.content[info.StartOffset:info.NewlineStart])
}

// Lines returns the text of every line, in order.
func (s *Snapshot) Lines() []string {
	out := make([]string, len(s.lines))
	for idx := range s.lines {
		out[idx] = s.Line(idx)
	}

	return out
}

// LineInfo returns the byte layout of line idx.
func (s *Snapshot) LineInfo(idx int) (LineInfo, bool) {
	if idx < 0 || idx >= len(s.lines) {
		return LineInfo{}, false
	}

	return s.lines[idx], true
}

// Text returns the full text of the snapshot.
func (s *Snapshot) Text() string {
	return string(s.content)
}

// Bytes returns a copy of the full content.
func (s *Snapshot) Bytes() []byte {
	return bytes.Clone(s.content)
}

// Len returns the content length in bytes.
func (s *Snapshot) Len() int {
	return len(s.content)
}

// Equal reports whether both snapshots hold the same text.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}

	return bytes.Equal(s.content, other.content)
}

// Offset converts a 0-based line and rune column into a byte offset.
// The column may point at the end of the line. It returns false when the
// position is out of range.
func (s *Snapshot) Offset(line, column int) (int, bool) {
	if line < 0 || line >= len(s.lines) || column < 0 {
		return 0, false
	}

	info := s.lines[line]
	text := s.content[info.StartOffset:info.NewlineStart]

	offset := 0
	for range column {
		if offset >= len(text) {
			return 0, false
		}

		_, size := utf8.DecodeRune(text[offset:])
		offset += size
	}

	return info.StartOffset + offset, true
}

// Position converts a byte offset into a 0-based line and rune column.
// It returns false when the offset is outside the content.
func (s *Snapshot) Position(offset int) (int, int, bool) {
	if offset < 0 || offset > len(s.content) {
		return 0, 0, false
	}

	idx := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i].StartOffset > offset
	}) - 1

	info := s.lines[idx]
	end := min(offset, info.NewlineStart)

	return idx, utf8.RuneCount(s.content[info.StartOffset:end]), true
}
