package pretty

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gotws/pkg/whitespace"
)

// tabWidth is the number of cells a tab occupies in rendered source lines.
const tabWidth = 4

// FormatSpan formats one trailing whitespace span for terminal output.
// Locations are shown 1-based, the way editors display them.
func (s *Styles) FormatSpan(path string, span whitespace.LineSpan, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		span.Line+1,
		span.StartColumn+1,
	)

	chars := "characters"
	if span.Len() == 1 {
		chars = "character"
	}

	fmt.Fprintf(&builder, "  %s  %s  %s\n",
		location,
		s.Warning.Render("trailing whitespace"),
		s.Dim.Render(fmt.Sprintf("(%d %s)", span.Len(), chars)),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, span))
	}

	return builder.String()
}

// FormatSourceContext renders the source line with the whitespace run made
// visible and underlined by carets.
func (s *Styles) FormatSourceContext(line string, span whitespace.LineSpan) string {
	const indent = "        "

	runes := []rune(line)
	if span.StartColumn < 0 || span.EndColumn > len(runes) || span.StartColumn >= span.EndColumn {
		return indent + s.SourceLine.Render(expandTabs(line)) + "\n"
	}

	prefix := expandTabs(string(runes[:span.StartColumn]))
	marker := visibleWhitespace(runes[span.StartColumn:span.EndColumn])

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(prefix) + s.Whitespace.Render(marker) + "\n")
	builder.WriteString(indent + strings.Repeat(" ", uniseg.StringWidth(prefix)))
	builder.WriteString(s.Caret.Render(strings.Repeat("^", uniseg.StringWidth(marker))) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, spanCount int) string {
	header := s.FilePath.Render(path)
	if spanCount > 0 {
		noun := "lines"
		if spanCount == 1 {
			noun = "line"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", spanCount, noun))
	}
	return header
}

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

// visibleWhitespace maps each whitespace rune to a one-cell glyph.
func visibleWhitespace(run []rune) string {
	var builder strings.Builder
	for _, r := range run {
		switch r {
		case ' ':
			builder.WriteRune('·')
		case '\t':
			builder.WriteRune('→')
		default:
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
