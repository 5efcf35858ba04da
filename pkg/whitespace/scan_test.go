package whitespace_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected []whitespace.LineSpan
	}{
		{name: "empty line", text: "", expected: nil},
		{name: "no trailing whitespace", text: "return x", expected: nil},
		{name: "leading whitespace only", text: "   indented", expected: nil},
		{name: "trailing spaces", text: "abc  ", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 3, EndColumn: 5}}},
		{name: "trailing tab", text: "abc\t", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 3, EndColumn: 4}}},
		{name: "mixed run", text: "x \t \v\f", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 1, EndColumn: 6}}},
		{name: "all whitespace line", text: "    ", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 0, EndColumn: 4}}},
		{name: "interior whitespace ignored", text: "a   b ", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 5, EndColumn: 6}}},
		{name: "no-break space", text: "a\u00a0", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 1, EndColumn: 2}}},
		{name: "ideographic space", text: "日本\u3000", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 2, EndColumn: 3}}},
		{name: "byte order mark", text: "a\ufeff", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 1, EndColumn: 2}}},
		{name: "next line is not whitespace", text: "a\u0085", expected: nil},
		{name: "columns count runes", text: "héllo  ", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 5, EndColumn: 7}}},
		{name: "stray carriage return", text: "a\r", expected: []whitespace.LineSpan{{Line: 4, StartColumn: 1, EndColumn: 2}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, whitespace.Scan(4, testCase.text))
		})
	}
}

func TestScanProperties(t *testing.T) {
	t.Parallel()

	lines := []string{"", " ", "a", "a ", " a", "a \t", "\t\t", "x y z   ", "ünï  "}

	for _, text := range lines {
		spans := whitespace.Scan(0, text)
		assert.LessOrEqual(t, len(spans), 1, "text %q", text)

		if len(spans) == 0 {
			continue
		}

		span := spans[0]
		runes := []rune(text)

		// Anchored at end and maximal.
		assert.Equal(t, len(runes), span.EndColumn, "text %q", text)
		for _, r := range runes[span.StartColumn:span.EndColumn] {
			assert.True(t, whitespace.IsWhitespace(r), "text %q", text)
		}
		if span.StartColumn > 0 {
			assert.False(t, whitespace.IsWhitespace(runes[span.StartColumn-1]), "text %q", text)
		}

		// Idempotence: removing the span leaves nothing to find.
		trimmed := string(runes[:span.StartColumn])
		assert.Empty(t, whitespace.Scan(0, trimmed))
		assert.Equal(t, strings.TrimRight(text, " \t"), trimmed)
	}
}

func TestScanAll(t *testing.T) {
	t.Parallel()

	spans := whitespace.ScanAll([]string{"a ", "b", "  ", "c\t"})

	assert.Equal(t, []whitespace.LineSpan{
		{Line: 0, StartColumn: 1, EndColumn: 2},
		{Line: 2, StartColumn: 0, EndColumn: 2},
		{Line: 3, StartColumn: 1, EndColumn: 2},
	}, spans)
}

func TestScanLines(t *testing.T) {
	t.Parallel()

	snap := document.FromString("a \nb \nc \n")

	spans := whitespace.ScanLines(snap, []int{2, 0, 7, -1})

	assert.Equal(t, []whitespace.LineSpan{
		{Line: 2, StartColumn: 1, EndColumn: 2},
		{Line: 0, StartColumn: 1, EndColumn: 2},
	}, spans)
	assert.Len(t, whitespace.ScanSource(snap), 3)
}

func TestLineSpanString(t *testing.T) {
	t.Parallel()

	span := whitespace.LineSpan{Line: 2, StartColumn: 3, EndColumn: 5}

	assert.Equal(t, "[2, 3] - [2, 5]", span.String())
	assert.Equal(t, 2, span.Len())
}
