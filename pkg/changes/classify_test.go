package changes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotws/pkg/changes"
	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

func snapshotOf(lines ...string) *document.Snapshot {
	return document.FromString(strings.Join(lines, "\n"))
}

func TestChangedLinesScenario(t *testing.T) {
	t.Parallel()

	baseline := snapshotOf("a ", "b", "c")
	current := snapshotOf("a ", "bb ", "c", "d ")

	lines, err := changes.ChangedLines(baseline, current, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, lines)

	spans := whitespace.ScanLines(current, lines)
	assert.Equal(t, []whitespace.LineSpan{
		{Line: 1, StartColumn: 2, EndColumn: 3},
		{Line: 3, StartColumn: 1, EndColumn: 2},
	}, spans)
}

func TestChangedLinesAbsentBaseline(t *testing.T) {
	t.Parallel()

	current := snapshotOf("x  ")

	lines, err := changes.ChangedLines(nil, current, nil)
	require.NoError(t, err)
	assert.Empty(t, lines)

	spans := whitespace.ScanLines(current, changes.AllLines(current, nil))
	assert.Equal(t, []whitespace.LineSpan{{Line: 0, StartColumn: 1, EndColumn: 3}}, spans)
}

func TestChangedLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseline []string
		current  []string
		expected []int
	}{
		{name: "identical", baseline: []string{"a", "b"}, current: []string{"a", "b"}, expected: nil},
		{name: "appended line", baseline: []string{"a"}, current: []string{"a", "b"}, expected: []int{1}},
		{name: "prepended line", baseline: []string{"a"}, current: []string{"z", "a"}, expected: []int{0}},
		{name: "deleted line", baseline: []string{"a", "b", "c"}, current: []string{"a", "c"}, expected: nil},
		{name: "modified line", baseline: []string{"a", "b", "c"}, current: []string{"a", "B", "c"}, expected: []int{1}},
		{name: "replace with more lines", baseline: []string{"a", "b", "c"}, current: []string{"a", "x", "y", "c"}, expected: []int{1, 2}},
		{name: "whole rewrite", baseline: []string{"a", "b"}, current: []string{"x", "y", "z"}, expected: []int{0, 1, 2}},
		{name: "whitespace only edit counts", baseline: []string{"a"}, current: []string{"a "}, expected: []int{0}},
		{name: "empty baseline", baseline: []string{""}, current: []string{"a", "b"}, expected: []int{0, 1}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lines, err := changes.ChangedLines(snapshotOf(testCase.baseline...), snapshotOf(testCase.current...), nil)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, lines)
		})
	}
}

func TestChangedLinesProperties(t *testing.T) {
	t.Parallel()

	pairs := [][2][]string{
		{{"a ", "b", "c"}, {"a ", "bb ", "c", "d "}},
		{{"one", "two", "three", "four"}, {"zero", "one", "three", "3.5", "four", "five"}},
		{{"x", "x", "x"}, {"x", "y", "x", "x", "y"}},
		{{""}, {""}},
		{{"a", "b", "c", "d", "e"}, {"e", "d", "c", "b", "a"}},
	}

	for _, pair := range pairs {
		baseline := snapshotOf(pair[0]...)
		current := snapshotOf(pair[1]...)

		all, err := changes.ChangedLines(baseline, current, nil)
		require.NoError(t, err)

		for idx, line := range all {
			assert.Less(t, line, current.LineCount())
			if idx > 0 {
				assert.Greater(t, line, all[idx-1])
			}
		}

		// Excluding a set removes exactly those indices.
		for _, excluded := range []changes.LineSet{
			changes.NewLineSet(0),
			changes.NewLineSet(1, 3),
			changes.NewLineSet(all...),
			changes.NewLineSet(100),
		} {
			got, err := changes.ChangedLines(baseline, current, excluded)
			require.NoError(t, err)

			var want []int
			for _, line := range all {
				if !excluded.Contains(line) {
					want = append(want, line)
				}
			}

			assert.Equal(t, want, got)
		}
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	hunks := []changes.Hunk{
		{Kind: changes.Unchanged, LineCount: 1},
		{Kind: changes.Removed, LineCount: 1},
		{Kind: changes.Added, LineCount: 1},
		{Kind: changes.Unchanged, LineCount: 1},
		{Kind: changes.Added, LineCount: 1},
	}

	lines, err := changes.Walk(hunks, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, lines)

	lines, err = changes.Walk(hunks, 4, changes.NewLineSet(1))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, lines)
}

func TestWalkInconsistent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hunks     []changes.Hunk
		lineCount int
	}{
		{
			name:      "added past end",
			hunks:     []changes.Hunk{{Kind: changes.Unchanged, LineCount: 2}, {Kind: changes.Added, LineCount: 2}},
			lineCount: 3,
		},
		{
			name:      "short coverage",
			hunks:     []changes.Hunk{{Kind: changes.Unchanged, LineCount: 1}},
			lineCount: 3,
		},
		{
			name:      "unchanged overshoot",
			hunks:     []changes.Hunk{{Kind: changes.Unchanged, LineCount: 5}},
			lineCount: 3,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := changes.Walk(testCase.hunks, testCase.lineCount, nil)
			require.ErrorIs(t, err, changes.ErrInconsistentDiff)
		})
	}
}

func TestLineSet(t *testing.T) {
	t.Parallel()

	var empty changes.LineSet
	assert.False(t, empty.Contains(0))

	set := changes.NewLineSet(1, 2).Union(changes.NewLineSet(5))
	assert.True(t, set.Contains(5))
	assert.True(t, set.Contains(1))
	assert.False(t, set.Contains(3))
}

func TestAllLines(t *testing.T) {
	t.Parallel()

	snap := snapshotOf("a", "b", "c")

	assert.Equal(t, []int{0, 1, 2}, changes.AllLines(snap, nil))
	assert.Equal(t, []int{0, 2}, changes.AllLines(snap, changes.NewLineSet(1)))
	assert.Nil(t, changes.AllLines(nil, nil))
}
