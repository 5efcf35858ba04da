package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotws/pkg/fix"
)

func TestGenerateDiffNoChanges(t *testing.T) {
	t.Parallel()

	assert.Nil(t, fix.GenerateDiff("a.txt", nil, nil))
	assert.Nil(t, fix.GenerateDiff("a.txt", []byte("x\n"), []byte("x\n")))

	var diff *fix.Diff
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
}

func TestGenerateDiffTrimmedLine(t *testing.T) {
	t.Parallel()

	original := []byte("one\ntwo  \nthree\n")
	modified := []byte("one\ntwo\nthree\n")

	diff := fix.GenerateDiff("notes.txt", original, modified)
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 1)

	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	assert.Equal(t, "--- a/notes.txt\n+++ b/notes.txt\n"+
		"@@ -1,3 +1,3 @@\n"+
		" one\n"+
		"-two  \n"+
		"+two\n"+
		" three\n", diff.String())
}

func TestGenerateDiffSeparateHunks(t *testing.T) {
	t.Parallel()

	original := []byte("a \nb\nc\nd\ne\nf\ng\nh\ni\nj \n")
	modified := []byte("a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n")

	diff := fix.GenerateDiff("/abs/file.go", original, modified)
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 2)

	assert.Equal(t, 1, diff.Hunks[0].OriginalStart)
	assert.Equal(t, 4, diff.Hunks[0].OriginalCount)
	assert.Equal(t, 7, diff.Hunks[1].OriginalStart)
	assert.Equal(t, 4, diff.Hunks[1].ModifiedCount)
	assert.Contains(t, diff.String(), "--- a/abs/file.go")
}

func TestGenerateDiffInsertionIntoEmpty(t *testing.T) {
	t.Parallel()

	diff := fix.GenerateDiff("new.txt", nil, []byte("hello\n"))
	require.NotNil(t, diff)

	hunk := diff.Hunks[0]
	assert.Equal(t, 0, hunk.OriginalStart)
	assert.Equal(t, 0, hunk.OriginalCount)
	assert.Equal(t, 1, hunk.ModifiedStart)
	assert.Equal(t, 1, hunk.ModifiedCount)
	assert.Equal(t, []fix.DiffLine{{Kind: fix.DiffLineAdd, Content: "hello"}}, hunk.Lines)
}
