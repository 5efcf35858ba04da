package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/langdetect"
	"github.com/yaklabco/gotws/pkg/reporter"
	"github.com/yaklabco/gotws/pkg/runner"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, reporter.FormatSARIF, reporter.FormatDiff, ""} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

// sampleResult is a check run over /work with one file that has spans, one
// clean file, one binary and one failure.
func sampleResult() *runner.Result {
	snap := document.FromString("one  \ntwo\nthree\t")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:        "/work/a.txt",
				Language:    "Text",
				HasBaseline: true,
				Dirty:       true,
				Spans: []whitespace.LineSpan{
					{Line: 0, StartColumn: 3, EndColumn: 5},
					{Line: 2, StartColumn: 5, EndColumn: 6},
				},
				Snapshot: snap,
			},
			{Path: "/work/b.txt", Language: "Text"},
			{Path: "/work/c.bin", Skipped: langdetect.SkipBinary},
			{Path: "/work/d.txt", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  2,
			FilesSkipped:    1,
			FilesErrored:    1,
			FilesWithSpans:  1,
			SpansTotal:      2,
		},
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		WorkingDir:  "/work",
	})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, "a.txt (2 lines)\n"+
		"  a.txt:1:4  trailing whitespace  (2 characters)\n"+
		"        one··\n"+
		"           ^^\n"+
		"  a.txt:3:6  trailing whitespace  (1 character)\n"+
		"        three→\n"+
		"             ^\n"+
		"\n"+
		"d.txt: error: permission denied\n"+
		"2 lines with trailing whitespace in 1 file (2 files checked, 1 skipped) 1 file failed\n",
		buf.String())
}

func TestTextReporterEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/work", Compact: true})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "check", output.Mode)
	require.Len(t, output.Files, 4)

	first := output.Files[0]
	assert.Equal(t, "a.txt", first.Path)
	assert.True(t, first.HasBaseline)
	assert.Equal(t, []whitespace.LineSpan{
		{Line: 0, StartColumn: 3, EndColumn: 5},
		{Line: 2, StartColumn: 5, EndColumn: 6},
	}, first.Spans)

	assert.Equal(t, []whitespace.LineSpan{}, output.Files[1].Spans)
	assert.Equal(t, "binary", output.Files[2].Skipped)
	assert.Equal(t, "permission denied", output.Files[3].Error)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:   2,
		FilesSkipped:   1,
		FilesWithSpans: 1,
		FilesErrored:   1,
		TotalSpans:     2,
	}, output.Summary)

	assert.Contains(t, buf.String(), `"startColumn":3`)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{Writer: &buf, WorkingDir: "/work", Version: "1.2.3"})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)

	run := output.Runs[0]
	assert.Equal(t, "gotws", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Equal(t, "unicodeCodePoints", run.ColumnKind)
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "trailing-whitespace", run.Tool.Driver.Rules[0].ID)

	require.Len(t, run.Results, 2)

	first := run.Results[0]
	assert.Equal(t, "trailing-whitespace", first.RuleID)
	assert.Equal(t, "warning", first.Level)
	assert.Equal(t, "Line ends with trailing whitespace (2 characters)", first.Message.Text)
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "a.txt", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, reporter.SARIFRegion{StartLine: 1, StartColumn: 4, EndColumn: 6},
		first.Locations[0].PhysicalLocation.Region)

	second := run.Results[1]
	assert.Equal(t, reporter.SARIFRegion{StartLine: 3, StartColumn: 6, EndColumn: 7},
		second.Locations[0].PhysicalLocation.Region)

	// Fixes delete the span bytes: "one  \ntwo\n" puts "three\t" at byte 10.
	require.Len(t, first.Fixes, 1)
	deleted := first.Fixes[0].ArtifactChanges[0].Replacements[0].DeletedRegion
	require.NotNil(t, deleted.ByteOffset)
	require.NotNil(t, deleted.ByteLength)
	assert.Equal(t, 3, *deleted.ByteOffset)
	assert.Equal(t, 2, *deleted.ByteLength)

	deleted = second.Fixes[0].ArtifactChanges[0].Replacements[0].DeletedRegion
	assert.Equal(t, 15, *deleted.ByteOffset)
	assert.Equal(t, 1, *deleted.ByteLength)
}

func TestSARIFReporterWrittenTrim(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:     "/work/a.txt",
			Spans:    []whitespace.LineSpan{{Line: 0, StartColumn: 1, EndColumn: 2}},
			Snapshot: document.FromString("a \n"),
			Written:  true,
		}},
	}

	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{Writer: &buf, WorkingDir: "/work", Mode: runner.ModeTrim, Compact: true})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Runs[0].Results, 1)
	res := output.Runs[0].Results[0]
	assert.Equal(t, "note", res.Level)
	assert.Equal(t, "Trimmed trailing whitespace (1 character)", res.Message.Text)
	assert.Empty(t, res.Fixes)
}

func TestSARIFReporterEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{Writer: &buf, Compact: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), `"results":[]`)
}

func TestJSONReporterDryRunDiff(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:  "/work/a.txt",
			Spans: []whitespace.LineSpan{{Line: 0, StartColumn: 1, EndColumn: 2}},
			Diff:  fix.GenerateDiff("/work/a.txt", []byte("a \n"), []byte("a\n")),
		}},
		Stats: runner.Stats{FilesProcessed: 1, FilesWithSpans: 1, SpansTotal: 1, FilesModified: 1},
	}

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Mode: runner.ModeTrim, DryRun: true})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "trim", output.Mode)
	assert.True(t, output.DryRun)
	assert.Contains(t, output.Files[0].Diff, "-a \n+a\n")
	assert.False(t, output.Files[0].Modified)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/a.txt",
				Diff: fix.GenerateDiff("/work/a.txt", []byte("-- sql \nx\n"), []byte("-- sql\nx\n")),
			},
			{Path: "/work/b.txt"},
		},
	}

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, "diff --git a/a.txt b/a.txt\n"+
		"--- a/a.txt\n"+
		"+++ b/a.txt\n"+
		"@@ -1,2 +1,2 @@\n"+
		"--- sql \n"+
		"+-- sql\n"+
		" x\n"+
		"\n"+
		"1 file changed, 1 insertion(+), 1 deletion(-)\n",
		buf.String())
}
