package fix_test

import (
	"testing"

	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

func FuzzTrimRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("a  \nb\t\n"))
	f.Add([]byte("  \r\n\t\r\n"))
	f.Add([]byte("héllo　\n"))
	f.Add([]byte("x \uFEFF"))

	f.Fuzz(func(t *testing.T, content []byte) {
		snap := document.NewSnapshot(content)

		edits, err := fix.DeletionsForSpans(snap, whitespace.ScanSource(snap))
		if err != nil {
			t.Fatalf("DeletionsForSpans: %v", err)
		}

		out, err := fix.Apply(content, edits)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		trimmed := document.NewSnapshot(out)
		if trimmed.LineCount() != snap.LineCount() {
			t.Fatalf("line count changed: %d -> %d", snap.LineCount(), trimmed.LineCount())
		}

		if spans := whitespace.ScanSource(trimmed); len(spans) != 0 {
			t.Fatalf("trailing whitespace left after trim: %v", spans)
		}

		_ = fix.GenerateDiff("fuzz.txt", content, out).String()
	})
}
