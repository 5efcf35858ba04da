package document

import "slices"

// Document is the host's view of an open document: its identity, current
// text, where the user's cursors are, and whether it has unsaved changes.
type Document struct {
	// Path identifies the document. Empty for untitled documents.
	Path string

	// Snapshot is the current text.
	Snapshot *Snapshot

	// Selections are the 0-based lines the user's cursors or selections
	// occupy.
	Selections []int

	// Dirty reports unsaved changes relative to the backing store.
	Dirty bool

	// Untitled marks a document that has never been saved.
	Untitled bool

	// Language is the detected language name (e.g. "Markdown"), if known.
	Language string
}

// New returns a document for path holding content.
func New(path string, content []byte) *Document {
	return &Document{
		Path:     path,
		Snapshot: NewSnapshot(content),
		Untitled: path == "",
	}
}

// LineCount returns the number of lines in the current text.
func (d *Document) LineCount() int {
	if d.Snapshot == nil {
		return 0
	}

	return d.Snapshot.LineCount()
}

// SelectionLines returns the sorted, deduplicated selection lines that fall
// inside the document.
func (d *Document) SelectionLines() []int {
	lines := make([]int, 0, len(d.Selections))
	for _, line := range d.Selections {
		if line >= 0 && line < d.LineCount() {
			lines = append(lines, line)
		}
	}

	slices.Sort(lines)

	return slices.Compact(lines)
}

// WithSnapshot returns a shallow copy of the document holding snap.
func (d *Document) WithSnapshot(snap *Snapshot) *Document {
	clone := *d
	clone.Snapshot = snap
	clone.Selections = slices.Clone(d.Selections)

	return &clone
}
