// Package fix provides text edit types and application logic for trimming.
package fix

import (
	"fmt"

	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsDeletion reports whether the edit removes text without inserting any.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// EditBuilder accumulates text edits for a file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// DeleteSpan adds a deletion covering span within snap.
func (b *EditBuilder) DeleteSpan(snap *document.Snapshot, span whitespace.LineSpan) error {
	start, ok := snap.Offset(span.Line, span.StartColumn)
	if !ok {
		return fmt.Errorf("span %s: start outside document", span)
	}

	end, ok := snap.Offset(span.Line, span.EndColumn)
	if !ok {
		return fmt.Errorf("span %s: end outside document", span)
	}

	b.Delete(start, end)

	return nil
}

// DeletionsForSpans converts whitespace spans into byte-range deletions
// against snap, in span order.
func DeletionsForSpans(snap *document.Snapshot, spans []whitespace.LineSpan) ([]TextEdit, error) {
	builder := NewEditBuilder()

	for _, span := range spans {
		if err := builder.DeleteSpan(snap, span); err != nil {
			return nil, err
		}
	}

	return builder.Edits, nil
}
