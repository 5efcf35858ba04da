package editor

import (
	"slices"

	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// Decorator receives the full highlight set of a document. Each call
// replaces whatever was set before; an empty set clears the highlights.
type Decorator interface {
	SetDecorations(doc *document.Document, spans []whitespace.LineSpan)
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(doc *document.Document, spans []whitespace.LineSpan)

// SetDecorations calls f.
func (f DecoratorFunc) SetDecorations(doc *document.Document, spans []whitespace.LineSpan) {
	f(doc, spans)
}

// Recorder is a Decorator that keeps the latest highlight set per document
// path. It is not safe for concurrent use.
type Recorder struct {
	sets map[string][]whitespace.LineSpan
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{sets: make(map[string][]whitespace.LineSpan)}
}

// SetDecorations replaces the set recorded for doc.
func (r *Recorder) SetDecorations(doc *document.Document, spans []whitespace.LineSpan) {
	if len(spans) == 0 {
		delete(r.sets, doc.Path)
		return
	}

	r.sets[doc.Path] = slices.Clone(spans)
}

// Decorations returns the set recorded for path.
func (r *Recorder) Decorations(path string) []whitespace.LineSpan {
	return slices.Clone(r.sets[path])
}

type nopDecorator struct{}

func (nopDecorator) SetDecorations(*document.Document, []whitespace.LineSpan) {}
