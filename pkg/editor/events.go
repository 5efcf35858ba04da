package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/gotws/pkg/config"
	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/fix"
)

// DocumentEvent identifies a document lifecycle event.
type DocumentEvent int

const (
	// EventDidOpen fires when a document is opened.
	EventDidOpen DocumentEvent = iota

	// EventDidChangeActive fires when a document becomes the active one.
	EventDidChangeActive

	// EventDidChangeContent fires after the text of a document changes.
	EventDidChangeContent

	// EventDidChangeSelection fires after the cursors or selections move.
	EventDidChangeSelection

	// EventDidSave fires after a document's bytes were written.
	EventDidSave
)

// String returns the event name.
func (e DocumentEvent) String() string {
	switch e {
	case EventDidOpen:
		return "did-open"
	case EventDidChangeActive:
		return "did-change-active"
	case EventDidChangeContent:
		return "did-change-content"
	case EventDidChangeSelection:
		return "did-change-selection"
	case EventDidSave:
		return "did-save"
	default:
		return "unknown"
	}
}

// DocumentHandler reacts to a document event.
type DocumentHandler func(ctx context.Context, doc *document.Document) error

// WillSaveHandler returns edits to commit before a document is written.
type WillSaveHandler func(ctx context.Context, doc *document.Document) ([]fix.TextEdit, error)

// ConfigurationHandler reacts to new configuration.
type ConfigurationHandler func(ctx context.Context, opts config.Options) error

// EventSource is the host capability a Controller subscribes to.
type EventSource interface {
	SubscribeDocument(event DocumentEvent, handler DocumentHandler)
	SubscribeWillSave(handler WillSaveHandler)
	SubscribeConfiguration(handler ConfigurationHandler)
}

// Bus is an in-process EventSource. Handlers run synchronously, in
// subscription order, on the goroutine that fires the event.
type Bus struct {
	mu        sync.RWMutex
	documents map[DocumentEvent][]DocumentHandler
	willSave  []WillSaveHandler
	configs   []ConfigurationHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		documents: make(map[DocumentEvent][]DocumentHandler),
	}
}

// SubscribeDocument registers handler for event.
func (b *Bus) SubscribeDocument(event DocumentEvent, handler DocumentHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.documents[event] = append(b.documents[event], handler)
}

// SubscribeWillSave registers a will-save handler.
func (b *Bus) SubscribeWillSave(handler WillSaveHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.willSave = append(b.willSave, handler)
}

// SubscribeConfiguration registers a configuration handler.
func (b *Bus) SubscribeConfiguration(handler ConfigurationHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.configs = append(b.configs, handler)
}

// Fire dispatches a document event. It stops at the first handler error.
func (b *Bus) Fire(ctx context.Context, event DocumentEvent, doc *document.Document) error {
	b.mu.RLock()
	handlers := append([]DocumentHandler(nil), b.documents[event]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, doc); err != nil {
			return fmt.Errorf("%s: %w", event, err)
		}
	}

	return nil
}

// FireWillSave dispatches a will-save event and returns the edits every
// handler asked for. The host applies them before writing the document.
func (b *Bus) FireWillSave(ctx context.Context, doc *document.Document) ([]fix.TextEdit, error) {
	b.mu.RLock()
	handlers := append([]WillSaveHandler(nil), b.willSave...)
	b.mu.RUnlock()

	var edits []fix.TextEdit

	for _, handler := range handlers {
		out, err := handler(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("will-save: %w", err)
		}

		edits = append(edits, out...)
	}

	return edits, nil
}

// FireConfiguration dispatches new configuration.
func (b *Bus) FireConfiguration(ctx context.Context, opts config.Options) error {
	b.mu.RLock()
	handlers := append([]ConfigurationHandler(nil), b.configs...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, opts); err != nil {
			return fmt.Errorf("did-change-configuration: %w", err)
		}
	}

	return nil
}
