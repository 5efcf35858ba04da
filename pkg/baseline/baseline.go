// Package baseline loads the last-saved version of a document, the text the
// current text is diffed against to find changed lines.
package baseline

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gotws/pkg/config"
	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/fsutil"
)

// Loader reads the last-saved version of the document at path.
//
// A nil snapshot with a nil error means the document has no backing store
// (never saved, not tracked). An error means the store exists but could not
// be read.
type Loader interface {
	Load(ctx context.Context, path string) (*document.Snapshot, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*document.Snapshot, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (*document.Snapshot, error) {
	return f(ctx, path)
}

// New returns the loader selected by cfg.
func New(cfg config.BaselineConfig) (Loader, error) {
	switch cfg.Source {
	case config.BaselineGit, "":
		return NewGitLoader(cfg.Ref), nil
	case config.BaselineDisk:
		return DiskLoader{}, nil
	case config.BaselineFile:
		if cfg.File == "" {
			return nil, errors.New("baseline source \"file\" requires a baseline file")
		}
		return FileLoader{Path: cfg.File}, nil
	case config.BaselineNone:
		return NoneLoader{}, nil
	default:
		return nil, fmt.Errorf("unknown baseline source %q", cfg.Source)
	}
}

// NoneLoader never has a baseline.
type NoneLoader struct{}

// Load always reports no backing store.
func (NoneLoader) Load(context.Context, string) (*document.Snapshot, error) {
	return nil, nil
}

// DiskLoader reads the document's own file as its last-saved version.
type DiskLoader struct{}

// Load reads path. A missing file means no backing store.
func (DiskLoader) Load(ctx context.Context, path string) (*document.Snapshot, error) {
	return readSnapshot(ctx, path)
}

// FileLoader reads a fixed file as the baseline of every document.
type FileLoader struct {
	Path string
}

// Load reads l.Path regardless of the document path.
func (l FileLoader) Load(ctx context.Context, _ string) (*document.Snapshot, error) {
	return readSnapshot(ctx, l.Path)
}

func readSnapshot(ctx context.Context, path string) (*document.Snapshot, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if errors.Is(err, fsutil.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	return document.NewSnapshot(content), nil
}
