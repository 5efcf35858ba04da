package runner

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/yaklabco/gotws/internal/logging"
	"github.com/yaklabco/gotws/pkg/baseline"
	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/editor"
	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/fsutil"
	"github.com/yaklabco/gotws/pkg/langdetect"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// session is the editor state of one file: a controller subscribed to its
// own bus, decorating into a recorder.
type session struct {
	bus      *editor.Bus
	ctrl     *editor.Controller
	recorder *editor.Recorder
}

func newSession(logger *log.Logger, opts Options, loader baseline.Loader) *session {
	recorder := editor.NewRecorder()
	ctrl := editor.NewController(opts.Editor, loader,
		editor.WithLogger(logger),
		editor.WithDecorator(recorder),
	)

	bus := editor.NewBus()
	ctrl.Subscribe(bus)

	return &session{bus: bus, ctrl: ctrl, recorder: recorder}
}

// processFile reads path, opens it in a fresh session and, in trim mode,
// saves it.
func processFile(ctx context.Context, logger *log.Logger, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	// Vendor patterns are anchored at the project root, not the file system.
	relPath := relativeTo(opts.WorkingDir, path)
	if reason := langdetect.Classify(relPath, content, opts.IncludeVendored); reason != langdetect.SkipNone {
		logger.Debug("skipping file", logging.FieldStatus, string(reason))
		outcome.Skipped = reason
		return outcome
	}

	loader := &onceLoader{loader: opts.Baseline}
	if loader.loader == nil {
		loader.loader = baseline.NoneLoader{}
	}

	doc := document.New(path, content)
	doc.Language = langdetect.Detect(path, content)
	doc.Selections = slices.Clone(opts.CursorLines)

	// The CLI has no edit buffer: the file is dirty when it differs from
	// its saved version, or when there is no saved version at all.
	saved, loadErr := loader.Load(ctx, path)
	doc.Dirty = loadErr != nil || saved == nil || !saved.Equal(doc.Snapshot)

	outcome.Language = doc.Language
	outcome.Dirty = doc.Dirty

	logger.Debug("opened document",
		logging.FieldLanguage, doc.Language,
		logging.FieldLines, doc.Snapshot.LineCount(),
		logging.FieldStatus, dirtyStatus(doc.Dirty),
	)

	sess := newSession(logger, opts, loader)

	if err := sess.bus.Fire(ctx, editor.EventDidOpen, doc); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.HasBaseline = sess.ctrl.Baseline() != nil

	if opts.Mode == ModeCheck {
		outcome.Spans = sess.recorder.Decorations(path)
	} else if err := sess.save(ctx, logger, doc, info, opts, &outcome); err != nil {
		outcome.Error = err
	}

	if len(outcome.Spans) > 0 {
		outcome.Snapshot = doc.Snapshot
	}

	return outcome
}

// save runs will-save, writes the trimmed content and fires did-save.
func (s *session) save(
	ctx context.Context,
	logger *log.Logger,
	doc *document.Document,
	info *fsutil.FileInfo,
	opts Options,
	outcome *FileOutcome,
) error {
	edits, err := s.bus.FireWillSave(ctx, doc)
	if err != nil {
		return err
	}

	if len(edits) == 0 {
		outcome.Remaining = s.recorder.Decorations(doc.Path)
		return nil
	}

	original := doc.Snapshot.Bytes()

	trimmed, err := fix.Apply(original, edits)
	if err != nil {
		return fmt.Errorf("apply trim: %w", err)
	}

	outcome.Spans = editSpans(doc.Snapshot, edits)

	if opts.DryRun {
		outcome.Diff = fix.GenerateDiff(doc.Path, original, trimmed)
		outcome.Remaining = s.recorder.Decorations(doc.Path)
		return nil
	}

	changed, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		return fmt.Errorf("%w: %s", ErrFileChanged, doc.Path)
	}

	created, err := fsutil.CreateBackup(ctx, doc.Path, opts.Backup)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	outcome.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, doc.Path, trimmed, info.Mode); err != nil {
		return fmt.Errorf("write trimmed file: %w", err)
	}
	outcome.Written = true

	logger.Debug("trimmed trailing whitespace", logging.FieldSpans, len(outcome.Spans))

	saved := doc.WithSnapshot(document.NewSnapshot(trimmed))
	saved.Dirty = false

	if err := s.bus.Fire(ctx, editor.EventDidSave, saved); err != nil {
		return err
	}

	outcome.Remaining = s.recorder.Decorations(doc.Path)

	return nil
}

// editSpans maps deletion edits back to the spans they remove.
func editSpans(snap *document.Snapshot, edits []fix.TextEdit) []whitespace.LineSpan {
	spans := lo.FilterMap(edits, func(edit fix.TextEdit, _ int) (whitespace.LineSpan, bool) {
		line, start, ok := snap.Position(edit.StartOffset)
		if !ok {
			return whitespace.LineSpan{}, false
		}
		_, end, ok := snap.Position(edit.EndOffset)
		if !ok {
			return whitespace.LineSpan{}, false
		}
		return whitespace.LineSpan{Line: line, StartColumn: start, EndColumn: end}, true
	})

	slices.SortFunc(spans, func(a, b whitespace.LineSpan) int {
		return a.Line - b.Line
	})

	return spans
}

// onceLoader loads the baseline once and replays the result, so the
// runner's dirty check and the controller's activation see the same
// snapshot without reading the backing store twice.
type onceLoader struct {
	loader baseline.Loader

	once sync.Once
	snap *document.Snapshot
	err  error
}

func (l *onceLoader) Load(ctx context.Context, path string) (*document.Snapshot, error) {
	l.once.Do(func() {
		l.snap, l.err = l.loader.Load(ctx, path)
	})
	return l.snap, l.err
}

func dirtyStatus(dirty bool) string {
	if dirty {
		return "dirty"
	}
	return "saved"
}
