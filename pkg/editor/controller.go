// Package editor drives trailing-whitespace handling for open documents: it
// owns the configuration and the last-saved baseline of a document and
// reacts to host events by highlighting or trimming whitespace.
package editor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/yaklabco/gotws/internal/logging"
	"github.com/yaklabco/gotws/pkg/baseline"
	"github.com/yaklabco/gotws/pkg/changes"
	"github.com/yaklabco/gotws/pkg/config"
	"github.com/yaklabco/gotws/pkg/document"
	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/langdetect"
	"github.com/yaklabco/gotws/pkg/markdown"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

// Controller reacts to events for one document at a time. Events must be
// delivered sequentially; a Controller is not safe for concurrent use.
type Controller struct {
	opts      config.Options
	loader    baseline.Loader
	decorator Decorator
	markdown  *markdown.Analyzer
	classify  LineClassifier

	logger    *log.Logger
	baseLevel log.Level

	// baseline is the last-saved snapshot of the active document; nil when
	// none is available.
	baseline *document.Snapshot
	active   *document.Document
}

// Option configures a Controller.
type Option func(*Controller)

// LineClassifier returns the lines of current that differ from baseline,
// minus excluded. changes.ChangedLines is the default.
type LineClassifier func(baseline, current *document.Snapshot, excluded changes.LineSet) ([]int, error)

// WithLogger sets the logger. The controller logs through a child logger so
// that the debugLog switch does not change the level of logger itself.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger.With()
			c.baseLevel = logger.GetLevel()
		}
	}
}

// WithDecorator sets the sink that receives highlight sets.
func WithDecorator(decorator Decorator) Option {
	return func(c *Controller) {
		if decorator != nil {
			c.decorator = decorator
		}
	}
}

// WithMarkdownAnalyzer sets the analyzer used to preserve hard line breaks.
func WithMarkdownAnalyzer(analyzer *markdown.Analyzer) Option {
	return func(c *Controller) {
		if analyzer != nil {
			c.markdown = analyzer
		}
	}
}

// WithLineClassifier replaces the line diff used for changed-lines mode.
func WithLineClassifier(classify LineClassifier) Option {
	return func(c *Controller) {
		if classify != nil {
			c.classify = classify
		}
	}
}

// NewController creates a controller with the given options and baseline
// loader. A nil loader means no baseline is ever available.
func NewController(opts config.Options, loader baseline.Loader, options ...Option) *Controller {
	if loader == nil {
		loader = baseline.NoneLoader{}
	}

	defaultLogger := logging.Default()

	ctrl := &Controller{
		opts:      opts,
		loader:    loader,
		decorator: nopDecorator{},
		classify:  changes.ChangedLines,
		logger:    defaultLogger.With(),
		baseLevel: defaultLogger.GetLevel(),
	}

	for _, opt := range options {
		opt(ctrl)
	}

	if ctrl.markdown == nil && opts.PreserveMarkdownHardBreaks {
		ctrl.markdown = markdown.NewAnalyzer()
	}

	ctrl.applyLogLevel()

	return ctrl
}

// Options returns the current configuration.
func (c *Controller) Options() config.Options {
	return c.opts
}

// Baseline returns the current baseline snapshot, or nil when absent.
func (c *Controller) Baseline() *document.Snapshot {
	return c.baseline
}

// Subscribe registers every handler of c with src.
func (c *Controller) Subscribe(src EventSource) {
	src.SubscribeDocument(EventDidOpen, c.OnDidOpenDocument)
	src.SubscribeDocument(EventDidChangeActive, c.OnDidChangeActiveDocument)
	src.SubscribeDocument(EventDidChangeContent, c.OnDidChangeContent)
	src.SubscribeDocument(EventDidChangeSelection, c.OnDidChangeSelection)
	src.SubscribeDocument(EventDidSave, c.OnDidSaveDocument)
	src.SubscribeWillSave(c.OnWillSaveDocument)
	src.SubscribeConfiguration(c.OnDidChangeConfiguration)
}

// OnDidOpenDocument loads the baseline of a newly opened document and
// refreshes its highlights.
func (c *Controller) OnDidOpenDocument(ctx context.Context, doc *document.Document) error {
	return c.activate(ctx, doc)
}

// OnDidChangeActiveDocument loads the baseline of the document that became
// active and refreshes its highlights.
func (c *Controller) OnDidChangeActiveDocument(ctx context.Context, doc *document.Document) error {
	return c.activate(ctx, doc)
}

// OnDidChangeContent refreshes highlights after an edit. The baseline is not
// reloaded.
func (c *Controller) OnDidChangeContent(ctx context.Context, doc *document.Document) error {
	c.active = doc
	_, err := c.Highlight(ctx, doc)
	return err
}

// OnDidChangeSelection refreshes highlights after the cursors move, since
// lines under a cursor may be excluded.
func (c *Controller) OnDidChangeSelection(ctx context.Context, doc *document.Document) error {
	c.active = doc
	_, err := c.Highlight(ctx, doc)
	return err
}

// OnWillSaveDocument returns the trim edits to commit before the document is
// written. It returns nothing when trimOnSave is off.
func (c *Controller) OnWillSaveDocument(ctx context.Context, doc *document.Document) ([]fix.TextEdit, error) {
	if !c.opts.TrimOnSave {
		return nil, nil
	}

	result, err := c.Trim(ctx, doc)
	if err != nil {
		return nil, err
	}

	return result.Edits, nil
}

// OnDidSaveDocument makes the saved text the new baseline and refreshes
// highlights.
func (c *Controller) OnDidSaveDocument(ctx context.Context, doc *document.Document) error {
	c.active = doc
	c.baseline = doc.Snapshot

	_, err := c.Highlight(ctx, doc)
	return err
}

// OnDidChangeConfiguration replaces the configuration and refreshes the
// highlights of the active document, if any.
func (c *Controller) OnDidChangeConfiguration(ctx context.Context, opts config.Options) error {
	c.opts = opts
	c.applyLogLevel()

	if opts.PreserveMarkdownHardBreaks && c.markdown == nil {
		c.markdown = markdown.NewAnalyzer()
	}

	if c.active == nil {
		return nil
	}

	_, err := c.Highlight(ctx, c.active)
	return err
}

func (c *Controller) activate(ctx context.Context, doc *document.Document) error {
	c.active = doc
	c.refreshBaseline(ctx, doc)

	_, err := c.Highlight(ctx, doc)
	return err
}

// refreshBaseline replaces the baseline with the document's backing store
// content. Read failures are logged and leave the baseline absent.
func (c *Controller) refreshBaseline(ctx context.Context, doc *document.Document) {
	c.baseline = nil

	if doc.Untitled {
		c.logger.Debug("document is untitled, no original on disk yet")
		return
	}

	c.logger.Debug("loading document baseline", logging.FieldPath, doc.Path)

	snap, err := c.loader.Load(ctx, doc.Path)
	if err != nil {
		c.logger.Error("failed to load baseline", logging.FieldPath, doc.Path, logging.FieldError, err)
		return
	}

	if snap == nil {
		c.logger.Debug("document has no saved version", logging.FieldPath, doc.Path)
		return
	}

	c.baseline = snap
}

func (c *Controller) applyLogLevel() {
	if c.opts.DebugLog {
		c.logger.SetLevel(log.DebugLevel)
		return
	}

	c.logger.SetLevel(c.baseLevel)
}

// Highlight computes the trailing-whitespace spans to show for doc and hands
// them to the decorator, replacing the previous set. With highlighting
// disabled the set is cleared.
func (c *Controller) Highlight(ctx context.Context, doc *document.Document) ([]whitespace.LineSpan, error) {
	if !c.opts.HighlightTrailingWhiteSpace {
		c.decorator.SetDecorations(doc, nil)
		return nil, nil
	}

	var spans []whitespace.LineSpan

	if c.opts.HighlightOnlyChangedLines {
		lines, _, err := c.changedTargets(ctx, doc)
		if err != nil {
			c.decorator.SetDecorations(doc, nil)
			return nil, err
		}

		spans = whitespace.ScanLines(doc.Snapshot, lines)
	} else {
		preserved, err := c.preservedLines(ctx, doc)
		if err != nil {
			c.decorator.SetDecorations(doc, nil)
			return nil, err
		}

		spans = scanExcept(doc.Snapshot, preserved)
	}

	c.logSpans(spans)
	c.decorator.SetDecorations(doc, spans)

	return spans, nil
}

// Trim computes the deletions that remove trailing whitespace from doc. It
// does not modify the document; the host applies the returned edits.
func (c *Controller) Trim(ctx context.Context, doc *document.Document) (TrimResult, error) {
	var (
		result TrimResult
		err    error
	)

	if c.opts.TrimOnlyChangedLines {
		var targets []int

		targets, result.Status, err = c.changedTargets(ctx, doc)
		if err != nil {
			return TrimResult{}, err
		}
		if result.Status != StatusClean {
			return result, nil
		}

		result.Spans = whitespace.ScanLines(doc.Snapshot, targets)
	} else {
		excluded, exclErr := c.excludedLines(ctx, doc)
		if exclErr != nil {
			return TrimResult{}, exclErr
		}

		result.Spans = scanExcept(doc.Snapshot, excluded)
	}

	c.logSpans(result.Spans)

	if len(result.Spans) == 0 {
		return result, nil
	}

	result.Edits, err = fix.DeletionsForSpans(doc.Snapshot, result.Spans)
	if err != nil {
		return TrimResult{}, fmt.Errorf("trim %s: %w", doc.Path, err)
	}

	result.Status = StatusTrimmed

	return result, nil
}

// changedTargets returns the changed lines of doc minus excluded lines. The
// status reports why no lines were produced when the document is clean or
// has no baseline.
func (c *Controller) changedTargets(ctx context.Context, doc *document.Document) ([]int, TrimStatus, error) {
	if !doc.Dirty {
		c.logger.Debug("document has no unsaved changes", logging.FieldPath, doc.Path)
		return nil, StatusNoUnsavedChanges, nil
	}

	if c.baseline == nil {
		return nil, StatusNoBaseline, nil
	}

	excluded, err := c.excludedLines(ctx, doc)
	if err != nil {
		return nil, StatusClean, err
	}

	lines, err := c.classify(c.baseline, doc.Snapshot, excluded)
	if err != nil {
		c.logger.Error("line diff does not match document",
			logging.FieldPath, doc.Path,
			logging.FieldBaselineLineCount, c.baseline.LineCount(),
			logging.FieldDocumentLineCount, doc.Snapshot.LineCount(),
		)
		return nil, StatusClean, fmt.Errorf("classify %s: %w", doc.Path, err)
	}

	for _, line := range lines {
		c.logger.Debug("found changed line", logging.FieldLine, line)
	}

	return lines, StatusClean, nil
}

// scanExcept scans every line of snap that is not in excluded.
func scanExcept(snap *document.Snapshot, excluded changes.LineSet) []whitespace.LineSpan {
	if len(excluded) == 0 {
		return whitespace.ScanSource(snap)
	}

	return whitespace.ScanLines(snap, changes.AllLines(snap, excluded))
}

// excludedLines returns the lines trimming must leave alone: cursor lines
// unless trimLinesUserIsOn, plus preserved Markdown hard breaks.
func (c *Controller) excludedLines(ctx context.Context, doc *document.Document) (changes.LineSet, error) {
	excluded, err := c.preservedLines(ctx, doc)
	if err != nil {
		return nil, err
	}

	if c.opts.TrimLinesUserIsOn {
		return excluded, nil
	}

	return excluded.Union(changes.NewLineSet(doc.SelectionLines()...)), nil
}

// preservedLines returns Markdown hard-break lines when they are preserved.
func (c *Controller) preservedLines(ctx context.Context, doc *document.Document) (changes.LineSet, error) {
	if !c.opts.PreserveMarkdownHardBreaks || !langdetect.IsMarkdown(doc.Language) {
		return changes.LineSet{}, nil
	}

	lines, err := c.markdown.HardBreakLines(ctx, doc.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("find hard breaks in %s: %w", doc.Path, err)
	}

	return changes.NewLineSet(lines...), nil
}

func (c *Controller) logSpans(spans []whitespace.LineSpan) {
	if c.logger.GetLevel() > log.DebugLevel {
		return
	}

	lo.ForEach(spans, func(span whitespace.LineSpan, _ int) {
		c.logger.Debug("whitespace found", "span", span.String())
	})
}
