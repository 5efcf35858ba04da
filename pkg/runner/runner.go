package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gotws/internal/logging"
)

// ErrFileChanged indicates a file changed on disk between read and write,
// so the trim was not written.
var ErrFileChanged = errors.New("file modified during processing")

// Runner orchestrates editor sessions over many files.
type Runner struct {
	logger *log.Logger
}

// New creates a Runner. A nil logger is taken from the run's context.
func New(logger *log.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Each file gets its own editor session, confined to one worker. Outcomes
// are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldMode, opts.Mode.String(),
	)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, logger, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect by path first.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithSpans, result.Stats.FilesWithSpans,
		logging.FieldSpansTotal, result.Stats.SpansTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
	)

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	logger *log.Logger,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := processFile(ctx, logger.With(logging.FieldPath, path), path, opts)
		if outcome.Error != nil {
			logger.Error("failed to process file", logging.FieldPath, path, logging.FieldError, outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
