package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gotws/pkg/runner"
)

// Exit codes for gotws.
const (
	// ExitSuccess indicates successful execution with nothing to report.
	ExitSuccess = 0

	// ExitWhitespaceFound indicates check found trailing whitespace, or a
	// dry-run trim would modify files.
	ExitWhitespaceFound = 1

	// ExitFileErrors indicates one or more files could not be processed.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrTrailingWhitespaceFound is returned when check reports spans or a
	// dry-run trim would change files. It only signals the exit code.
	ErrTrailingWhitespaceFound = errors.New("trailing whitespace found")

	// ErrFilesFailed is returned when at least one file could not be
	// processed. The failures themselves have already been reported.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrInvalidUsage wraps command-line usage errors.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfigLoad wraps configuration loading and validation errors.
	ErrConfigLoad = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result, mode runner.Mode, dryRun bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitFileErrors
	}

	switch {
	case mode == runner.ModeCheck && result.HasSpans():
		return ExitWhitespaceFound
	case mode == runner.ModeTrim && dryRun && result.Stats.FilesModified > 0:
		return ExitWhitespaceFound
	}

	return ExitSuccess
}

// errorForExitCode returns the signal error matching an exit code.
func errorForExitCode(code int) error {
	switch code {
	case ExitWhitespaceFound:
		return ErrTrailingWhitespaceFound
	case ExitFileErrors:
		return ErrFilesFailed
	default:
		return nil
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrTrailingWhitespaceFound):
		return ExitWhitespaceFound
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit code and has nothing
// left to log.
func IsSignal(err error) bool {
	return errors.Is(err, ErrTrailingWhitespaceFound) || errors.Is(err, ErrFilesFailed)
}
