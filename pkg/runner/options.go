// Package runner drives trailing whitespace sessions over many files.
package runner

import (
	"github.com/yaklabco/gotws/pkg/baseline"
	"github.com/yaklabco/gotws/pkg/config"
	"github.com/yaklabco/gotws/pkg/fsutil"
)

// Mode selects what the runner does with each document.
type Mode int

const (
	// ModeCheck opens each document and reports the highlighted spans.
	ModeCheck Mode = iota

	// ModeTrim saves each document, trimming on will-save.
	ModeTrim
)

// String returns the command name of the mode.
func (m Mode) String() string {
	if m == ModeTrim {
		return "trim"
	}
	return "check"
}

// Options controls multi-file processing.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored processes vendored and generated files too.
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Mode selects check or trim.
	Mode Mode

	// DryRun computes a diff instead of writing trimmed files.
	DryRun bool

	// Backup configures backups taken before a trimmed file is written.
	Backup fsutil.BackupConfig

	// Editor holds the trim and highlight options for every session.
	Editor config.Options

	// CursorLines are 0-based lines treated as selections in every document.
	CursorLines []int

	// Baseline loads the saved version of each document. Nil means none.
	Baseline baseline.Loader
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
