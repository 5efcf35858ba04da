package baseline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gotws/pkg/document"
)

// DefaultRef is the revision used when none is configured.
const DefaultRef = "HEAD"

// untrackedMarkers are git messages meaning the path has no version at the
// revision, which is the same as having no backing store.
var untrackedMarkers = []string{
	"does not exist in",
	"exists on disk, but not in",
	"not a git repository",
	"invalid object name",
	"bad revision",
}

// GitLoader reads a document's content at a git revision.
type GitLoader struct {
	// Ref is the revision to read, e.g. HEAD or main.
	Ref string

	// Git is the git executable. Empty means "git" from PATH.
	Git string
}

// NewGitLoader returns a loader for ref, defaulting to HEAD.
func NewGitLoader(ref string) *GitLoader {
	if ref == "" {
		ref = DefaultRef
	}

	return &GitLoader{Ref: ref}
}

// Load runs `git show REF:./NAME` from the document's directory.
func (l *GitLoader) Load(ctx context.Context, path string) (*document.Snapshot, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	git := l.Git
	if git == "" {
		git = "git"
	}

	spec := l.Ref + ":./" + filepath.Base(abs)

	//nolint:gosec // Arguments are a revision spec and a directory, not shell input.
	cmd := exec.CommandContext(ctx, git, "-C", filepath.Dir(abs), "show", spec)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return document.NewSnapshot(stdout.Bytes()), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && isUntracked(stderr.String()) {
		return nil, nil
	}

	return nil, fmt.Errorf("load baseline: git show %s: %w: %s", spec, err, strings.TrimSpace(stderr.String()))
}

func isUntracked(stderr string) bool {
	for _, marker := range untrackedMarkers {
		if strings.Contains(stderr, marker) {
			return true
		}
	}

	return false
}
