package baseline_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotws/pkg/baseline"
	"github.com/yaklabco/gotws/pkg/config"
	"github.com/yaklabco/gotws/pkg/document"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.BaselineConfig
		want    any
		wantErr bool
	}{
		{name: "default is git", cfg: config.BaselineConfig{}, want: &baseline.GitLoader{}},
		{name: "git", cfg: config.BaselineConfig{Source: config.BaselineGit, Ref: "main"}, want: &baseline.GitLoader{}},
		{name: "disk", cfg: config.BaselineConfig{Source: config.BaselineDisk}, want: baseline.DiskLoader{}},
		{name: "file", cfg: config.BaselineConfig{Source: config.BaselineFile, File: "x"}, want: baseline.FileLoader{}},
		{name: "file without path", cfg: config.BaselineConfig{Source: config.BaselineFile}, wantErr: true},
		{name: "none", cfg: config.BaselineConfig{Source: config.BaselineNone}, want: baseline.NoneLoader{}},
		{name: "unknown", cfg: config.BaselineConfig{Source: "svn"}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			loader, err := baseline.New(testCase.cfg)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, testCase.want, loader)
		})
	}
}

func TestNewGitLoaderDefaultsRef(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "HEAD", baseline.NewGitLoader("").Ref)
	assert.Equal(t, "v1.0.0", baseline.NewGitLoader("v1.0.0").Ref)
}

func TestNoneLoader(t *testing.T) {
	t.Parallel()

	snap, err := baseline.NoneLoader{}.Load(context.Background(), "anything")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestDiskLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a \nb"), 0o600))

	snap, err := baseline.DiskLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, []string{"a ", "b"}, snap.Lines())

	snap, err = baseline.DiskLoader{}.Load(context.Background(), filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Nil(t, snap)

	_, err = baseline.DiskLoader{}.Load(context.Background(), dir)
	require.Error(t, err)
}

func TestFileLoaderIgnoresDocumentPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "saved.txt")
	require.NoError(t, os.WriteFile(path, []byte("saved"), 0o600))

	snap, err := baseline.FileLoader{Path: path}.Load(context.Background(), "other.txt")
	require.NoError(t, err)
	assert.Equal(t, "saved", snap.Text())
}

func TestLoaderFunc(t *testing.T) {
	t.Parallel()

	want := document.FromString("x")
	loader := baseline.LoaderFunc(func(context.Context, string) (*document.Snapshot, error) {
		return want, nil
	})

	got, err := loader.Load(context.Background(), "p")
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestGitLoader(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	runGit := func(args ...string) {
		t.Helper()

		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
			"GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_SYSTEM=/dev/null",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	runGit("init", "-q")

	tracked := filepath.Join(dir, "tracked.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("committed \n"), 0o600))
	runGit("add", "tracked.txt")
	runGit("commit", "-q", "-m", "initial")

	require.NoError(t, os.WriteFile(tracked, []byte("committed \nedited \n"), 0o600))
	untracked := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(untracked, []byte("new\n"), 0o600))

	loader := baseline.NewGitLoader("")
	ctx := context.Background()

	snap, err := loader.Load(ctx, tracked)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "committed \n", snap.Text())

	snap, err = loader.Load(ctx, untracked)
	require.NoError(t, err)
	assert.Nil(t, snap)

	outside := filepath.Join(t.TempDir(), "loose.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	snap, err = loader.Load(ctx, outside)
	require.NoError(t, err)
	assert.Nil(t, snap)

	broken := &baseline.GitLoader{Ref: "HEAD", Git: filepath.Join(dir, "no-such-git")}
	_, err = broken.Load(ctx, tracked)
	require.Error(t, err)
}
