package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/commitwit/internal/git"
)

// cliRepo is an on-disk repository the commands under test open instead of
// the working directory.
type cliRepo struct {
	dir    string
	repo   *gogit.Repository
	wt     *gogit.Worktree
	clock  time.Time
	hashes []plumbing.Hash
}

// setupCLIRepo creates a repository in a temp dir, points openRepository at
// it and isolates user configuration.
func setupCLIRepo(t *testing.T) *cliRepo {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	orig := openRepository
	openRepository = func() (*git.Repository, error) { return git.Open(dir) }
	t.Cleanup(func() { openRepository = orig })

	origConfig := configFlag
	configFlag = ""
	t.Cleanup(func() { configFlag = origConfig })

	return &cliRepo{
		dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *cliRepo) commit(t *testing.T, messages ...string) {
	t.Helper()
	for _, msg := range messages {
		r.clock = r.clock.Add(time.Minute)
		require.NoError(t, os.WriteFile(filepath.Join(r.dir, "CHANGES"), []byte(msg), 0o644))
		_, err := r.wt.Add("CHANGES")
		require.NoError(t, err)

		sig := &object.Signature{Name: "Dev", Email: "dev@example.com", When: r.clock}
		hash, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
		r.hashes = append(r.hashes, hash)
	}
}

func (r *cliRepo) tag(t *testing.T, name string, idx int) {
	t.Helper()
	_, err := r.repo.CreateTag(name, r.hashes[idx], nil)
	require.NoError(t, err)
}

func (r *cliRepo) short(idx int) string {
	return r.hashes[idx].String()[:7]
}

func (r *cliRepo) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(r.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newTestCmd returns a command whose output goes to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}
