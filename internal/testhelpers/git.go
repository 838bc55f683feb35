package testhelpers

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// Repo is an in-memory git repository with a working tree
type Repo struct {
	t        *testing.T
	Repo     *git.Repository
	Worktree *git.Worktree
	FS       billy.Filesystem
}

// NewRepo initializes an empty in-memory repository
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	return &Repo{
		t:        t,
		Repo:     repo,
		Worktree: worktree,
		FS:       fs,
	}
}

// WriteFiles writes each file's contents into the working tree
func (r *Repo) WriteFiles(files map[string]string) {
	r.t.Helper()
	for name, contents := range files {
		require.NoError(r.t, util.WriteFile(r.FS, name, []byte(contents), 0600))
	}
}

// Remove deletes files from the working tree
func (r *Repo) Remove(names ...string) {
	r.t.Helper()
	for _, name := range names {
		require.NoError(r.t, r.FS.Remove(name))
	}
}

// Commit stages all working tree changes and commits them
func (r *Repo) Commit(message string) plumbing.Hash {
	r.t.Helper()
	status, err := r.Worktree.Status()
	require.NoError(r.t, err)
	for name, fileStatus := range status {
		if fileStatus.Worktree == git.Deleted {
			_, err := r.Worktree.Remove(name)
			require.NoError(r.t, err)
		}
	}
	require.NoError(r.t, r.Worktree.AddWithOptions(&git.AddOptions{All: true}))
	hash, err := r.Worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag
func (r *Repo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

// Branch creates a branch without checking it out
func (r *Repo) Branch(name string, hash plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), hash)
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}
