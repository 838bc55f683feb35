// Package vcs reads file changes between two states of a git repository: commits, branches, tags, or the working tree.
package vcs

import (
	"context"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/johnstarich/go/diffalign/internal/pipe"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WorkingTree is the ref for the on-disk, possibly uncommitted, state of the repository
const WorkingTree = "@"

const (
	workingTreeName = "working tree"
	shortHashLen    = 8
)

// Config configures a Repo
type Config struct {
	Logger *zap.Logger
}

// Repo reads changes from a git repository
type Repo struct {
	Config
	repo     *git.Repository
	worktree *git.Worktree // nil for bare repositories
}

// Open finds the repository containing path and opens it
func Open(path string, config Config) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, newError(ErrNotFound, err, "open repository %q", path)
	}
	if err != nil {
		return nil, newError(ErrIO, err, "open repository %q", path)
	}
	return New(repo, config)
}

// New wraps an already opened repository
func New(repo *git.Repository, config Config) (*Repo, error) {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	worktree, err := repo.Worktree()
	if err != nil && !errors.Is(err, git.ErrIsBareRepository) {
		return nil, newError(ErrIO, err, "open working tree")
	}
	return &Repo{
		Config:   config,
		repo:     repo,
		worktree: worktree,
	}, nil
}

// Root returns the working tree's root directory, or an empty string for bare repositories
func (r *Repo) Root() string {
	if r.worktree == nil {
		return ""
	}
	return r.worktree.Filesystem.Root()
}

// Branch returns the current branch name. Returns false for a detached HEAD or a repository without commits.
func (r *Repo) Branch() (string, bool) {
	head, err := r.repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return "", false
	}
	return head.Name().Short(), true
}

// Resolve returns a short commit hash for ref, or "working tree" for WorkingTree
func (r *Repo) Resolve(ref string) (string, error) {
	if ref == WorkingTree {
		return workingTreeName, nil
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", newError(ErrInvalidRef, err, "resolve %q", ref)
	}
	return hash.String()[:shortHashLen], nil
}

// RefKind categorizes a Ref
type RefKind int

const (
	// RefSpecial is a ref like HEAD or the working tree
	RefSpecial RefKind = iota
	// RefBranch is a local branch
	RefBranch
	// RefTag is a tag
	RefTag
)

func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "branch"
	case RefTag:
		return "tag"
	default:
		return "special"
	}
}

// Ref is a name which can be passed to Resolve or Changes
type Ref struct {
	Name string  `json:"name"`
	Kind RefKind `json:"kind"`
}

// Refs returns the special refs, followed by local branches and tags in name order
func (r *Repo) Refs() ([]Ref, error) {
	refs := []Ref{
		{Name: WorkingTree, Kind: RefSpecial},
		{Name: "HEAD", Kind: RefSpecial},
		{Name: "HEAD~1", Kind: RefSpecial},
	}
	var branches, tags []string
	err := pipe.ChainFuncs(
		func(ctx context.Context) error {
			iter, err := r.repo.Branches()
			if err != nil {
				return err
			}
			return iter.ForEach(func(ref *plumbing.Reference) error {
				branches = append(branches, ref.Name().Short())
				return nil
			})
		},
		func(ctx context.Context) error {
			iter, err := r.repo.Tags()
			if err != nil {
				return err
			}
			return iter.ForEach(func(ref *plumbing.Reference) error {
				tags = append(tags, ref.Name().Short())
				return nil
			})
		},
	).Do(context.Background())
	if err != nil {
		return nil, newError(ErrIO, err, "list refs")
	}
	sort.Strings(branches)
	sort.Strings(tags)
	for _, name := range branches {
		refs = append(refs, Ref{Name: name, Kind: RefBranch})
	}
	for _, name := range tags {
		refs = append(refs, Ref{Name: name, Kind: RefTag})
	}
	return refs, nil
}

// tree returns the tree of the commit ref points to
func (r *Repo) tree(ref string) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, newError(ErrInvalidRef, err, "resolve %q", ref)
	}
	commit, err := r.repo.CommitObject(*hash)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		// annotated tags point to a tag object instead of a commit
		tag, tagErr := r.repo.TagObject(*hash)
		if tagErr != nil {
			return nil, newError(ErrInvalidRef, err, "%q is not a commit", ref)
		}
		commit, err = tag.Commit()
	}
	if err != nil {
		return nil, newError(ErrInvalidRef, err, "%q is not a commit", ref)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, newError(ErrIO, err, "read tree for %q", ref)
	}
	return tree, nil
}
