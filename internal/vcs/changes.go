package vcs

import (
	"bytes"
	"context"
	"io"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/johnstarich/go/diffalign/internal/binary"
	"github.com/johnstarich/go/diffalign/internal/hunk"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// Change is a file which differs between two refs
type Change struct {
	BeforePath string      // empty if the file was added
	AfterPath  string      // empty if the file was deleted
	Before     []byte      // nil if the file was added
	After      []byte      // nil if the file was deleted
	Hunks      []hunk.Hunk // empty for binary files
	Binary     bool
}

// Path returns the file's current path, or its old path if it was deleted
func (c Change) Path() string {
	if c.AfterPath != "" {
		return c.AfterPath
	}
	return c.BeforePath
}

// Changes returns the files which differ from the 'before' ref to the 'after' ref, sorted by path.
// 'after' may be WorkingTree to include uncommitted and untracked files.
func (r *Repo) Changes(ctx context.Context, before, after string) ([]Change, error) {
	if before == WorkingTree {
		return nil, newError(ErrInvalidRef, nil, "compare from %q, the working tree must be the after ref", before)
	}
	beforeTree, err := r.tree(before)
	if err != nil {
		return nil, err
	}
	var changes []Change
	if after == WorkingTree {
		changes, err = r.workingTreeChanges(ctx, beforeTree)
	} else {
		var afterTree *object.Tree
		afterTree, err = r.tree(after)
		if err == nil {
			changes, err = r.treeChanges(ctx, beforeTree, afterTree)
		}
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(changes, func(a, b int) bool {
		return changes[a].Path() < changes[b].Path()
	})
	r.Logger.Debug("Found changes", zap.String("before", before), zap.String("after", after), zap.Int("files", len(changes)))
	return changes, nil
}

func (r *Repo) treeChanges(ctx context.Context, from, to *object.Tree) ([]Change, error) {
	treeChanges, err := object.DiffTreeWithOptions(ctx, from, to, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, ctxErr(ctx, newError(ErrIO, err, "compare trees"))
	}
	changes := make([]Change, 0, len(treeChanges))
	for _, treeChange := range treeChanges {
		change, ok, err := r.treeChange(ctx, treeChange)
		if err != nil {
			return nil, err
		}
		if ok {
			changes = append(changes, change)
		}
	}
	return changes, nil
}

func (r *Repo) treeChange(ctx context.Context, treeChange *object.Change) (Change, bool, error) {
	fromFile, toFile, err := treeChange.Files()
	if err != nil {
		return Change{}, false, newError(ErrIO, err, "read %s", treeChange)
	}
	if fromFile == nil && toFile == nil {
		r.Logger.Debug("Skipping diff entry with no loadable files",
			zap.String("before", treeChange.From.Name),
			zap.String("after", treeChange.To.Name))
		return Change{}, false, nil
	}

	var change Change
	if fromFile != nil {
		change.BeforePath = treeChange.From.Name
		change.Before, err = readBlob(fromFile)
	}
	if err == nil && toFile != nil {
		change.AfterPath = treeChange.To.Name
		change.After, err = readBlob(toFile)
	}
	if err != nil {
		return Change{}, false, err
	}
	change.Binary = binary.IsBinary(change.Before) || binary.IsBinary(change.After)
	if change.Binary {
		return change, true, nil
	}

	patch, err := treeChange.PatchContext(ctx)
	if err != nil {
		return Change{}, false, ctxErr(ctx, newError(ErrIO, err, "compute patch for %s", change.Path()))
	}
	change.Hunks = patchHunks(patch)
	return change, true, nil
}

func (r *Repo) workingTreeChanges(ctx context.Context, beforeTree *object.Tree) ([]Change, error) {
	if r.worktree == nil {
		return nil, newError(ErrNotFound, git.ErrIsBareRepository, "read working tree")
	}
	paths, err := r.workingTreePaths(ctx, beforeTree)
	if err != nil {
		return nil, err
	}

	afterPaths := make([]string, 0, len(paths))
	for afterPath := range paths {
		afterPaths = append(afterPaths, afterPath)
	}
	sort.Strings(afterPaths)

	var changes []Change
	for _, afterPath := range afterPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		beforePath := paths[afterPath]
		change := Change{BeforePath: beforePath, AfterPath: afterPath}
		change.Before, err = readTreeFile(beforeTree, beforePath)
		if err == nil {
			change.After, err = r.readWorkingFile(afterPath)
		}
		if err != nil {
			return nil, err
		}
		switch {
		case change.Before == nil && change.After == nil:
			r.Logger.Debug("Skipping diff entry with no loadable files", zap.String("path", afterPath))
			continue
		case change.Before != nil && change.After != nil && bytes.Equal(change.Before, change.After):
			continue
		case change.Before == nil:
			change.BeforePath = ""
		case change.After == nil:
			change.AfterPath = ""
		}
		change.Binary = binary.IsBinary(change.Before) || binary.IsBinary(change.After)
		if !change.Binary {
			change.Hunks = LineHunks(change.Before, change.After)
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// workingTreePaths returns candidate changed paths in the working tree, mapped to their path in beforeTree.
// Includes files committed since beforeTree, staged, modified, and untracked files.
func (r *Repo) workingTreePaths(ctx context.Context, beforeTree *object.Tree) (map[string]string, error) {
	paths := make(map[string]string)
	headTree, err := r.headTree()
	if err != nil {
		return nil, err
	}
	committed, err := object.DiffTreeWithOptions(ctx, beforeTree, headTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, ctxErr(ctx, newError(ErrIO, err, "compare tree to HEAD"))
	}
	for _, change := range committed {
		switch {
		case change.To.Name == "":
			paths[change.From.Name] = change.From.Name
		case change.From.Name == "":
			paths[change.To.Name] = change.To.Name
		default:
			paths[change.To.Name] = change.From.Name
		}
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, newError(ErrIO, err, "read working tree status")
	}
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		if _, exists := paths[path]; !exists {
			paths[path] = path
		}
	}
	return paths, nil
}

// headTree returns HEAD's tree, or nil if there are no commits yet
func (r *Repo) headTree() (*object.Tree, error) {
	_, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, newError(ErrIO, err, "read HEAD")
	}
	return r.tree("HEAD")
}

func (r *Repo) readWorkingFile(path string) ([]byte, error) {
	fs := r.worktree.Filesystem
	info, err := fs.Lstat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, newError(ErrIO, err, "stat %q", path)
	}
	switch {
	case info.IsDir():
		return nil, nil
	case info.Mode()&os.ModeSymlink != 0:
		// git stores a symlink's target as its content
		target, err := fs.Readlink(path)
		if err != nil {
			return nil, newError(ErrIO, err, "read link %q", path)
		}
		return []byte(target), nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, newError(ErrIO, err, "open %q", path)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, newError(ErrIO, err, "read %q", path)
	}
	return content, nil
}

// readTreeFile returns the content of a regular file or symlink in tree, or nil if there is none
func readTreeFile(tree *object.Tree, path string) ([]byte, error) {
	if tree == nil || path == "" {
		return nil, nil
	}
	entry, err := tree.FindEntry(path)
	if errors.Is(err, object.ErrEntryNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, newError(ErrIO, err, "find %q", path)
	}
	if !entry.Mode.IsFile() {
		return nil, nil
	}
	file, err := tree.TreeEntryFile(entry)
	if err != nil {
		return nil, newError(ErrIO, err, "find %q", path)
	}
	return readBlob(file)
}

func readBlob(file *object.File) ([]byte, error) {
	reader, err := file.Reader()
	if err != nil {
		return nil, newError(ErrIO, err, "open %q", file.Name)
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, newError(ErrIO, err, "read %q", file.Name)
	}
	return content, nil
}

// patchHunks folds a patch's chunks into Hunks
func patchHunks(patch *object.Patch) []hunk.Hunk {
	var builder hunk.Builder
	for _, filePatch := range patch.FilePatches() {
		for _, chunk := range filePatch.Chunks() {
			lines := hunk.LineCount(chunk.Content())
			switch chunk.Type() {
			case fdiff.Equal:
				builder.Equal(lines)
			case fdiff.Add:
				builder.Insert(lines)
			case fdiff.Delete:
				builder.Delete(lines)
			}
		}
	}
	return builder.Hunks()
}

// LineHunks computes a line diff between before and after and folds it into Hunks
func LineHunks(before, after []byte) []hunk.Hunk {
	var builder hunk.Builder
	for _, d := range diff.Do(string(before), string(after)) {
		lines := hunk.LineCount(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			builder.Equal(lines)
		case diffmatchpatch.DiffInsert:
			builder.Insert(lines)
		case diffmatchpatch.DiffDelete:
			builder.Delete(lines)
		}
	}
	return builder.Hunks()
}

// ctxErr returns the context's error if it ended, err otherwise
func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
