// Package patch reads unified diffs and reconstructs both sides of each changed file
package patch

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/os"
	"github.com/johnstarich/go/diffalign/internal/hunk"
	"github.com/pkg/errors"
)

// Options contains parse options
type Options struct {
	// FS is the file system to read post-image files from.
	// Defaults to hackpadfs's os.NewFS().
	FS hackpadfs.FS
	// Diff is a reader with patch or diff formatted contents
	Diff io.Reader
	// BaseDir is the FS path to the repo's root directory. Defaults to ".".
	BaseDir string
}

// File is one file changed by a diff
type File struct {
	OldName string // empty if the file was added
	NewName string // empty if the file was deleted
	Before  []byte // nil if the file was added or is binary
	After   []byte // nil if the file was deleted
	Hunks   []hunk.Hunk
	Binary  bool
}

// Parse reads a diff and the post-image of each file it changes, then reconstructs each pre-image by reversing the diff
func Parse(options Options) (files []File, err error) {
	defer func() { err = errors.Wrap(err, "patch") }()
	if options.BaseDir == "" {
		options.BaseDir = "."
	}
	if !hackpadfs.ValidPath(options.BaseDir) {
		return nil, errors.Errorf("invalid diff base directory FS path: %s", options.BaseDir)
	}
	if options.FS == nil {
		options.FS = os.NewFS()
	}
	if options.Diff == nil {
		return nil, errors.New("diff reader must not be nil")
	}

	diffFiles, _, err := gitdiff.Parse(options.Diff)
	if err != nil {
		return nil, err
	}
	files = make([]File, 0, len(diffFiles))
	for _, diffFile := range diffFiles {
		file, err := readFile(options, diffFile)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readFile(options Options, diffFile *gitdiff.File) (File, error) {
	file := File{
		OldName: diffFile.OldName,
		NewName: diffFile.NewName,
		Binary:  diffFile.IsBinary,
	}
	if diffFile.IsNew {
		file.OldName = ""
	}
	if diffFile.IsDelete {
		file.NewName = ""
	}

	if file.NewName != "" {
		after, err := readPostImage(options, file.NewName)
		if err != nil {
			return File{}, err
		}
		file.After = after
	}
	if file.Binary {
		return file, nil
	}
	if file.OldName != "" {
		before, err := reverseApply(file.After, diffFile.TextFragments)
		if err != nil {
			return File{}, errors.Wrapf(err, "reconstruct %s", file.OldName)
		}
		file.Before = before
	}
	file.Hunks = hunk.FromFragments(diffFile.TextFragments)
	return file, nil
}

func readPostImage(options Options, name string) ([]byte, error) {
	f, err := options.FS.Open(path.Join(options.BaseDir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// reverseApply undoes fragments on after, returning the original content.
// Context and added lines must match after exactly.
func reverseApply(after []byte, fragments []*gitdiff.TextFragment) ([]byte, error) {
	afterLines := splitLines(string(after))
	var before strings.Builder
	next := 0
	for _, fragment := range fragments {
		start := int(fragment.NewPosition) - 1
		if fragment.NewLines == 0 {
			start = int(fragment.NewPosition)
		}
		if start < next || start > len(afterLines) {
			return nil, errors.Errorf("fragment %s does not fit the file's %d lines", fragmentHeader(fragment), len(afterLines))
		}
		for _, line := range afterLines[next:start] {
			before.WriteString(line)
		}

		pos := start
		for _, line := range fragment.Lines {
			switch line.Op {
			case gitdiff.OpDelete:
				before.WriteString(line.Line)
				continue
			case gitdiff.OpContext:
				before.WriteString(line.Line)
			}
			if pos >= len(afterLines) || afterLines[pos] != line.Line {
				return nil, errors.Errorf("fragment %s does not match line %d", fragmentHeader(fragment), pos+1)
			}
			pos++
		}
		next = pos
	}
	for _, line := range afterLines[next:] {
		before.WriteString(line)
	}
	return []byte(before.String()), nil
}

// splitLines splits s after each newline
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func fragmentHeader(fragment *gitdiff.TextFragment) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", fragment.OldPosition, fragment.OldLines, fragment.NewPosition, fragment.NewLines)
}
