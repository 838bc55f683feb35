// Package fspath converts between OS paths and slash-separated FS paths
package fspath

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/hack-pad/hackpadfs/os"
	"github.com/pkg/errors"
)

const separator = "/"

// OSPathFS converts OS paths to FS paths, like hackpadfs's os.FS
type OSPathFS interface {
	FromOSPath(path string) (string, error)
}

var _ OSPathFS = &os.FS{}

// FromOS returns the FS path for OS path 'p', made absolute from the working directory
func FromOS(fs OSPathFS, p string) (string, error) {
	p, err := filepath.Abs(p)
	if err != nil {
		return "", errors.WithStack(err)
	}
	fsPath, err := fs.FromOSPath(p)
	return fsPath, errors.WithStack(err)
}

// CommonBase returns the common base path between a and b.
// Returns "." if there are no common path elements.
func CommonBase(a, b string) string {
	aElems := strings.Split(path.Clean(a), separator)
	bElems := strings.Split(path.Clean(b), separator)
	i := 0
	for ; i < len(aElems) && i < len(bElems); i++ {
		if aElems[i] != bElems[i] {
			break
		}
	}
	if i == 1 && aElems[0] == "" {
		return separator
	}
	return path.Clean(strings.Join(aElems[:i], separator))
}

// Rel returns the relative FS path from basePath to targetPath.
// Similar to filepath.Rel without including OS-dependent behavior.
func Rel(basePath, targetPath string) (string, error) {
	basePath = path.Clean(basePath)
	targetPath = path.Clean(targetPath)
	if path.IsAbs(basePath) != path.IsAbs(targetPath) {
		return "", errors.Errorf("could not make relative path between %q and %q", basePath, targetPath)
	}

	common := CommonBase(basePath, targetPath)
	base := trimBase(basePath, common)
	target := trimBase(targetPath, common)
	switch {
	case base == "" && target == "":
		return ".", nil
	case base == "":
		return target, nil
	default:
		p := strings.Repeat("../", strings.Count(base, separator)+1)
		return path.Join(p, target), nil
	}
}

func trimBase(p, base string) string {
	switch {
	case p == base:
		return ""
	case base == ".":
		return p
	case strings.HasSuffix(base, separator):
		return strings.TrimPrefix(p, base)
	default:
		return strings.TrimPrefix(p, base+separator)
	}
}
