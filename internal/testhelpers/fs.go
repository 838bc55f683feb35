// Package testhelpers builds in-memory filesystems, git repositories, and loggers for tests
package testhelpers

import (
	"path"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/require"
)

// FSWithFiles returns an FS with the given files contents generated inside it
func FSWithFiles(t *testing.T, files map[string]string) hackpadfs.FS {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	for name, contents := range files {
		require.NoError(t, fs.MkdirAll(path.Dir(name), 0700))
		f, err := hackpadfs.Create(fs, name)
		require.NoError(t, err)
		_, err = hackpadfs.WriteFile(f, []byte(contents))
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	return fs
}
