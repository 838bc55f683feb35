package main

import (
	"io"

	"github.com/hack-pad/hackpadfs"
	"github.com/johnstarich/go/diffalign"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func (a App) files(c *cli.Context) error {
	const expectedArgs = 2
	if c.NArg() != expectedArgs {
		return errors.Errorf("expected 2 file paths, found %d", c.NArg())
	}
	out, err := a.parseOutput(c)
	if err != nil {
		return err
	}
	beforePath, afterPath := c.Args().Get(0), c.Args().Get(1)
	before, err := a.readOptionalFile(beforePath)
	if err != nil {
		return err
	}
	after, err := a.readOptionalFile(afterPath)
	if err != nil {
		return err
	}
	if before == nil && after == nil {
		return errors.Errorf("neither %s nor %s exist", beforePath, afterPath)
	}

	input := diffalign.Input{
		Before: before,
		After:  after,
	}
	if before != nil {
		input.BeforePath = beforePath
	}
	if after != nil {
		input.AfterPath = afterPath
	}
	return a.writeReport(c, out, []diffalign.Input{input})
}

// readOptionalFile returns the file's contents, or nil if it does not exist
func (a App) readOptionalFile(osPath string) ([]byte, error) {
	fsPath, err := a.fromOSPath(osPath)
	if err != nil {
		return nil, err
	}
	f, err := a.fs.Open(fsPath)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if content == nil {
		content = []byte{}
	}
	return content, errors.WithStack(err)
}
