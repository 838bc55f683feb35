package main

import (
	"io"

	"github.com/johnstarich/go/diffalign"
	"github.com/johnstarich/go/diffalign/internal/patch"
	"github.com/urfave/cli/v2"
)

func (a App) patch(c *cli.Context) error {
	out, err := a.parseOutput(c)
	if err != nil {
		return err
	}
	baseDir, err := a.fromOSPath(c.String("base-dir"))
	if err != nil {
		return err
	}

	var diffFile io.Reader
	if diffFilePath := c.String("diff-file"); diffFilePath == "-" {
		diffFile = a.inReader
	} else {
		diffFilePath, err = a.fromOSPath(diffFilePath)
		if err != nil {
			return err
		}
		f, err := a.fs.Open(diffFilePath)
		if err != nil {
			return err
		}
		defer f.Close()
		diffFile = f
	}

	files, err := patch.Parse(patch.Options{
		FS:      a.fs,
		Diff:    diffFile,
		BaseDir: baseDir,
	})
	if err != nil {
		return err
	}
	return a.writeReport(c, out, diffalign.FromPatch(files))
}
