package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/johnstarich/go/diffalign/internal/vcs"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func (a App) refs(c *cli.Context) error {
	logger := a.logger(c)
	repo, err := a.openRepo(c.String("repo"), vcs.Config{Logger: logger})
	if err != nil {
		return err
	}
	refs, err := repo.Refs()
	if err != nil {
		return err
	}
	branch, hasBranch := repo.Branch()

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Ref", "Kind", "Commit"})
	for _, ref := range refs {
		commit, err := repo.Resolve(ref.Name)
		if err != nil {
			logger.Debug("Skipping unresolvable ref", zap.String("ref", ref.Name), zap.Error(err))
			commit = "-"
		}
		name := ref.Name
		if hasBranch && ref.Kind == vcs.RefBranch && ref.Name == branch {
			name += " *"
		}
		tbl.AppendRow(table.Row{name, ref.Kind, commit})
	}
	_, err = a.outWriter.Write([]byte(tbl.Render() + "\n"))
	return errors.WithStack(err)
}
