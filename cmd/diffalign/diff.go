package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/johnstarich/go/diffalign"
	"github.com/johnstarich/go/diffalign/internal/fspath"
	"github.com/johnstarich/go/diffalign/internal/report"
	"github.com/johnstarich/go/diffalign/internal/vcs"
	"github.com/johnstarich/go/diffalign/internal/watch"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func (a App) diff(c *cli.Context) error {
	out, err := a.parseOutput(c)
	if err != nil {
		return err
	}
	logger := out.options.Logger
	repo, err := a.openRepo(c.String("repo"), vcs.Config{Logger: logger})
	if err != nil {
		return err
	}
	before, after := c.String("before"), c.String("after")
	filters := c.Args().Slice()
	diffOnce := func(ctx context.Context) error {
		changes, err := repo.Changes(ctx, before, after)
		if err != nil {
			return err
		}
		changes, err = filterChanges(changes, filters)
		if err != nil {
			return err
		}
		diffs, err := diffalign.AlignAll(ctx, diffalign.FromChanges(changes), out.options)
		if err != nil {
			return err
		}
		return a.writeDiffs(diffs, out)
	}

	if !c.Bool("watch") {
		return diffOnce(c.Context)
	}
	if after != vcs.WorkingTree {
		return errors.Errorf("--watch requires --after %s, found %q", vcs.WorkingTree, after)
	}
	root := repo.Root()
	if root == "" {
		return errors.New("--watch requires a repository with a working tree")
	}
	return watch.Watch(c.Context, root, watch.Config{
		Logger: logger,
		OnSlow: func(duration time.Duration) {
			fmt.Fprintf(a.errWriter, "Diffs are slow to compute (%s), refreshing less often.\n", duration.Round(time.Millisecond))
		},
	}, func(ctx context.Context) error {
		fmt.Fprintf(a.outWriter, "%s %s..%s\n", strings.Repeat("─", 3), before, after)
		return diffOnce(ctx)
	})
}

// filterChanges returns the changes whose before or after paths are inside any of the slash-separated filter paths.
// Returns all changes if there are no filters.
func filterChanges(changes []vcs.Change, filters []string) ([]vcs.Change, error) {
	if len(filters) == 0 {
		return changes, nil
	}
	var filtered []vcs.Change
	for _, change := range changes {
		match, err := matchesAny(filters, change.BeforePath, change.AfterPath)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, change)
		}
	}
	return filtered, nil
}

func matchesAny(filters []string, paths ...string) (bool, error) {
	for _, filter := range filters {
		for _, p := range paths {
			if p == "" {
				continue
			}
			rel, err := fspath.Rel(filter, p)
			if err != nil {
				return false, err
			}
			if rel != ".." && !strings.HasPrefix(rel, "../") {
				return true, nil
			}
		}
	}
	return false, nil
}

func (a App) writeDiffs(diffs []diffalign.FileDiff, out output) error {
	out.options.Logger.Debug("Writing report", zap.Stringer("format", out.report.Format), zap.Int("files", len(diffs)))
	return report.Write(a.outWriter, diffs, out.report)
}
