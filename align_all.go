package diffalign

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AlignAll aligns every input in parallel and returns the results sorted by path
func AlignAll(ctx context.Context, inputs []Input, options Options) (_ []FileDiff, err error) {
	defer func() { err = errors.Wrap(err, "diffalign") }()
	options = options.withDefaults()

	diffs := make([]FileDiff, len(inputs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(options.Concurrency)
	for i := range inputs {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			diffs[i] = NewFileDiff(inputs[i], options)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(diffs, func(a, b int) bool {
		return diffs[a].Path() < diffs[b].Path()
	})
	options.Logger.Debug("Aligned files", zap.Int("files", len(diffs)))
	return diffs, nil
}
