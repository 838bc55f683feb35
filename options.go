package diffalign

import (
	"runtime"

	"go.uber.org/zap"
)

// Options configures alignment. Zero values use defaults.
type Options struct {
	Logger *zap.Logger
	// Concurrency is the max number of files aligned at once. Defaults to GOMAXPROCS.
	Concurrency int
	// MaxMatchLines limits content matching to files with at most this many lines on either side.
	// Larger files are marked entirely changed. Zero means no limit.
	MaxMatchLines int
	Strategy      Strategy
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
