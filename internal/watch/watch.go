// Package watch re-runs an operation whenever files in a git repository change
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config configures Watch. Zero values use defaults.
type Config struct {
	Logger *zap.Logger
	// Debounce is the quiet period after a change before running. Defaults to 1 second.
	Debounce time.Duration
	// MinInterval is the minimum time between runs. Defaults to 1 second.
	MinInterval time.Duration
	// SlowThreshold is the run duration considered slow. Defaults to 1 second.
	SlowThreshold time.Duration
	// OnSlow is called the first time a run takes longer than SlowThreshold
	OnSlow func(time.Duration)
}

const defaultInterval = time.Second

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Debounce <= 0 {
		c.Debounce = defaultInterval
	}
	if c.MinInterval <= 0 {
		c.MinInterval = defaultInterval
	}
	if c.SlowThreshold <= 0 {
		c.SlowThreshold = defaultInterval
	}
	if c.OnSlow == nil {
		c.OnSlow = func(time.Duration) {}
	}
	return c
}

// Watch runs 'do' right away, then again after relevant files under root change, until ctx is canceled.
// Errors from 'do' are logged and do not stop watching.
func Watch(ctx context.Context, root string, config Config, do func(context.Context) error) error {
	config = config.withDefaults()
	root, err := filepath.Abs(root)
	if err != nil {
		return errors.WithStack(err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "Failed to start file watcher")
	}
	defer watcher.Close()

	w := &repoWatcher{
		Config:   config,
		root:     root,
		watcher:  watcher,
		throttle: NewThrottle(config.MinInterval, config.SlowThreshold),
	}
	if err := w.addTree(root); err != nil {
		return err
	}
	config.Logger.Info("Started watching repository", zap.String("root", root))
	return w.loop(ctx, do)
}

type repoWatcher struct {
	Config
	root     string
	watcher  *fsnotify.Watcher
	throttle *Throttle
}

func (w *repoWatcher) loop(ctx context.Context, do func(context.Context) error) error {
	timer := time.NewTimer(0) // run right away
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("Stopped watching repository")
			return nil
		case <-timer.C:
			if wait := w.throttle.Wait(); wait > 0 {
				w.Logger.Debug("Throttled", zap.Duration("wait", wait))
				timer.Reset(wait)
				continue
			}
			w.run(ctx, do)
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.Debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

func (w *repoWatcher) run(ctx context.Context, do func(context.Context) error) {
	start := time.Now()
	err := do(ctx)
	duration := time.Since(start)
	if err != nil {
		w.Logger.Error("Error running watch call", zap.Error(err))
	}
	w.Logger.Debug("Watch call finished", zap.Duration("duration", duration))
	if w.throttle.Record(duration) {
		w.Logger.Info("Slow repository detected", zap.Duration("duration", duration))
		w.OnSlow(duration)
	}
}

// handleEvent starts watching new directories and returns true if the event should trigger a run
func (w *repoWatcher) handleEvent(event fsnotify.Event) bool {
	rel, ok := w.rel(event.Name)
	if !ok {
		return false
	}
	if event.Has(fsnotify.Create) && shouldWatchDir(rel) {
		if err := w.addTree(event.Name); err != nil {
			w.Logger.Warn("Failed to watch new directory", zap.String("path", rel), zap.Error(err))
		}
	}
	if !ShouldTrigger(rel) {
		return false
	}
	w.Logger.Debug("Detected change", zap.String("path", rel), zap.Stringer("op", event.Op))
	return true
}

// addTree watches dir and its subdirectories which may contain triggering files. Does nothing if dir is not a directory.
func (w *repoWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path != dir {
				return nil // removed while walking
			}
			return errors.WithStack(err)
		}
		if !entry.IsDir() {
			return nil
		}
		rel, ok := w.rel(path)
		if !ok || !shouldWatchDir(rel) {
			return filepath.SkipDir
		}
		return errors.Wrapf(w.watcher.Add(path), "Failed to watch %s", rel)
	})
}

// rel returns path relative to the repository root with forward slashes
func (w *repoWatcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return "", false
	}
	return rel, true
}
