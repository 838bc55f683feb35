package watch

import (
	"time"

	"go.uber.org/atomic"
)

const throttleGrowth = 1.5

// Throttle spaces out runs in proportion to how long the last run took, so slow repositories are refreshed less often
type Throttle struct {
	minInterval   time.Duration
	slowThreshold time.Duration
	now           func() time.Time

	lastEnd      *atomic.Time
	lastDuration *atomic.Duration
	slowReported *atomic.Bool
}

// NewThrottle returns a Throttle which waits at least minInterval between runs.
// Runs longer than slowThreshold are reported as slow once.
func NewThrottle(minInterval, slowThreshold time.Duration) *Throttle {
	return &Throttle{
		minInterval:   minInterval,
		slowThreshold: slowThreshold,
		now:           time.Now,
		lastEnd:       atomic.NewTime(time.Time{}),
		lastDuration:  atomic.NewDuration(0),
		slowReported:  atomic.NewBool(false),
	}
}

// Interval returns the minimum time between the end of one run and the start of the next: max(minInterval, 1.5x the last run)
func (t *Throttle) Interval() time.Duration {
	adaptive := time.Duration(float64(t.lastDuration.Load()) * throttleGrowth)
	return max(t.minInterval, adaptive)
}

// Wait returns how long until the next run is allowed, or 0 if it may run now
func (t *Throttle) Wait() time.Duration {
	lastEnd := t.lastEnd.Load()
	if lastEnd.IsZero() {
		return 0
	}
	elapsed := t.now().Sub(lastEnd)
	return max(t.Interval()-elapsed, 0)
}

// Record notes a completed run which took 'duration'.
// Returns true the first time a run is slower than the slow threshold.
func (t *Throttle) Record(duration time.Duration) (firstSlow bool) {
	t.lastEnd.Store(t.now())
	t.lastDuration.Store(duration)
	if duration > t.slowThreshold {
		return t.slowReported.CompareAndSwap(false, true)
	}
	return false
}
