package dstream

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler runs callbacks after a delay.
// Producers that emit over time accept a Scheduler
// so tests can substitute a virtual clock.
type Scheduler interface {
	// AfterFunc arranges for f to run once, after at least d.
	// The returned stop function cancels the call if it has not started,
	// reporting whether it did so.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// TimerScheduler is a [Scheduler] backed by a [clockwork.Clock].
// Callbacks run on their own goroutines.
//
// The zero value uses the real clock.
// Set Clock to a [clockwork.FakeClock] to drive timers from a test
// while keeping callbacks asynchronous, as they are in production.
type TimerScheduler struct {
	Clock clockwork.Clock
}

func (s TimerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	c := s.Clock
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return c.AfterFunc(d, f).Stop
}
