package dstreamtest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gordian-engine/dstream"
)

// maxRunAll bounds RunAll so a self-rearming callback
// fails the test instead of hanging it.
const maxRunAll = 10_000

// FakeScheduler is a [dstream.Scheduler] driven by a virtual clock.
// Callbacks only run from within Advance or RunAll,
// on the calling goroutine, in due-time order
// (ties broken by scheduling order).
//
// Because callbacks run synchronously, a callback that schedules another
// (as [dstream.Interval] does) is picked up within the same Advance.
// To exercise producers with asynchronous callbacks instead,
// use [dstream.TimerScheduler] with a clockwork fake clock.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

var _ dstream.Scheduler = (*FakeScheduler)(nil)

type fakeTimer struct {
	at  time.Duration
	seq uint64
	f   func()
}

// NewFakeScheduler returns a FakeScheduler at virtual time zero.
func NewFakeScheduler() *FakeScheduler {
	return new(FakeScheduler)
}

// AfterFunc schedules f to run once the virtual clock reaches d past now.
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &fakeTimer{at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)

	return func() bool {
		return s.remove(t)
	}
}

func (s *FakeScheduler) remove(t *fakeTimer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, pending := range s.timers {
		if pending == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the elapsed virtual time.
func (s *FakeScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of callbacks not yet run or stopped.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Advance moves the virtual clock forward by d,
// running every callback that comes due along the way,
// including ones scheduled by earlier callbacks.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// RunAll runs callbacks in due order until none remain,
// advancing the virtual clock to each one's due time.
// It returns the number of callbacks run.
//
// RunAll panics if callbacks keep rescheduling past a fixed bound.
func (s *FakeScheduler) RunAll() int {
	for n := 0; ; n++ {
		if n >= maxRunAll {
			panic(fmt.Errorf(
				"BUG: FakeScheduler.RunAll exceeded %d callbacks; is a callback rescheduling itself?",
				maxRunAll,
			))
		}

		t := s.popDue(-1)
		if t == nil {
			return n
		}
		t.f()
	}
}

// popDue removes and returns the earliest timer due at or before limit,
// advancing now to its due time.
// A negative limit accepts any timer.
func (s *FakeScheduler) popDue(limit time.Duration) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.timers) == 0 {
		return nil
	}

	sort.SliceStable(s.timers, func(i, j int) bool {
		a, b := s.timers[i], s.timers[j]
		if a.at != b.at {
			return a.at < b.at
		}
		return a.seq < b.seq
	})

	t := s.timers[0]
	if limit >= 0 && t.at > limit {
		return nil
	}

	s.timers = s.timers[1:]
	if t.at > s.now {
		s.now = t.at
	}
	return t
}
