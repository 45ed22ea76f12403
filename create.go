package dstream

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"
)

// Of returns a Source that emits vals in order, synchronously, then completes.
func Of[T any](vals ...T) *Source[T] {
	return New(func(s *Sink[T]) func() {
		for _, v := range vals {
			if s.Closed() {
				return nil
			}
			s.Next(v)
		}
		s.Complete()
		return nil
	})
}

// Empty returns a Source that completes without emitting.
func Empty[T any]() *Source[T] {
	return New(func(s *Sink[T]) func() {
		s.Complete()
		return nil
	})
}

// Fail returns a Source that delivers err without emitting.
func Fail[T any](err error) *Source[T] {
	return New(func(s *Sink[T]) func() {
		s.Error(err)
		return nil
	})
}

// Never returns a Source that neither emits nor terminates.
func Never[T any]() *Source[T] {
	return New(func(*Sink[T]) func() { return nil })
}

// FromSeq returns a Source that emits every element of seq, then completes.
// Iteration stops early if the subscription is closed from an observer callback.
func FromSeq[T any](seq iter.Seq[T]) *Source[T] {
	return New(func(s *Sink[T]) func() {
		for v := range seq {
			if s.Closed() {
				return nil
			}
			s.Next(v)
		}
		s.Complete()
		return nil
	})
}

// FromChannel returns a Source whose subscriptions each start a goroutine
// forwarding values received from ch.
// The subscription completes when ch is closed.
//
// Subscriptions compete for values: each value received from ch
// goes to exactly one subscription.
// Unsubscribing stops the goroutine without draining ch.
func FromChannel[T any](ch <-chan T) *Source[T] {
	return New(func(s *Sink[T]) func() {
		stop := make(chan struct{})
		go forwardChannel(s, ch, stop)
		return func() { close(stop) }
	})
}

func forwardChannel[T any](s *Sink[T], ch <-chan T, stop <-chan struct{}) {
	for {
		// Prefer stopping over taking another value
		// when both are ready.
		select {
		case <-stop:
			return
		default:
		}

		select {
		case <-stop:
			return

		case v, ok := <-ch:
			if !ok {
				s.Complete()
				return
			}
			s.Next(v)
		}
	}
}

// Timer returns a Source that emits v once, d after subscribing, then completes.
// Unsubscribing before then stops the pending timer.
func Timer[T any](sched Scheduler, d time.Duration, v T) *Source[T] {
	if sched == nil {
		panic(errors.New("BUG: dstream.Timer called with nil scheduler"))
	}

	return New(func(s *Sink[T]) func() {
		stop := sched.AfterFunc(d, func() {
			s.Next(v)
			s.Complete()
		})
		return func() { stop() }
	})
}

// Interval returns a Source that emits 0, 1, 2, ...
// with period between consecutive values, starting period after subscribing.
// It never completes on its own.
//
// Interval panics if period is not positive.
func Interval(sched Scheduler, period time.Duration) *Source[int] {
	if sched == nil {
		panic(errors.New("BUG: dstream.Interval called with nil scheduler"))
	}
	if period <= 0 {
		panic(fmt.Errorf("BUG: dstream.Interval called with non-positive period %s", period))
	}

	return New(func(s *Sink[int]) func() {
		t := &intervalTicker{
			sched:  sched,
			period: period,
			sink:   s,
		}
		t.schedule()
		return t.Stop
	})
}

// intervalTicker re-arms itself after each emission
// until stopped.
type intervalTicker struct {
	sched  Scheduler
	period time.Duration
	sink   *Sink[int]

	// Only touched from the tick callback,
	// and each tick is armed by the previous one.
	n int

	mu      sync.Mutex
	stopped bool
	stop    func() bool
}

func (t *intervalTicker) schedule() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stop = t.sched.AfterFunc(t.period, t.tick)
}

func (t *intervalTicker) tick() {
	n := t.n
	t.n++
	t.sink.Next(n)
	t.schedule()
}

func (t *intervalTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	if t.stop != nil {
		t.stop()
	}
}
