package dstream

import "sync"

// Subscription is the consumer's handle to a running subscription.
type Subscription interface {
	// Unsubscribe stops delivery to the observer
	// and runs the subscription's cleanup, if it has not already run.
	// Calling Unsubscribe more than once has no further effect.
	//
	// Unsubscribe does not interrupt work the producer already scheduled;
	// such work may still call into the sink, which discards it.
	//
	// Unsubscribe does not wait for a delivery already in progress
	// on another goroutine, so one value that was being delivered
	// concurrently may still reach the observer after Unsubscribe returns.
	// Observers may call Unsubscribe from within their own handlers.
	Unsubscribe()
}

// Sink is the per-subscription object handed to a [Producer].
//
// It forwards signals to the subscriber's [Observer] until the first
// Error or Complete, after which every signal is silently dropped.
// It also owns the subscription's cleanup function,
// which runs exactly once when the sink closes.
//
// Signals may arrive from any goroutine, but a producer must not
// call into its own sink from inside an observer callback.
type Sink[T any] struct {
	dst Observer[T]

	// deliverMu serializes calls into dst,
	// so that a signal racing with Error or Complete
	// is either delivered before it or not at all.
	// Unsubscribe does not take deliverMu.
	deliverMu sync.Mutex

	mu      sync.Mutex
	stopped bool
	closed  bool
	cleanup func()
}

var _ Subscription = (*Sink[int])(nil)

func newSink[T any](o Observer[T]) *Sink[T] {
	return &Sink[T]{dst: o.resolved()}
}

// Next delivers v to the observer, unless the sink has stopped.
func (s *Sink[T]) Next(v T) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.isStopped() {
		return
	}

	s.dst.Next(v)
}

// Error delivers err to the observer and then closes the sink.
// If the sink has already stopped, Error does nothing.
func (s *Sink[T]) Error(err error) {
	s.deliverMu.Lock()
	if !s.stop() {
		s.deliverMu.Unlock()
		return
	}
	defer s.Unsubscribe()
	defer s.deliverMu.Unlock()

	s.dst.Error(err)
}

// Complete signals completion to the observer and then closes the sink.
// If the sink has already stopped, Complete does nothing.
func (s *Sink[T]) Complete() {
	s.deliverMu.Lock()
	if !s.stop() {
		s.deliverMu.Unlock()
		return
	}
	defer s.Unsubscribe()
	defer s.deliverMu.Unlock()

	s.dst.Complete()
}

// stop marks the sink stopped.
// It reports false if the sink was already stopped.
func (s *Sink[T]) stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.stopped = true
	return true
}

// AddCleanup sets fn as the function to run when the sink closes,
// replacing any cleanup function set earlier.
// Only the most recently added function runs.
//
// If the sink is already closed, fn runs immediately on the calling goroutine,
// since no later close would run it.
// A nil fn is ignored.
func (s *Sink[T]) AddCleanup(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanup = fn
	s.mu.Unlock()
}

// Unsubscribe closes the sink and runs its cleanup function.
// Only the first call has any effect.
//
// The cleanup function runs on the calling goroutine with no locks held.
// If it panics, the panic propagates to the caller;
// the sink remains closed and the cleanup is not retried.
func (s *Sink[T]) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopped = true
	fn := s.cleanup
	s.cleanup = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Closed reports whether the sink has closed,
// either through Unsubscribe, Error, or Complete.
// Long-running producers may poll Closed to stop early.
func (s *Sink[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Sink[T]) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
