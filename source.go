package dstream

import (
	"errors"
	"io"
	"log/slog"
)

// Producer drives one subscription's sink.
//
// It runs synchronously inside [*Source.Subscribe].
// It may emit immediately, or arrange for later emission
// (for example through a [Scheduler] or a goroutine).
// The returned function, if non-nil, becomes the sink's cleanup
// and runs once the subscription ends.
type Producer[T any] func(s *Sink[T]) (cleanup func())

// Source is an immutable description of how to produce a stream of values.
// A Source may be subscribed to any number of times,
// and each subscription runs its own copy of the producer.
type Source[T any] struct {
	log *slog.Logger

	produce Producer[T]
}

// New returns a Source wrapping p.
// The producer does not run until the Source is subscribed to.
func New[T any](p Producer[T]) *Source[T] {
	if p == nil {
		panic(errors.New("BUG: dstream.New called with nil producer"))
	}

	return &Source[T]{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		produce: p,
	}
}

// WithLogger returns a copy of s that logs to log.
// The receiver is unchanged.
func (s *Source[T]) WithLogger(log *slog.Logger) *Source[T] {
	if log == nil {
		panic(errors.New("BUG: (*Source).WithLogger called with nil logger"))
	}

	cp := *s
	cp.log = log
	return &cp
}

// Subscribe starts a new execution of the producer delivering to o,
// and returns a handle to end it early.
//
// Any nil handler in o is a no-op, so the zero Observer
// subscribes without observing anything.
//
// If the producer panics before the subscription has stopped,
// the recovered value is delivered to o.Error instead of propagating:
// error values unchanged, other values as a [PanicError].
// A panic after the subscription has stopped is logged and discarded.
func (s *Source[T]) Subscribe(o Observer[T]) Subscription {
	sink := newSink(o)
	s.run(sink)
	return sink
}

// SubscribeFunc is shorthand for subscribing with only a Next handler.
func (s *Source[T]) SubscribeFunc(next func(T)) Subscription {
	return s.Subscribe(Observer[T]{Next: next})
}

func (s *Source[T]) run(sink *Sink[T]) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err := panicToError(r)
		if sink.isStopped() {
			s.log.Warn(
				"Dropping producer panic after subscription stopped",
				"err", err,
			)
			return
		}

		s.log.Debug("Routing producer panic to error handler", "err", err)
		sink.Error(err)
	}()

	if cleanup := s.produce(sink); cleanup != nil {
		sink.AddCleanup(cleanup)
	}
}
