// Package dstreamtest contains utilities for testing code
// that produces or consumes dstream sources.
package dstreamtest

import (
	"sync"

	"github.com/gordian-engine/dstream"
)

// Recorder captures every signal delivered to its [Recorder.Observer].
//
// Recorder is safe for concurrent use.
type Recorder[T any] struct {
	mu    sync.Mutex
	notes []dstream.Notification[T]
}

// NewRecorder returns an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return new(Recorder[T])
}

// Observer returns an observer whose handlers all record into r.
func (r *Recorder[T]) Observer() dstream.Observer[T] {
	return dstream.NotifyInto(r.add)
}

func (r *Recorder[T]) add(n dstream.Notification[T]) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far, in order.
func (r *Recorder[T]) Notifications() []dstream.Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]dstream.Notification[T], len(r.notes))
	copy(out, r.notes)
	return out
}

// Values returns the values recorded through Next, in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []T
	for _, n := range r.notes {
		if n.Kind == dstream.KindNext {
			out = append(out, n.Val)
		}
	}
	return out
}

// Err returns the first recorded error, or nil.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notes {
		if n.Kind == dstream.KindError {
			return n.Err
		}
	}
	return nil
}

// Count returns how many notifications of kind k were recorded.
func (r *Recorder[T]) Count(k dstream.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := 0
	for _, n := range r.notes {
		if n.Kind == k {
			c++
		}
	}
	return c
}

// Completed reports whether Complete was recorded.
func (r *Recorder[T]) Completed() bool {
	return r.Count(dstream.KindComplete) > 0
}

// Errored reports whether Error was recorded.
func (r *Recorder[T]) Errored() bool {
	return r.Count(dstream.KindError) > 0
}
