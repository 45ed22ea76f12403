package dpubsub

import (
	"sync"

	"github.com/gordian-engine/dstream"
)

// Publisher appends the signals of a subscription to a [Stream].
//
// Publisher holds the tail of the list,
// so it is the single writer the Stream requires.
// Its Observer may be used for at most one subscription at a time.
type Publisher[T any] struct {
	mu   sync.Mutex
	tail *Stream[dstream.Notification[T]]
}

// NewPublisher returns a Publisher writing to a new Stream.
// Use [Publisher.Head] to obtain the first node for readers.
func NewPublisher[T any]() *Publisher[T] {
	return &Publisher[T]{
		tail: NewStream[dstream.Notification[T]](),
	}
}

// Head returns the node the next published notification will occupy.
// Readers starting from Head observe everything published from now on.
func (p *Publisher[T]) Head() *Stream[dstream.Notification[T]] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tail
}

// Observer returns an observer that publishes every signal it receives.
func (p *Publisher[T]) Observer() dstream.Observer[T] {
	return dstream.NotifyInto(p.publish)
}

func (p *Publisher[T]) publish(n dstream.Notification[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tail.Publish(n)
	p.tail = p.tail.Next
}
