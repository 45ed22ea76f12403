package dpubsub

import "github.com/gordian-engine/dstream"

// FromStream returns a Source that replays the notifications
// published on s, starting at s itself.
//
// Each subscription starts its own goroutine walking the list,
// so a slow subscriber never holds back another.
// The subscription ends with the first Error or Complete notification,
// or when it is unsubscribed, which stops its goroutine.
func FromStream[T any](s *Stream[dstream.Notification[T]]) *dstream.Source[T] {
	return dstream.New(func(sink *dstream.Sink[T]) func() {
		stop := make(chan struct{})
		go replay(sink, s, stop)
		return func() { close(stop) }
	})
}

func replay[T any](
	sink *dstream.Sink[T],
	s *Stream[dstream.Notification[T]],
	stop <-chan struct{},
) {
	for {
		select {
		case <-stop:
			return

		case <-s.Ready:
			n := s.Val
			n.SendTo(sink)
			if n.Terminal() {
				return
			}
			s = s.Next
		}
	}
}
