package dstream

import "fmt"

// Kind identifies which signal a [Notification] carries.
type Kind uint8

const (
	KindNext Kind = iota + 1
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "Next"
	case KindError:
		return "Error"
	case KindComplete:
		return "Complete"
	default:
		return "Invalid"
	}
}

// Notification is a single signal captured as a value,
// for recording or replaying a subscription.
type Notification[T any] struct {
	Kind Kind

	// Val is set for KindNext.
	Val T

	// Err is set for KindError.
	Err error
}

// Terminal reports whether n ends a subscription.
func (n Notification[T]) Terminal() bool {
	return n.Kind == KindError || n.Kind == KindComplete
}

// SendTo replays n into s.
//
// SendTo panics if n has an invalid Kind.
func (n Notification[T]) SendTo(s *Sink[T]) {
	switch n.Kind {
	case KindNext:
		s.Next(n.Val)
	case KindError:
		s.Error(n.Err)
	case KindComplete:
		s.Complete()
	default:
		panic(fmt.Errorf("BUG: invalid notification kind %d", n.Kind))
	}
}

// NotifyInto returns an Observer that converts every signal
// into a Notification passed to fn.
func NotifyInto[T any](fn func(Notification[T])) Observer[T] {
	return Observer[T]{
		Next: func(v T) {
			fn(Notification[T]{Kind: KindNext, Val: v})
		},
		Error: func(err error) {
			fn(Notification[T]{Kind: KindError, Err: err})
		},
		Complete: func() {
			fn(Notification[T]{Kind: KindComplete})
		},
	}
}
