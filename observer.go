package dstream

// Observer is the set of handlers a consumer supplies to [*Source.Subscribe].
//
// Any nil handler is treated as a no-op.
// The zero Observer is valid and ignores every signal.
type Observer[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// Handler is the method form of an [Observer],
// for types that prefer to implement the handlers directly.
type Handler[T any] interface {
	OnNext(T)
	OnError(error)
	OnComplete()
}

// ObserverOf returns an Observer that forwards to h.
func ObserverOf[T any](h Handler[T]) Observer[T] {
	return Observer[T]{
		Next:     h.OnNext,
		Error:    h.OnError,
		Complete: h.OnComplete,
	}
}

// resolved returns a copy of o with every nil handler
// replaced by a no-op, so callers never check for presence again.
func (o Observer[T]) resolved() Observer[T] {
	if o.Next == nil {
		o.Next = func(T) {}
	}
	if o.Error == nil {
		o.Error = func(error) {}
	}
	if o.Complete == nil {
		o.Complete = func() {}
	}
	return o
}
