package dstream

import "fmt"

// PanicError wraps a value recovered from a panicking [Producer]
// when that value is not itself an error.
// Panics with error values are delivered unwrapped.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("producer panicked: %v", e.Value)
}

// panicToError converts a recovered value into the error
// delivered to an observer.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return PanicError{Value: r}
}
