// Package dtest contains helpers shared by tests across the module.
package dtest

import (
	"log/slog"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
)

// ScheduleDelay is how long the channel helpers wait
// before declaring that a value will not arrive.
const ScheduleDelay = 50 * time.Millisecond

// NewLogger returns a logger that writes through t.Log,
// so output is attributed to the test that produced it.
func NewLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slogt.New(t)
}

// ReceiveSoon receives a value from ch,
// failing the test if no value arrives within ScheduleDelay.
func ReceiveSoon[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduleDelay)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("no value received within %s", ScheduleDelay)
	}

	panic("unreachable")
}

// SendSoon sends v on ch,
// failing the test if the send does not complete within ScheduleDelay.
func SendSoon[T any](t *testing.T, ch chan<- T, v T) {
	t.Helper()

	timer := time.NewTimer(ScheduleDelay)
	defer timer.Stop()

	select {
	case ch <- v:
	case <-timer.C:
		t.Fatalf("send not accepted within %s", ScheduleDelay)
	}
}

// NotSending fails the test if ch is immediately readable.
func NotSending[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		t.Fatal("channel was readable when it should not have been")
	default:
	}
}

// IsSending fails the test if ch is not readable within ScheduleDelay.
func IsSending[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	_ = ReceiveSoon(t, ch)
}
