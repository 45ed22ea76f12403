package dstream_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/gordian-engine/dstream"
	"github.com/gordian-engine/dstream/dstreamtest"
	"github.com/gordian-engine/dstream/internal/dtest"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	t.Parallel()

	r := dstreamtest.NewRecorder[string]()
	dstream.Of("a", "b", "c").Subscribe(r.Observer())

	require.Equal(t, []string{"a", "b", "c"}, r.Values())
	require.True(t, r.Completed())
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	r := dstreamtest.NewRecorder[int]()
	dstream.Empty[int]().Subscribe(r.Observer())

	require.Equal(t, []dstream.Notification[int]{
		{Kind: dstream.KindComplete},
	}, r.Notifications())
}

func TestFail(t *testing.T) {
	t.Parallel()

	want := errors.New("fail")
	r := dstreamtest.NewRecorder[int]()
	dstream.Fail[int](want).Subscribe(r.Observer())

	require.Empty(t, r.Values())
	require.Equal(t, want, r.Err())
	require.False(t, r.Completed())
}

func TestNever(t *testing.T) {
	t.Parallel()

	r := dstreamtest.NewRecorder[int]()
	sub := dstream.Never[int]().Subscribe(r.Observer())
	sub.Unsubscribe()

	require.Empty(t, r.Notifications())
}

func TestFromSeq(t *testing.T) {
	t.Parallel()

	src := dstream.FromSeq(slices.Values([]int{1, 2, 3}))

	// The sequence is restarted for every subscription.
	for range 2 {
		r := dstreamtest.NewRecorder[int]()
		src.Subscribe(r.Observer())

		require.Equal(t, []int{1, 2, 3}, r.Values())
		require.True(t, r.Completed())
	}
}

func TestFromChannel_completesOnClose(t *testing.T) {
	t.Parallel()

	// Unbuffered so we know sends are received.
	ch := make(chan int)

	r := dstreamtest.NewRecorder[int]()
	done := make(chan struct{})
	o := r.Observer()
	o.Complete = func() { close(done) }
	dstream.FromChannel(ch).Subscribe(o)

	dtest.SendSoon(t, ch, 1)
	dtest.SendSoon(t, ch, 2)
	close(ch)

	dtest.ReceiveSoon(t, done)
	require.Equal(t, []int{1, 2}, r.Values())
}

func TestFromChannel_unsubscribeStopsGoroutine(t *testing.T) {
	t.Parallel()

	ch := make(chan int)

	got := make(chan int, 1)
	sub := dstream.FromChannel(ch).SubscribeFunc(func(v int) { got <- v })

	dtest.SendSoon(t, ch, 1)
	require.Equal(t, 1, dtest.ReceiveSoon(t, got))

	sub.Unsubscribe()

	// With the forwarding goroutine gone, nothing receives from ch.
	select {
	case ch <- 2:
		t.Fatal("value accepted after unsubscribe")
	case <-time.After(dtest.ScheduleDelay):
	}
	dtest.NotSending(t, got)
}

func TestTimer(t *testing.T) {
	t.Parallel()

	sched := dstreamtest.NewFakeScheduler()
	r := dstreamtest.NewRecorder[string]()

	dstream.Timer(sched, time.Second, "fired").Subscribe(r.Observer())
	require.Empty(t, r.Notifications())

	sched.Advance(999 * time.Millisecond)
	require.Empty(t, r.Notifications())

	sched.Advance(time.Millisecond)
	require.Equal(t, []string{"fired"}, r.Values())
	require.True(t, r.Completed())
	require.Zero(t, sched.Pending())
}

func TestTimer_clockworkFakeClock(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	fc := clockwork.NewFakeClock()
	vals := make(chan string, 1)
	done := make(chan struct{})
	dstream.Timer(dstream.TimerScheduler{Clock: fc}, time.Minute, "fired").
		Subscribe(dstream.Observer[string]{
			Next:     func(v string) { vals <- v },
			Complete: func() { close(done) },
		})

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(59 * time.Second)
	dtest.NotSending(t, vals)

	fc.Advance(time.Second)
	require.Equal(t, "fired", dtest.ReceiveSoon(t, vals))
	dtest.ReceiveSoon(t, done)
}

func TestTimer_unsubscribeStopsTimer(t *testing.T) {
	t.Parallel()

	sched := dstreamtest.NewFakeScheduler()
	r := dstreamtest.NewRecorder[string]()

	sub := dstream.Timer(sched, time.Second, "fired").Subscribe(r.Observer())
	require.Equal(t, 1, sched.Pending())

	sub.Unsubscribe()
	require.Zero(t, sched.Pending())

	sched.RunAll()
	require.Empty(t, r.Notifications())
}

func TestTimer_nilSchedulerPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = dstream.Timer[int](nil, time.Second, 1)
	})
}

func TestInterval_invalidArgumentsPanic(t *testing.T) {
	t.Parallel()

	sched := dstreamtest.NewFakeScheduler()

	require.Panics(t, func() {
		_ = dstream.Interval(nil, time.Second)
	})
	require.Panics(t, func() {
		_ = dstream.Interval(sched, 0)
	})
	require.Panics(t, func() {
		_ = dstream.Interval(sched, -time.Millisecond)
	})
	require.Zero(t, sched.Pending())
}

func TestInterval(t *testing.T) {
	t.Parallel()

	sched := dstreamtest.NewFakeScheduler()
	r := dstreamtest.NewRecorder[int]()

	sub := dstream.Interval(sched, 10*time.Millisecond).Subscribe(r.Observer())

	sched.Advance(35 * time.Millisecond)
	require.Equal(t, []int{0, 1, 2}, r.Values())

	sub.Unsubscribe()
	require.Zero(t, sched.Pending())

	sched.Advance(time.Second)
	require.Equal(t, []int{0, 1, 2}, r.Values())
	require.False(t, r.Completed())
}

func TestInterval_independentCounters(t *testing.T) {
	t.Parallel()

	sched := dstreamtest.NewFakeScheduler()
	src := dstream.Interval(sched, 10*time.Millisecond)

	r1 := dstreamtest.NewRecorder[int]()
	sub1 := src.Subscribe(r1.Observer())
	defer sub1.Unsubscribe()

	sched.Advance(20 * time.Millisecond)

	r2 := dstreamtest.NewRecorder[int]()
	sub2 := src.Subscribe(r2.Observer())
	defer sub2.Unsubscribe()

	sched.Advance(20 * time.Millisecond)

	require.Equal(t, []int{0, 1, 2, 3}, r1.Values())
	require.Equal(t, []int{0, 1}, r2.Values())
}

func TestInterval_unsubscribeFromHandler(t *testing.T) {
	t.Parallel()

	sched := dstreamtest.NewFakeScheduler()

	var values []int
	var sub dstream.Subscription
	sub = dstream.Interval(sched, time.Millisecond).SubscribeFunc(func(n int) {
		values = append(values, n)
		if n == 2 {
			sub.Unsubscribe()
		}
	})

	ran := sched.RunAll()

	require.Equal(t, []int{0, 1, 2}, values)
	require.Equal(t, 3, ran)
	require.Zero(t, sched.Pending())
}

func TestInterval_timerScheduler(t *testing.T) {
	t.Parallel()

	got := make(chan int, 8)
	sub := dstream.Interval(dstream.TimerScheduler{}, time.Millisecond).
		SubscribeFunc(func(n int) {
			select {
			case got <- n:
			default:
			}
		})

	require.Equal(t, 0, dtest.ReceiveSoon(t, got))
	require.Equal(t, 1, dtest.ReceiveSoon(t, got))

	sub.Unsubscribe()
}
