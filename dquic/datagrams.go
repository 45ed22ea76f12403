package dquic

import (
	"context"
	"errors"

	"github.com/gordian-engine/dstream"
	"github.com/quic-go/quic-go"
)

// Datagrams returns a Source of datagrams received on r.
//
// Each subscription runs its own receive loop in a goroutine,
// so concurrent subscriptions compete for datagrams.
// A connection closed with [NoError] completes the subscription;
// any other receive error is delivered to the observer.
// Unsubscribing cancels the pending receive,
// and the resulting cancellation error is not delivered.
func Datagrams(r DatagramReceiver) *dstream.Source[[]byte] {
	if r == nil {
		panic(errors.New("BUG: dquic.Datagrams called with nil receiver"))
	}

	return dstream.New(func(sink *dstream.Sink[[]byte]) func() {
		ctx, cancel := context.WithCancel(context.Background())
		go receiveDatagrams(ctx, r, sink)
		return cancel
	})
}

func receiveDatagrams(
	ctx context.Context,
	r DatagramReceiver,
	sink *dstream.Sink[[]byte],
) {
	for {
		d, err := r.ReceiveDatagram(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Unsubscribed.
				return
			}

			if IsNormalClose(err) {
				sink.Complete()
				return
			}

			sink.Error(err)
			return
		}

		sink.Next(d)
	}
}

// IsNormalClose reports whether err is a QUIC application close
// with the [NoError] code, from either side of the connection.
func IsNormalClose(err error) bool {
	var appErr *quic.ApplicationError
	if !errors.As(err, &appErr) {
		return false
	}
	return ApplicationErrorCode(appErr.ErrorCode) == NoError
}
