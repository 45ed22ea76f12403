// Package dquictest contains stub connections for testing
// code built on the dquic package.
package dquictest

import (
	"context"

	"github.com/gordian-engine/dstream/dquic"
)

// ChanReceiver is a [dquic.DatagramReceiver] fed by channels.
//
// Each call to ReceiveDatagram returns the next value sent on Datagrams,
// or the next error sent on Errs.
type ChanReceiver struct {
	Datagrams chan []byte
	Errs      chan error
}

var _ dquic.DatagramReceiver = (*ChanReceiver)(nil)

// NewChanReceiver returns a ChanReceiver with unbuffered channels,
// so a successful send means the datagram was received.
func NewChanReceiver() *ChanReceiver {
	return &ChanReceiver{
		Datagrams: make(chan []byte),
		Errs:      make(chan error),
	}
}

func (r *ChanReceiver) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	case d := <-r.Datagrams:
		return d, nil
	case err := <-r.Errs:
		return nil, err
	}
}
