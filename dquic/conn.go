package dquic

import (
	"context"

	"github.com/quic-go/quic-go"
)

// ApplicationErrorCode is used for [ConnAdapter.CloseWithError].
type ApplicationErrorCode uint64

// NoError is the application error code for a normal close.
// A datagram subscription whose connection closes with NoError completes
// instead of erroring.
const NoError ApplicationErrorCode = 0

// DatagramReceiver is the subset of a QUIC connection
// needed to receive unreliable datagrams.
type DatagramReceiver interface {
	// ReceiveDatagram blocks until a datagram arrives,
	// the context is canceled, or the connection fails.
	ReceiveDatagram(context.Context) ([]byte, error)
}

var _ DatagramReceiver = ConnAdapter{}

// ConnAdapter wraps a [*quic.Conn], implementing [DatagramReceiver].
//
// Create an instance with [WrapConn].
type ConnAdapter struct {
	qc *quic.Conn
}

// WrapConn wraps the given connection.
// The connection must have been established with datagrams enabled.
func WrapConn(qc *quic.Conn) ConnAdapter {
	return ConnAdapter{qc: qc}
}

func (c ConnAdapter) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	return c.qc.ReceiveDatagram(ctx)
}

// CloseWithError closes the underlying connection.
// Subscriptions from [Datagrams] on the peer observe code:
// [NoError] completes them, anything else is delivered as an error.
func (c ConnAdapter) CloseWithError(code ApplicationErrorCode, msg string) error {
	return c.qc.CloseWithError(quic.ApplicationErrorCode(code), msg)
}
