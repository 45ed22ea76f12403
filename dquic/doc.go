// Package dquic exposes QUIC connection datagrams as a [dstream.Source].
//
// Connections are accessed through the narrow [DatagramReceiver] interface,
// so tests can supply a stub instead of a live QUIC connection.
package dquic
