// Package rudp implements a reliable, in-order byte-stream transfer on top of
// UDP datagrams. A sender waits for a receiver's handshake, then pushes the
// stream in sequenced segments, paced by a TCP-Reno-style congestion
// controller (slow start, congestion avoidance, fast retransmit and fast
// recovery) with an adaptive retransmission timeout.
package rudp

import (
	"errors"
	"net"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/logging"
)

// Config contains all configuration data needed for a transfer sender or receiver.
type Config struct {
	// MSS is the maximum number of payload bytes carried by a single segment.
	// If not set, it defaults to 1400.
	MSS int
	// InitialCongestionWindow is the initial congestion window, in segments.
	// If not set, it defaults to 1.
	InitialCongestionWindow int
	// InitialSlowStartThreshold is the window size, in segments, at which slow
	// start switches to congestion avoidance. If not set, it defaults to 64.
	InitialSlowStartThreshold int
	// DupAckThreshold is the number of duplicate acknowledgments that triggers
	// a fast retransmission. If not set, it defaults to 3.
	DupAckThreshold int
	// ReceiveWindow is the number of segments the receiver is willing to
	// buffer beyond the next expected one. It is advertised to the sender with
	// every acknowledgment. If not set, it defaults to 64.
	ReceiveWindow int
	// InitialRTO is the retransmission timeout used before the first RTT
	// measurement. If not set, it defaults to 1 second.
	InitialRTO time.Duration
	// ReceiveTimeout is how long the receiver waits for a datagram before it
	// repeats its current acknowledgment. If not set, it defaults to
	// 2 seconds.
	ReceiveTimeout time.Duration
	// Tracer records protocol events, e.g. for metrics collection.
	Tracer logging.Tracer
}

// IsTimeout says if an error was caused by a deadline, either one set on the
// packet conn by the caller or the expiry of the transfer's context.
func IsTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
