package ackhandler

import (
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
)

// A Segment is a data segment that was sent to the peer and not acknowledged yet.
type Segment struct {
	SegmentNumber protocol.SegmentNumber
	Length        protocol.ByteCount
	// Raw is the encoded datagram. It is kept around for retransmissions.
	Raw      []byte
	SendTime time.Time

	// No RTT sample is taken from segments that were sent more than once (Karn's algorithm).
	retransmitted bool
}
