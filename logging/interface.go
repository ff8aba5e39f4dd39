// Package logging defines a logging interface for the transfer protocol.
// This package should not be considered stable.
package logging

import (
	"net"
)

// A Tracer records events that happen during a transfer.
type Tracer interface {
	// StartedTransfer is called once, as soon as the peers have agreed to start the transfer.
	StartedTransfer(local, remote net.Addr)
	// SentSegment is called for the first transmission of a data segment
	// and for the end-of-stream marker (fin set, size zero).
	SentSegment(sn SegmentNumber, size ByteCount, fin bool)
	// RetransmittedSegment is called every time a segment is sent again.
	RetransmittedSegment(sn SegmentNumber, size ByteCount, reason RetransmissionReason)
	// ReceivedSegment is called for every parseable data segment, including duplicates.
	ReceivedSegment(sn SegmentNumber, size ByteCount, fin bool)
	// BufferedSegment is called when a segment arrives out of order and is held back.
	BufferedSegment(sn SegmentNumber)
	// DeliveredSegment is called when a segment's payload is handed to the application.
	DeliveredSegment(sn SegmentNumber, size ByteCount)
	SentAck(ack SegmentNumber, receiveWindow int)
	ReceivedAck(ack SegmentNumber, receiveWindow int, duplicate bool)
	DroppedDatagram(size ByteCount, reason DropReason)
	UpdatedMetrics(rttStats *RTTStats, congestionWindow, segmentsInFlight int)
	UpdatedCongestionState(state CongestionState)
	LossTimerExpired()
	// Close is called when the transfer ends.
	Close()
}
