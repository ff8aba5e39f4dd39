package ackhandler

import (
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/wire"
)

// The AckResult is the outcome of processing an incoming acknowledgment.
type AckResult struct {
	// IsNewAck says if the acknowledgment advanced the cumulative ack number.
	IsNewAck bool
	// AckedSegments are the newly acknowledged segments, in ascending order.
	AckedSegments []*Segment
	// FastRetransmit is the segment that needs to be sent again immediately,
	// if this acknowledgment made the duplicate ack count reach the threshold.
	FastRetransmit *Segment
}

// The SentSegmentHandler handles acknowledgments received for outgoing segments.
type SentSegmentHandler interface {
	// SentSegment records a segment that was just sent for the first time.
	// Segment numbers must be used sequentially.
	SentSegment(s *Segment)
	ReceivedAck(f *wire.AckFrame, rcvTime time.Time) (AckResult, error)
	// OnRetransmissionTimeout collapses the congestion window and returns
	// all outstanding segments, in ascending order, so they can be sent again.
	OnRetransmissionTimeout() []*Segment
	// CanSend says if the congestion window and the peer's receive window
	// allow putting another segment in flight.
	CanSend() bool
	// EffectiveWindow is the congestion window, capped by the peer's receive window.
	EffectiveWindow() int
	SegmentsInFlight() int
	HasOutstandingSegments() bool
}

// The ReceivedSegmentHandler reorders incoming segments and keeps track of
// the acknowledgment to send.
type ReceivedSegmentHandler interface {
	// ReceivedSegment processes an incoming segment. It returns the payloads
	// that became deliverable, in order.
	ReceivedSegment(seg *wire.Segment) [][]byte
	// AckFrame returns the acknowledgment for the current receive state.
	AckFrame() *wire.AckFrame
	// ReceivedFinalSegment says if the end of stream message arrived.
	ReceivedFinalSegment() bool
}
