package ackhandler

import (
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils/ringbuffer"
)

type sentSegmentHistory struct {
	segments ringbuffer.RingBuffer[*Segment]

	highestSent protocol.SegmentNumber
}

func newSentSegmentHistory() *sentSegmentHistory {
	return &sentSegmentHistory{highestSent: protocol.InvalidSegmentNumber}
}

func (h *sentSegmentHistory) Sent(s *Segment) {
	if s.SegmentNumber != h.highestSent+1 {
		panic("non-sequential segment number use")
	}
	h.highestSent = s.SegmentNumber
	h.segments.PushBack(s)
}

// Front returns the oldest outstanding segment.
func (h *sentSegmentHistory) Front() *Segment {
	if h.segments.Empty() {
		return nil
	}
	return h.segments.PeekFront()
}

// AcknowledgeBelow removes all segments with a segment number below sn, and
// returns them in ascending order.
func (h *sentSegmentHistory) AcknowledgeBelow(sn protocol.SegmentNumber) []*Segment {
	var acked []*Segment
	for !h.segments.Empty() && h.segments.PeekFront().SegmentNumber < sn {
		acked = append(acked, h.segments.PopFront())
	}
	return acked
}

// Iterate iterates over all outstanding segments, in ascending order.
func (h *sentSegmentHistory) Iterate(cb func(*Segment) (cont bool)) {
	for i := 0; i < h.segments.Len(); i++ {
		if !cb(h.segments.At(i)) {
			return
		}
	}
}

func (h *sentSegmentHistory) HasOutstandingSegments() bool {
	return !h.segments.Empty()
}

func (h *sentSegmentHistory) Len() int {
	return h.segments.Len()
}
