package ackhandler

import (
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/wire"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/logging"
)

type receivedSegmentHandler struct {
	// nextExpected is the lowest segment number that was not delivered yet.
	nextExpected protocol.SegmentNumber
	// segments buffers segments that arrived out of order.
	segments map[protocol.SegmentNumber]*wire.Segment

	receiveWindow int
	finReceived   bool

	tracer logging.Tracer
	logger utils.Logger
}

var _ ReceivedSegmentHandler = &receivedSegmentHandler{}

// NewReceivedSegmentHandler creates a handler that reorders incoming segments.
// receiveWindow is the number of segments the handler is willing to buffer
// beyond the next expected one.
func NewReceivedSegmentHandler(receiveWindow int, tracer logging.Tracer, logger utils.Logger) ReceivedSegmentHandler {
	return &receivedSegmentHandler{
		segments:      make(map[protocol.SegmentNumber]*wire.Segment),
		receiveWindow: receiveWindow,
		tracer:        tracer,
		logger:        logger,
	}
}

func (h *receivedSegmentHandler) ReceivedSegment(seg *wire.Segment) [][]byte {
	sn := seg.SegmentNumber
	size := protocol.ByteCount(len(seg.Data))
	h.tracer.ReceivedSegment(sn, size, seg.Fin)

	if seg.Fin {
		// The end of stream message terminates the transfer, whether or
		// not it is in order. Segments still waiting for a gap to be
		// filled can't be delivered anymore.
		h.finReceived = true
		if len(h.segments) > 0 {
			h.logger.Errorf("Stream ended with %d buffered segments that were never made contiguous", len(h.segments))
		}
		return nil
	}
	if sn < h.nextExpected {
		h.logger.Debugf("Ignoring segment %d, already delivered", sn)
		h.tracer.DroppedDatagram(size, logging.DropReasonDuplicate)
		return nil
	}
	if sn >= h.nextExpected+protocol.SegmentNumber(h.receiveWindow) {
		h.logger.Debugf("Dropping segment %d, outside the receive window", sn)
		h.tracer.DroppedDatagram(size, logging.DropReasonWindowFull)
		return nil
	}
	if sn > h.nextExpected {
		if _, ok := h.segments[sn]; ok {
			h.logger.Debugf("Ignoring segment %d, already buffered", sn)
			h.tracer.DroppedDatagram(size, logging.DropReasonDuplicate)
			return nil
		}
		h.segments[sn] = seg
		h.tracer.BufferedSegment(sn)
		return nil
	}

	var deliverable [][]byte
	for {
		deliverable = append(deliverable, seg.Data)
		h.tracer.DeliveredSegment(seg.SegmentNumber, protocol.ByteCount(len(seg.Data)))
		h.nextExpected++
		next, ok := h.segments[h.nextExpected]
		if !ok {
			break
		}
		delete(h.segments, h.nextExpected)
		seg = next
	}
	return deliverable
}

// AckFrame returns the cumulative acknowledgment to send. The ack number is
// the next expected segment number, acknowledging all segments below it.
func (h *receivedSegmentHandler) AckFrame() *wire.AckFrame {
	return &wire.AckFrame{
		AckNumber:     h.nextExpected,
		ReceiveWindow: h.windowRemaining(),
	}
}

// windowRemaining is the buffer space left to advertise. The next in-order
// segment is always deliverable, so the advertised window never drops below 1.
func (h *receivedSegmentHandler) windowRemaining() int {
	return utils.Max(1, h.receiveWindow-len(h.segments))
}

func (h *receivedSegmentHandler) ReceivedFinalSegment() bool {
	return h.finReceived
}
