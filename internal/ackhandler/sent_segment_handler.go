package ackhandler

import (
	"fmt"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/congestion"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/wire"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/logging"
)

type sentSegmentHandler struct {
	history *sentSegmentHistory

	congestion congestion.SendAlgorithmWithDebugInfos
	rttStats   *utils.RTTStats

	// lastAckApplied is the highest cumulative ack processed so far. An ack
	// carries the receiver's next expected segment number, so it
	// acknowledges all segments below that number.
	lastAckApplied protocol.SegmentNumber
	// peerWindow is the receive window last advertised by the peer.
	// A value of 0 means that the peer didn't advertise a window.
	peerWindow int

	lastState congestion.State

	tracer logging.Tracer
	logger utils.Logger
}

var _ SentSegmentHandler = &sentSegmentHandler{}

// NewSentSegmentHandler creates a handler that tracks outstanding segments
// and drives the congestion controller.
func NewSentSegmentHandler(
	initialCongestionWindow int,
	initialSlowStartThreshold int,
	dupAckThreshold int,
	rttStats *utils.RTTStats,
	tracer logging.Tracer,
	logger utils.Logger,
) SentSegmentHandler {
	return &sentSegmentHandler{
		history:        newSentSegmentHistory(),
		congestion:     congestion.NewRenoSender(initialCongestionWindow, initialSlowStartThreshold, dupAckThreshold),
		rttStats:       rttStats,
		lastAckApplied: protocol.InvalidSegmentNumber,
		lastState:      congestion.StateSlowStart,
		tracer:         tracer,
		logger:         logger,
	}
}

func (h *sentSegmentHandler) SentSegment(s *Segment) {
	h.history.Sent(s)
	h.tracer.UpdatedMetrics(h.rttStats, h.congestion.GetCongestionWindow(), h.history.Len())
}

func (h *sentSegmentHandler) ReceivedAck(f *wire.AckFrame, rcvTime time.Time) (AckResult, error) {
	if f.AckNumber > h.history.highestSent+1 {
		return AckResult{}, fmt.Errorf("received ack %d for a segment that was never sent (highest sent: %d)", f.AckNumber, h.history.highestSent)
	}
	if f.ReceiveWindow > 0 {
		h.peerWindow = f.ReceiveWindow
	}

	if f.AckNumber <= h.lastAckApplied {
		return h.receivedDuplicateAck(f)
	}
	h.lastAckApplied = f.AckNumber
	h.tracer.ReceivedAck(f.AckNumber, f.ReceiveWindow, false)

	// The RTT is measured against the window base segment. No sample is
	// taken if that segment was retransmitted (Karn's algorithm).
	if s := h.history.Front(); s != nil && !s.retransmitted {
		h.rttStats.UpdateRTT(rcvTime.Sub(s.SendTime))
		if h.logger.Debug() {
			h.logger.Debugf("\tupdated RTT: %s (σ: %s), new RTO: %s", h.rttStats.SmoothedRTT(), h.rttStats.MeanDeviation(), h.rttStats.RTO())
		}
	}
	acked := h.history.AcknowledgeBelow(f.AckNumber)
	if h.logger.Debug() && len(acked) > 0 {
		h.logger.Debugf("\tnewly acked segments (%d), next expected: %d", len(acked), f.AckNumber)
	}
	h.congestion.OnNewAck()
	h.maybeTraceStateChange()
	h.tracer.UpdatedMetrics(h.rttStats, h.congestion.GetCongestionWindow(), h.history.Len())
	return AckResult{IsNewAck: true, AckedSegments: acked}, nil
}

func (h *sentSegmentHandler) receivedDuplicateAck(f *wire.AckFrame) (AckResult, error) {
	h.tracer.ReceivedAck(f.AckNumber, f.ReceiveWindow, true)
	h.logger.Debugf("\tduplicate ack for segment %d", f.AckNumber)
	fastRetransmit := h.congestion.OnDuplicateAck()
	h.maybeTraceStateChange()
	h.tracer.UpdatedMetrics(h.rttStats, h.congestion.GetCongestionWindow(), h.history.Len())
	if !fastRetransmit {
		return AckResult{}, nil
	}
	s := h.history.Front()
	if s == nil {
		return AckResult{}, nil
	}
	s.retransmitted = true
	return AckResult{FastRetransmit: s}, nil
}

func (h *sentSegmentHandler) OnRetransmissionTimeout() []*Segment {
	if !h.history.HasOutstandingSegments() {
		return nil
	}
	h.tracer.LossTimerExpired()
	h.congestion.OnRetransmissionTimeout()
	h.maybeTraceStateChange()
	h.tracer.UpdatedMetrics(h.rttStats, h.congestion.GetCongestionWindow(), h.history.Len())
	var segments []*Segment
	h.history.Iterate(func(s *Segment) bool {
		s.retransmitted = true
		segments = append(segments, s)
		return true
	})
	if h.logger.Debug() {
		h.logger.Debugf("\tretransmission timeout, resending %d outstanding segments", len(segments))
	}
	return segments
}

func (h *sentSegmentHandler) EffectiveWindow() int {
	window := h.congestion.GetCongestionWindow()
	if h.peerWindow > 0 && h.peerWindow < window {
		window = h.peerWindow
	}
	return window
}

func (h *sentSegmentHandler) CanSend() bool {
	return h.history.Len() < h.EffectiveWindow()
}

func (h *sentSegmentHandler) SegmentsInFlight() int {
	return h.history.Len()
}

func (h *sentSegmentHandler) HasOutstandingSegments() bool {
	return h.history.HasOutstandingSegments()
}

func (h *sentSegmentHandler) maybeTraceStateChange() {
	state := h.congestion.State()
	if state == h.lastState {
		return
	}
	h.logger.Debugf("\tcongestion state: %s -> %s", h.lastState, state)
	h.lastState = state
	h.tracer.UpdatedCongestionState(state)
}
