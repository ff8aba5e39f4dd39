package logging

import (
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/congestion"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
)

type (
	// A SegmentNumber identifies a data segment.
	SegmentNumber = protocol.SegmentNumber
	// A ByteCount is used for payload sizes.
	ByteCount = protocol.ByteCount
	// The RTTStats provide the transfer's round-trip time statistics.
	RTTStats = utils.RTTStats
	// The CongestionState is the state of the congestion controller.
	CongestionState = congestion.State
)

const (
	// CongestionStateSlowStart is the slow start phase of Reno
	CongestionStateSlowStart = congestion.StateSlowStart
	// CongestionStateCongestionAvoidance is the congestion avoidance phase of Reno
	CongestionStateCongestionAvoidance = congestion.StateCongestionAvoidance
	// CongestionStateFastRecovery is the fast recovery phase of Reno
	CongestionStateFastRecovery = congestion.StateFastRecovery
)

// RetransmissionReason is the reason a segment is sent again.
type RetransmissionReason uint8

const (
	// RetransmissionReasonDuplicateAcks is used when the duplicate ack threshold triggered a fast retransmission
	RetransmissionReasonDuplicateAcks RetransmissionReason = iota
	// RetransmissionReasonTimeout is used when the retransmission timer expired
	RetransmissionReasonTimeout
)

func (r RetransmissionReason) String() string {
	switch r {
	case RetransmissionReasonDuplicateAcks:
		return "duplicate_acks"
	case RetransmissionReasonTimeout:
		return "timeout"
	default:
		panic("unknown retransmission reason")
	}
}

// DropReason is the reason an incoming datagram is dropped.
type DropReason uint8

const (
	// DropReasonParseError is used when a datagram is dropped because it could not be parsed
	DropReasonParseError DropReason = iota
	// DropReasonDuplicate is used when a segment is dropped because it was already received
	DropReasonDuplicate
	// DropReasonUnexpectedAck is used when an acknowledgment does not match any outstanding segment
	DropReasonUnexpectedAck
	// DropReasonWindowFull is used when a segment is dropped because it lies beyond the receive window
	DropReasonWindowFull
	// DropReasonUnexpectedDatagram is used when a datagram arrives from an unexpected address,
	// or before the handshake completed
	DropReasonUnexpectedDatagram
)

func (r DropReason) String() string {
	switch r {
	case DropReasonParseError:
		return "parse_error"
	case DropReasonDuplicate:
		return "duplicate"
	case DropReasonUnexpectedAck:
		return "unexpected_ack"
	case DropReasonWindowFull:
		return "window_full"
	case DropReasonUnexpectedDatagram:
		return "unexpected_datagram"
	default:
		panic("unknown drop reason")
	}
}
