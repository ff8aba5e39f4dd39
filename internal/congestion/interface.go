// Package congestion implements the sender's congestion control.
package congestion

// A State is a phase of the congestion control state machine.
type State uint8

const (
	// StateSlowStart is the exponential growth phase.
	StateSlowStart State = iota
	// StateCongestionAvoidance is the additive increase phase.
	StateCongestionAvoidance
	// StateFastRecovery is entered when the duplicate ack threshold is reached.
	StateFastRecovery
)

func (s State) String() string {
	switch s {
	case StateSlowStart:
		return "slow_start"
	case StateCongestionAvoidance:
		return "congestion_avoidance"
	case StateFastRecovery:
		return "fast_recovery"
	default:
		return "unknown"
	}
}

// A SendAlgorithm performs congestion control
type SendAlgorithm interface {
	// OnNewAck is called for an acknowledgment that advances the send window.
	OnNewAck()
	// OnDuplicateAck is called for an acknowledgment that doesn't advance the
	// send window. It reports whether the duplicate ack threshold was just
	// reached, i.e. whether the oldest outstanding segment should be
	// fast-retransmitted.
	OnDuplicateAck() bool
	// OnRetransmissionTimeout is called when the retransmission timer expires.
	OnRetransmissionTimeout()
	// GetCongestionWindow returns the usable congestion window, in segments.
	GetCongestionWindow() int
}

// A SendAlgorithmWithDebugInfos is a SendAlgorithm that exposes some debug infos
type SendAlgorithmWithDebugInfos interface {
	SendAlgorithm
	InSlowStart() bool
	InRecovery() bool
	State() State
}
