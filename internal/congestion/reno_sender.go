package congestion

import (
	"math"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
)

const (
	minCongestionWindow   float64 = protocol.MinCongestionWindow
	minSlowStartThreshold float64 = protocol.MinSlowStartThreshold
)

type renoSender struct {
	state State

	// Congestion window, in segments. It grows by fractions of a segment
	// during congestion avoidance; the usable window is its floor.
	congestionWindow float64
	// Slow start threshold, aka ssthresh, in segments.
	slowStartThreshold float64

	numDuplicateAcks int
	dupAckThreshold  int
}

var _ SendAlgorithmWithDebugInfos = &renoSender{}

// NewRenoSender makes a new Reno sender
func NewRenoSender(initialCongestionWindow, initialSlowStartThreshold, dupAckThreshold int) SendAlgorithmWithDebugInfos {
	return &renoSender{
		state:              StateSlowStart,
		congestionWindow:   float64(initialCongestionWindow),
		slowStartThreshold: float64(initialSlowStartThreshold),
		dupAckThreshold:    dupAckThreshold,
	}
}

func (r *renoSender) OnNewAck() {
	switch r.state {
	case StateSlowStart:
		// exponential growth, increase by one for each ack
		r.congestionWindow++
		r.numDuplicateAcks = 0
		if r.congestionWindow >= r.slowStartThreshold {
			r.state = StateCongestionAvoidance
		}
	case StateCongestionAvoidance:
		// additive increase, one segment per window's worth of acks
		r.congestionWindow += 1 / math.Floor(r.congestionWindow)
		r.numDuplicateAcks = 0
	case StateFastRecovery:
		// deflate the window back to the slow start threshold
		r.congestionWindow = r.slowStartThreshold
		r.numDuplicateAcks = 0
		r.state = StateCongestionAvoidance
	}
}

func (r *renoSender) OnDuplicateAck() bool {
	if r.state == StateFastRecovery {
		// window inflation: another segment left the network
		r.congestionWindow++
		return false
	}
	r.numDuplicateAcks++
	if r.numDuplicateAcks < r.dupAckThreshold {
		return false
	}
	r.slowStartThreshold = utils.Max(math.Floor(r.congestionWindow/2), minSlowStartThreshold)
	r.congestionWindow = r.slowStartThreshold + float64(r.dupAckThreshold)
	r.state = StateFastRecovery
	return true
}

func (r *renoSender) OnRetransmissionTimeout() {
	r.slowStartThreshold = utils.Max(math.Floor(r.congestionWindow/2), minSlowStartThreshold)
	r.congestionWindow = minCongestionWindow
	r.numDuplicateAcks = 0
	r.state = StateSlowStart
}

func (r *renoSender) GetCongestionWindow() int {
	return int(r.congestionWindow)
}

func (r *renoSender) InSlowStart() bool { return r.state == StateSlowStart }

func (r *renoSender) InRecovery() bool { return r.state == StateFastRecovery }

func (r *renoSender) State() State { return r.state }
