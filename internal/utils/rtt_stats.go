package utils

import (
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
)

const (
	rttAlpha      = 0.125
	oneMinusAlpha = 1 - rttAlpha
	rttBeta       = 0.25
	oneMinusBeta  = 1 - rttBeta
)

// RTTStats provides round-trip statistics
type RTTStats struct {
	hasMeasurement bool

	minRTT        time.Duration
	latestRTT     time.Duration
	smoothedRTT   time.Duration
	meanDeviation time.Duration

	initialRTO time.Duration
}

// NewRTTStats makes a properly initialized RTTStats object
func NewRTTStats() *RTTStats {
	return &RTTStats{initialRTO: protocol.DefaultInitialRTO}
}

// MinRTT returns the minRTT for the entire transfer.
// It returns ZeroDuration if no valid updates have occurred.
func (r *RTTStats) MinRTT() time.Duration { return r.minRTT }

// LatestRTT returns the most recent rtt measurement.
// May return Zero if no valid updates have occurred.
func (r *RTTStats) LatestRTT() time.Duration { return r.latestRTT }

// SmoothedRTT returns the smoothed RTT for the transfer.
// May return Zero if no valid updates have occurred.
func (r *RTTStats) SmoothedRTT() time.Duration { return r.smoothedRTT }

// MeanDeviation gets the mean deviation
func (r *RTTStats) MeanDeviation() time.Duration { return r.meanDeviation }

// HasMeasurement says whether a round-trip was measured yet.
func (r *RTTStats) HasMeasurement() bool { return r.hasMeasurement }

// RTO gets the retransmission timeout: smoothed RTT plus four times the mean
// deviation, floored at the timer granularity.
// Before the first measurement it returns the configured initial timeout.
func (r *RTTStats) RTO() time.Duration {
	if !r.hasMeasurement {
		return r.initialRTO
	}
	rto := r.smoothedRTT + 4*r.meanDeviation
	if rto < protocol.TimerGranularity {
		return protocol.TimerGranularity
	}
	return rto
}

// UpdateRTT updates the RTT based on a new sample.
func (r *RTTStats) UpdateRTT(sendDelta time.Duration) {
	if sendDelta <= 0 {
		return
	}

	if r.minRTT == 0 || r.minRTT > sendDelta {
		r.minRTT = sendDelta
	}

	sample := sendDelta
	r.latestRTT = sample
	// First time call.
	if !r.hasMeasurement {
		r.hasMeasurement = true
		r.smoothedRTT = sample
		r.meanDeviation = sample / 2
	} else {
		r.meanDeviation = time.Duration(oneMinusBeta*float32(r.meanDeviation/time.Microsecond)+rttBeta*float32(AbsDuration(r.smoothedRTT-sample)/time.Microsecond)) * time.Microsecond
		r.smoothedRTT = time.Duration((float32(r.smoothedRTT/time.Microsecond)*oneMinusAlpha)+(float32(sample/time.Microsecond)*rttAlpha)) * time.Microsecond
	}
}

// SetInitialRTO sets the timeout used before the first RTT measurement.
func (r *RTTStats) SetInitialRTO(t time.Duration) {
	r.initialRTO = t
}
