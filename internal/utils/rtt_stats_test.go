package utils

import (
	"testing"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestRTTStatsDefaultsBeforeUpdate(t *testing.T) {
	rttStats := NewRTTStats()
	require.False(t, rttStats.HasMeasurement())
	require.Zero(t, rttStats.MinRTT())
	require.Zero(t, rttStats.SmoothedRTT())
	require.Equal(t, protocol.DefaultInitialRTO, rttStats.RTO())
}

func TestRTTStatsFirstMeasurement(t *testing.T) {
	rttStats := NewRTTStats()
	rttStats.UpdateRTT(100 * time.Millisecond)
	require.True(t, rttStats.HasMeasurement())
	require.Equal(t, 100*time.Millisecond, rttStats.LatestRTT())
	require.Equal(t, 100*time.Millisecond, rttStats.SmoothedRTT())
	require.Equal(t, 50*time.Millisecond, rttStats.MeanDeviation())
	require.Equal(t, 300*time.Millisecond, rttStats.RTO())
}

func TestRTTStatsSmoothedRTT(t *testing.T) {
	rttStats := NewRTTStats()
	rttStats.UpdateRTT(300 * time.Millisecond)
	require.Equal(t, 300*time.Millisecond, rttStats.LatestRTT())
	require.Equal(t, 300*time.Millisecond, rttStats.SmoothedRTT())
	rttStats.UpdateRTT(200 * time.Millisecond)
	require.Equal(t, 200*time.Millisecond, rttStats.LatestRTT())
	require.Equal(t, 287500*time.Microsecond, rttStats.SmoothedRTT())
}

func TestRTTStatsSecondMeasurement(t *testing.T) {
	rttStats := NewRTTStats()
	rttStats.UpdateRTT(100 * time.Millisecond)
	rttStats.UpdateRTT(200 * time.Millisecond)
	// rttvar = 0.75 * 50ms + 0.25 * 100ms
	require.Equal(t, 62500*time.Microsecond, rttStats.MeanDeviation())
	// srtt = 0.875 * 100ms + 0.125 * 200ms
	require.Equal(t, 112500*time.Microsecond, rttStats.SmoothedRTT())
	require.Equal(t, 362500*time.Microsecond, rttStats.RTO())
}

func TestRTTStatsMinRTT(t *testing.T) {
	rttStats := NewRTTStats()
	rttStats.UpdateRTT(200 * time.Millisecond)
	require.Equal(t, 200*time.Millisecond, rttStats.MinRTT())
	rttStats.UpdateRTT(10 * time.Millisecond)
	require.Equal(t, 10*time.Millisecond, rttStats.MinRTT())
	rttStats.UpdateRTT(50 * time.Millisecond)
	require.Equal(t, 10*time.Millisecond, rttStats.MinRTT())
}

func TestRTTStatsUpdateWithBadSendDeltas(t *testing.T) {
	rttStats := NewRTTStats()
	initialRTT := 10 * time.Millisecond
	rttStats.UpdateRTT(initialRTT)
	require.Equal(t, initialRTT, rttStats.MinRTT())
	require.Equal(t, initialRTT, rttStats.SmoothedRTT())

	for _, badSendDelta := range []time.Duration{0, -1000 * time.Microsecond} {
		rttStats.UpdateRTT(badSendDelta)
		require.Equal(t, initialRTT, rttStats.MinRTT())
		require.Equal(t, initialRTT, rttStats.SmoothedRTT())
	}
}

func TestRTTStatsInitialRTO(t *testing.T) {
	rttStats := NewRTTStats()
	rttStats.SetInitialRTO(2 * time.Second)
	require.Equal(t, 2*time.Second, rttStats.RTO())
	// a measurement overrides the initial timeout
	rttStats.UpdateRTT(100 * time.Millisecond)
	require.Equal(t, 300*time.Millisecond, rttStats.RTO())
}

func TestRTTStatsRTOFloor(t *testing.T) {
	rttStats := NewRTTStats()
	rttStats.UpdateRTT(100 * time.Microsecond)
	// srtt + 4*rttvar = 300us, below the timer granularity
	require.Equal(t, protocol.TimerGranularity, rttStats.RTO())
}
