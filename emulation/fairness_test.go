package emulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJainIndex(t *testing.T) {
	require.Zero(t, JainIndex(nil))
	require.Zero(t, JainIndex([]float64{0, 0}))

	// equal allocations are perfectly fair
	require.InDelta(t, 1.0, JainIndex([]float64{5, 5, 5, 5}), 1e-9)
	// one flow starved completely
	require.InDelta(t, 0.5, JainIndex([]float64{1, 0}), 1e-9)
	// 6² / (3 * 14)
	require.InDelta(t, 6.0/7.0, JainIndex([]float64{1, 2, 3}), 1e-9)
}

func TestFairnessFromDurations(t *testing.T) {
	require.InDelta(t, 1.0, FairnessFromDurations([]time.Duration{time.Second, time.Second}), 1e-9)
	// rates 1 and 1/3: (4/3)² / (2 * 10/9)
	require.InDelta(t, 0.8, FairnessFromDurations([]time.Duration{time.Second, 3 * time.Second}), 1e-9)
}
