package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	require.Equal(t, 7, Max(5, 7))
	require.Equal(t, 7, Max(7, 5))
	require.Equal(t, 5.7, Max(5.5, 5.7))
	require.Equal(t, 5, Min(5, 7))
	require.Equal(t, 5, Min(7, 5))
	require.Equal(t, 5.5, Min(5.5, 5.7))
	require.Equal(t, time.Second, Min(time.Second, time.Minute))
}

func TestAbsDuration(t *testing.T) {
	require.Equal(t, time.Microsecond, AbsDuration(time.Microsecond))
	require.Equal(t, time.Microsecond, AbsDuration(-time.Microsecond))
	require.Zero(t, AbsDuration(0))
}

func TestMaxTime(t *testing.T) {
	a := time.Now()
	b := a.Add(time.Second)
	require.Equal(t, b, MaxTime(a, b))
	require.Equal(t, b, MaxTime(b, a))
}
