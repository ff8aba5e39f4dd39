package emulation

import "time"

// JainIndex computes Jain's fairness index over a set of rate allocations.
// The index is 1 when all allocations are equal and approaches 1/n as a
// single allocation starves the others.
func JainIndex(allocations []float64) float64 {
	if len(allocations) == 0 {
		return 0
	}
	var sum, sumOfSquares float64
	for _, a := range allocations {
		sum += a
		sumOfSquares += a * a
	}
	if sumOfSquares == 0 {
		return 0
	}
	return sum * sum / (float64(len(allocations)) * sumOfSquares)
}

// FairnessFromDurations computes the Jain index for transfers that moved the
// same amount of data, using the inverse of each completion time as the
// flow's rate allocation.
func FairnessFromDurations(durations []time.Duration) float64 {
	allocations := make([]float64, 0, len(durations))
	for _, d := range durations {
		allocations = append(allocations, 1/d.Seconds())
	}
	return JainIndex(allocations)
}
