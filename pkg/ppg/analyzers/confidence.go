package analyzers

// ScoreConfidence rates how dominant the chosen frequency bin is relative
// to all competing spectral peaks. A local peak is a bin whose magnitude
// strictly exceeds both neighbors; boundary bins cannot be peaks. The
// returned weight is magnitude(dominant) / sum(magnitudes at peaks),
// clamped into [0, 1], alongside the number of peaks found. Zero peaks
// yields weight 0.
func ScoreConfidence(magnitudes []float64, dominant int) (float64, int) {
	var peakSum float64
	peakCount := 0
	for i := 1; i < len(magnitudes)-1; i++ {
		if magnitudes[i] > magnitudes[i-1] && magnitudes[i] > magnitudes[i+1] {
			peakSum += magnitudes[i]
			peakCount++
		}
	}

	if peakCount == 0 || peakSum == 0 {
		return 0, peakCount
	}
	if dominant < 0 || dominant >= len(magnitudes) {
		return 0, peakCount
	}

	weight := magnitudes[dominant] / peakSum
	if weight > 1 {
		// The dominant bin can sit on the array boundary where it is not
		// itself counted as a peak.
		weight = 1
	}
	return weight, peakCount
}
