package app

// Aggregator maintains the confidence-weighted running BPM average over a
// session's emissions. Weights are squared before aggregation so that
// low-confidence reads contribute little to the average.
type Aggregator struct {
	weightedSum float64
	weightSum   float64
	count       int
}

// Add folds one emitted estimate into the running average.
func (a *Aggregator) Add(bpm int, weight float64) {
	w := weight * weight
	a.weightedSum += w * float64(bpm)
	a.weightSum += w
	a.count++
}

// Average returns the confidence-weighted mean BPM; false when nothing
// has been aggregated (or every weight was zero).
func (a *Aggregator) Average() (float64, bool) {
	if a.weightSum == 0 {
		return 0, false
	}
	return a.weightedSum / a.weightSum, true
}

// Count returns the number of aggregated estimates.
func (a *Aggregator) Count() int {
	return a.count
}
