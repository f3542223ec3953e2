package filter

// Detrender removes baseline wander by subtracting a centered moving
// average from each sample. It is applied in cascade at decreasing
// half-widths to strip drift at multiple timescales.
type Detrender struct {
	spreads []int
}

// NewDetrender creates a detrender cascading over the given half-widths,
// applied in order. An empty spread list makes the detrender a no-op.
func NewDetrender(spreads ...int) *Detrender {
	return &Detrender{spreads: append([]int(nil), spreads...)}
}

// Apply runs the full cascade and returns a new slice.
func (d *Detrender) Apply(values []float64) []float64 {
	out := append([]float64(nil), values...)
	for _, spread := range d.spreads {
		out = detrendOnce(out, spread)
	}
	return out
}

// detrendOnce subtracts the centered moving average of half-width spread.
// The average over the 2*spread window is maintained as a sliding sum, one
// add and one remove per interior index. Boundary indices take the nearest
// interior trend value. Windows too short for any interior index pass
// through unchanged.
func detrendOnce(values []float64, spread int) []float64 {
	n := len(values)
	out := make([]float64, n)
	if spread <= 0 || n < 2*spread+1 {
		copy(out, values)
		return out
	}

	winSize := 2 * spread
	trend := make([]float64, n)

	var sum float64
	for i := 0; i < winSize; i++ {
		sum += values[i]
	}
	trend[spread] = sum / float64(winSize)

	for i := spread + 1; i <= n-spread; i++ {
		sum += values[i+spread-1] - values[i-spread-1]
		trend[i] = sum / float64(winSize)
	}

	// Edge replication
	for i := 0; i < spread; i++ {
		trend[i] = trend[spread]
	}
	for i := n - spread + 1; i < n; i++ {
		trend[i] = trend[n-spread]
	}

	for i := range values {
		out[i] = values[i] - trend[i]
	}
	return out
}
