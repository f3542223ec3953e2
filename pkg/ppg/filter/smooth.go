package filter

import "fmt"

// Smoother applies a one-pass forward exponential moving average inside a
// single window, suppressing sample-to-sample noise before frequency
// analysis. This is distinct from the session-level BPM smoothing, which
// averages across successive estimates.
type Smoother struct {
	ratioK float64
}

// NewSmoother creates a smoother with EMA ratio ratioK/(windowLen+1).
func NewSmoother(ratioK float64) (*Smoother, error) {
	if ratioK <= 0 {
		return nil, fmt.Errorf("smoother ratio constant must be positive, got %v", ratioK)
	}
	return &Smoother{ratioK: ratioK}, nil
}

// Apply returns the smoothed window as a new slice.
func (s *Smoother) Apply(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	ratio := s.ratioK / float64(len(values)+1)
	if ratio > 1 {
		ratio = 1
	}

	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*ratio + out[i-1]*(1-ratio)
	}
	return out
}
