// Package filter implements the signal-conditioning stages applied to the
// raw PPG window before frequency analysis: min/max normalization,
// cascaded moving-average detrending, and exponential smoothing.
package filter

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// normScale maps the normalized ratio onto a display-friendly range
const normScale = 10.0

// Normalizer rescales a sample window into [0, normScale] using windowed
// min/max statistics. Every windowLen-th invocation it recalibrates
// against block-averaged extrema so that a single outlier cannot
// permanently skew the scale. Not safe for concurrent use.
type Normalizer struct {
	windowLen int
	blockSize int
	calls     int
}

// NewNormalizer creates a normalizer for windows of windowLen samples,
// using blocks of blockSize samples for the periodic recalibration.
func NewNormalizer(windowLen, blockSize int) (*Normalizer, error) {
	if windowLen <= 0 {
		return nil, fmt.Errorf("normalizer window length must be positive, got %d", windowLen)
	}
	if blockSize <= 0 || blockSize > windowLen {
		return nil, fmt.Errorf("normalizer block size must be in [1, %d], got %d", windowLen, blockSize)
	}
	return &Normalizer{windowLen: windowLen, blockSize: blockSize}, nil
}

// Apply rescales values into [0, normScale] and returns a new slice.
// A flat window (max == min) yields all zeros.
func (n *Normalizer) Apply(values []float64) []float64 {
	n.calls++

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	absMin := floats.Min(values)
	absMax := floats.Max(values)
	span := absMax - absMin
	if span == 0 {
		return out
	}

	if n.calls%n.windowLen == 0 {
		// Recalibration cycle: clamp the normalized ratio into the band
		// spanned by the block-averaged extrema, mapped into ratio space.
		lo := (n.blockExtremum(values, floats.Min) - absMin) / span
		hi := (n.blockExtremum(values, floats.Max) - absMin) / span
		for i, v := range values {
			out[i] = clamp((v-absMin)/span, lo, hi) * normScale
		}
		return out
	}

	for i, v := range values {
		out[i] = (v - absMin) / span * normScale
	}
	return out
}

// blockExtremum splits values into blocks of blockSize and averages the
// per-block extremum selected by pick. A short trailing block is included.
func (n *Normalizer) blockExtremum(values []float64, pick func([]float64) float64) float64 {
	extrema := make([]float64, 0, len(values)/n.blockSize+1)
	for start := 0; start < len(values); start += n.blockSize {
		end := start + n.blockSize
		if end > len(values) {
			end = len(values)
		}
		extrema = append(extrema, pick(values[start:end]))
	}
	return stat.Mean(extrema, nil)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
