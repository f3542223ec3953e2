// Package analyzers implements the frequency-estimation strategies that
// turn a conditioned PPG window into a beats-per-minute reading: a
// spectral (FFT) strategy and a time-domain threshold-crossing strategy,
// interchangeable behind the Analyzer interface.
package analyzers

import (
	"fmt"

	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// Strategy names accepted by NewAnalyzer.
const (
	StrategySpectral  = "spectral"
	StrategyThreshold = "threshold"
)

// SpectrumPoint is one frequency bin of the magnitude spectrum.
type SpectrumPoint struct {
	Bin       int     `json:"bin"`
	Frequency float64 `json:"frequency"` // Hz
	Magnitude float64 `json:"magnitude"`
}

// Estimate is a single per-cycle frequency reading. Weight is a raw
// reliability score in [0, 1]; consumers are expected to square it before
// aggregating so that ambiguous reads are penalized super-linearly.
type Estimate struct {
	BPM      float64         `json:"bpm"`
	Weight   float64         `json:"weight"`
	Spectrum []SpectrumPoint `json:"spectrum,omitempty"` // spectral strategy only
}

// Analyzer extracts the dominant oscillation frequency from one
// conditioned sample window. The boolean result is false when no reliable
// estimate exists for this cycle; that is an expected transient condition,
// not an error.
type Analyzer interface {
	Name() string
	Analyze(samples []ppg.Sample, conditioned []float64) (*Estimate, bool)
}

// NewAnalyzer builds the analyzer for the named strategy.
func NewAnalyzer(strategy string, cutoff int, logger logging.Logger) (Analyzer, error) {
	switch strategy {
	case StrategySpectral:
		return NewSpectralAnalyzer(cutoff, logger)
	case StrategyThreshold:
		return NewThresholdAnalyzer(logger), nil
	default:
		return nil, fmt.Errorf("unknown frequency analysis strategy %q", strategy)
	}
}
