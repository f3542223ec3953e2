package analyzers

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// SpectralAnalyzer estimates the pulse frequency from the magnitude
// spectrum of the conditioned window. The window edges are trimmed by
// cutoff samples before the transform to exclude values distorted by the
// conditioning boundaries.
type SpectralAnalyzer struct {
	cutoff int
	logger logging.Logger
}

// NewSpectralAnalyzer creates a spectral analyzer trimming cutoff samples
// from each window edge.
func NewSpectralAnalyzer(cutoff int, logger logging.Logger) (*SpectralAnalyzer, error) {
	if cutoff < 0 {
		return nil, fmt.Errorf("spectral cutoff must be non-negative, got %d", cutoff)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &SpectralAnalyzer{
		cutoff: cutoff,
		logger: logger.WithFields(logging.Fields{"component": "spectral_analyzer"}),
	}, nil
}

// Name returns the strategy name.
func (a *SpectralAnalyzer) Name() string { return StrategySpectral }

// Analyze computes the real-input FFT of the trimmed window, picks the
// dominant non-DC bin, and converts it to BPM using the wall-clock span of
// the trimmed sub-window rather than an assumed sample rate.
func (a *SpectralAnalyzer) Analyze(samples []ppg.Sample, conditioned []float64) (*Estimate, bool) {
	n := len(conditioned)
	if n != len(samples) {
		a.logger.Warn("conditioned series misaligned with sample window", logging.Fields{
			"samples":     len(samples),
			"conditioned": n,
		})
		return nil, false
	}

	length := n - 2*a.cutoff
	if length < 4 {
		return nil, false
	}
	sub := conditioned[a.cutoff : n-a.cutoff]
	subSamples := samples[a.cutoff : n-a.cutoff]

	spectrum := fft.FFTReal(sub)

	// Only non-conjugate-duplicate bins carry information for real input.
	bins := length/2 + 1
	if len(spectrum) < bins {
		a.logger.Debug("insufficient spectral bins", logging.Fields{
			"have": len(spectrum),
			"need": bins,
		})
		return nil, false
	}

	magnitudes := make([]float64, bins)
	for i := 0; i < bins; i++ {
		magnitudes[i] = cmplx.Abs(spectrum[i])
	}

	// Dominant bin: maximum magnitude excluding the DC component.
	dominant := 1
	for i := 2; i < bins; i++ {
		if magnitudes[i] > magnitudes[dominant] {
			dominant = i
		}
	}
	if magnitudes[dominant] == 0 {
		return nil, false
	}

	weight, peakCount := ScoreConfidence(magnitudes, dominant)
	if peakCount == 0 {
		// Degenerate spectrum, nothing resembling a pulse.
		return nil, false
	}

	elapsedMs := float64(subSamples[length-1].Timestamp.Sub(subSamples[0].Timestamp).Milliseconds())
	if elapsedMs <= 0 {
		return nil, false
	}

	periodMs := elapsedMs / float64(dominant)
	bpm := 60000 / periodMs

	points := make([]SpectrumPoint, bins)
	for i := 0; i < bins; i++ {
		points[i] = SpectrumPoint{
			Bin:       i,
			Frequency: float64(i) * 1000 / elapsedMs,
			Magnitude: magnitudes[i],
		}
	}

	a.logger.Debug("spectral estimate", logging.Fields{
		"dominant_bin": dominant,
		"elapsed_ms":   elapsedMs,
		"bpm":          bpm,
		"weight":       weight,
		"peak_count":   peakCount,
	})

	return &Estimate{BPM: bpm, Weight: weight, Spectrum: points}, true
}
