package analyzers

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// sineWindow builds n samples of a pure sinusoid at freqHz with the given
// inter-sample interval, returning the aligned sample slice and values.
func sineWindow(n int, freqHz float64, interval time.Duration) ([]ppg.Sample, []float64) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	samples := make([]ppg.Sample, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		t := time.Duration(i) * interval
		v := math.Sin(2 * math.Pi * freqHz * t.Seconds())
		samples[i] = ppg.Sample{Timestamp: base.Add(t), Value: v}
		values[i] = v
	}
	return samples, values
}

func TestNewSpectralAnalyzerRejectsNegativeCutoff(t *testing.T) {
	_, err := NewSpectralAnalyzer(-1, nil)
	assert.Error(t, err)
}

func TestSpectralSineRecoversFrequency(t *testing.T) {
	a, err := NewSpectralAnalyzer(0, nil)
	require.NoError(t, err)

	// 1.2 Hz over 50 samples at 50 ms spans exactly 3 cycles: bin 3.
	samples, values := sineWindow(50, 1.2, 50*time.Millisecond)
	est, ok := a.Analyze(samples, values)
	require.True(t, ok)

	// 60 * 1.2 Hz = 72 BPM, within quantization of the 2450 ms span.
	assert.InDelta(t, 72, est.BPM, 2)
	assert.Greater(t, est.Weight, 0.8)
	assert.LessOrEqual(t, est.Weight, 1.0)
}

func TestSpectralDominantBinWithinOneBin(t *testing.T) {
	a, err := NewSpectralAnalyzer(0, nil)
	require.NoError(t, err)

	// 1.1 Hz at 50 ms over 50 samples falls between bins, so the chosen
	// bin may be off by the quantization but never more than one bin.
	samples, values := sineWindow(50, 1.1, 50*time.Millisecond)
	est, ok := a.Analyze(samples, values)
	require.True(t, ok)

	elapsedMs := 49 * 50.0
	binHz := 1000 / elapsedMs
	dominantHz := est.BPM / 60
	assert.InDelta(t, 1.1, dominantHz, binHz+1e-9)
}

func TestSpectralNeverSelectsDCBin(t *testing.T) {
	a, err := NewSpectralAnalyzer(0, nil)
	require.NoError(t, err)

	// Heavy DC offset on a weak oscillation; bin 0 towers over the rest
	// but must never be chosen.
	samples, values := sineWindow(50, 1.2, 50*time.Millisecond)
	for i := range values {
		values[i] = values[i]*0.1 + 100
	}
	est, ok := a.Analyze(samples, values)
	require.True(t, ok)
	require.NotEmpty(t, est.Spectrum)
	assert.InDelta(t, 72, est.BPM, 2)
}

func TestSpectralFlatWindowNoEstimate(t *testing.T) {
	a, err := NewSpectralAnalyzer(0, nil)
	require.NoError(t, err)

	samples, _ := sineWindow(50, 1.2, 50*time.Millisecond)
	flat := make([]float64, 50)

	_, ok := a.Analyze(samples, flat)
	assert.False(t, ok, "degenerate spectrum must suppress the estimate, not crash")
}

func TestSpectralWindowTooShortAfterTrim(t *testing.T) {
	a, err := NewSpectralAnalyzer(24, nil)
	require.NoError(t, err)

	samples, values := sineWindow(50, 1.2, 50*time.Millisecond)
	_, ok := a.Analyze(samples, values)
	assert.False(t, ok)
}

func TestSpectralMisalignedInputsNoEstimate(t *testing.T) {
	a, err := NewSpectralAnalyzer(0, nil)
	require.NoError(t, err)

	samples, values := sineWindow(50, 1.2, 50*time.Millisecond)
	_, ok := a.Analyze(samples[:49], values)
	assert.False(t, ok)
}

func TestSpectralCutoffTrimsEdges(t *testing.T) {
	a, err := NewSpectralAnalyzer(5, nil)
	require.NoError(t, err)

	// 64 samples at 50 ms trimmed to 54; 1.5 Hz spans ~4 cycles there.
	samples, values := sineWindow(64, 1.5, 50*time.Millisecond)
	est, ok := a.Analyze(samples, values)
	require.True(t, ok)

	elapsedMs := 53 * 50.0
	binHz := 1000 / elapsedMs
	assert.InDelta(t, 1.5, est.BPM/60, binHz+1e-9)
	assert.Len(t, est.Spectrum, 54/2+1)
}

func TestNewAnalyzerFactory(t *testing.T) {
	spectral, err := NewAnalyzer(StrategySpectral, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, StrategySpectral, spectral.Name())

	threshold, err := NewAnalyzer(StrategyThreshold, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyThreshold, threshold.Name())

	_, err = NewAnalyzer("wavelet", 0, nil)
	assert.Error(t, err)
}
