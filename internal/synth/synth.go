// Package synth generates a synthetic PPG intensity stream for the
// monitor command and end-to-end tests: a pulse sinusoid riding on a
// camera-like red-channel baseline, with slow drift and deterministic
// noise.
package synth

import (
	"math"
	"math/rand"
	"time"

	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// Simulator produces intensity values for a fixed heart rate. It is
// deterministic for a given seed.
type Simulator struct {
	rateBPM   float64
	baseline  float64
	amplitude float64
	driftAmp  float64
	noiseAmp  float64
	rng       *rand.Rand
}

// Config holds the simulator tunables.
type Config struct {
	RateBPM   float64 // simulated heart rate
	Baseline  float64 // resting intensity level, camera red channel scale
	Amplitude float64 // pulse amplitude
	DriftAmp  float64 // slow baseline wander amplitude
	NoiseAmp  float64 // white noise amplitude
	Seed      int64
}

// New creates a simulator. Zero-valued fields take sensible defaults for
// a fingertip-on-camera signal at 72 BPM.
func New(cfg Config) *Simulator {
	if cfg.RateBPM == 0 {
		cfg.RateBPM = 72
	}
	if cfg.Baseline == 0 {
		cfg.Baseline = 180
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = 8
	}
	return &Simulator{
		rateBPM:   cfg.RateBPM,
		baseline:  cfg.Baseline,
		amplitude: cfg.Amplitude,
		driftAmp:  cfg.DriftAmp,
		noiseAmp:  cfg.NoiseAmp,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Value returns the intensity at the given elapsed time.
func (s *Simulator) Value(elapsed time.Duration) float64 {
	t := elapsed.Seconds()
	pulseHz := s.rateBPM / 60

	pulse := s.amplitude * math.Sin(2*math.Pi*pulseHz*t)
	// Respiration-scale wander, slow against the pulse.
	drift := s.driftAmp * math.Sin(2*math.Pi*0.2*t)
	noise := s.noiseAmp * (2*s.rng.Float64() - 1)

	return s.baseline + pulse + drift + noise
}

// Sample returns a timestamped sample for the given session start and
// elapsed offset.
func (s *Simulator) Sample(start time.Time, elapsed time.Duration) ppg.Sample {
	return ppg.Sample{
		Timestamp: start.Add(elapsed),
		Value:     s.Value(elapsed),
	}
}

// Color returns a covered-lens color reading consistent with the
// intensity at the given elapsed time: saturated red, dark green and
// blue.
func (s *Simulator) Color(elapsed time.Duration) ppg.ColorSample {
	red := s.Value(elapsed)
	if red > 255 {
		red = 255
	}
	return ppg.ColorSample{Red: red, Green: 30, Blue: 12}
}
