package analyzers

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// ThresholdAnalyzer estimates the pulse rate in the time domain by timing
// rising edges through an adaptive threshold halfway between the window
// mean and maximum. It needs no spectrum, so its estimates carry a fixed
// weight of 1.
type ThresholdAnalyzer struct {
	logger logging.Logger
}

// NewThresholdAnalyzer creates a threshold-crossing analyzer.
func NewThresholdAnalyzer(logger logging.Logger) *ThresholdAnalyzer {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &ThresholdAnalyzer{
		logger: logger.WithFields(logging.Fields{"component": "threshold_analyzer"}),
	}
}

// Name returns the strategy name.
func (a *ThresholdAnalyzer) Name() string { return StrategyThreshold }

// Analyze scans the conditioned window for rising edges and averages the
// instantaneous BPM of consecutive edge pairs. Fewer than two edges means
// no estimate for this cycle.
func (a *ThresholdAnalyzer) Analyze(samples []ppg.Sample, conditioned []float64) (*Estimate, bool) {
	if len(conditioned) < 2 || len(conditioned) != len(samples) {
		return nil, false
	}

	mean := stat.Mean(conditioned, nil)
	max := floats.Max(conditioned)
	threshold := (mean + max) / 2

	var edges []int
	for i := 1; i < len(conditioned); i++ {
		if conditioned[i-1] < threshold && conditioned[i] >= threshold {
			edges = append(edges, i)
		}
	}
	if len(edges) < 2 {
		return nil, false
	}

	var bpmSum float64
	pairs := 0
	for i := 1; i < len(edges); i++ {
		deltaMs := float64(samples[edges[i]].Timestamp.Sub(samples[edges[i-1]].Timestamp).Milliseconds())
		if deltaMs <= 0 {
			continue
		}
		bpmSum += 60000 / deltaMs
		pairs++
	}
	if pairs == 0 {
		return nil, false
	}

	bpm := bpmSum / float64(pairs)

	a.logger.Debug("threshold estimate", logging.Fields{
		"threshold":  threshold,
		"edge_count": len(edges),
		"bpm":        bpm,
	})

	return &Estimate{BPM: bpm, Weight: 1}, true
}
