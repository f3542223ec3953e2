package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pulsesense/ppg-monitor/internal/session"
	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
	"github.com/pulsesense/ppg-monitor/pkg/ppg/analyzers"
)

// AnalyzeApp replays a recorded sample capture through a fresh session
// and reports every estimate plus the run summary.
type AnalyzeApp struct {
	ctx    *Context
	logger logging.Logger
}

// EstimateRecord is one emitted estimate in the analysis report.
type EstimateRecord struct {
	Cycle  int     `json:"cycle"`
	BPM    int     `json:"bpm"`
	Weight float64 `json:"weight"`
}

// AnalyzeSummary is the offline analysis report.
type AnalyzeSummary struct {
	InputFile   string           `json:"input_file"`
	Samples     int              `json:"samples"`
	Cycles      int              `json:"cycles"`
	Emitted     int              `json:"emitted"`
	NoEstimate  int              `json:"no_estimate"`
	Dropped     int              `json:"dropped"`
	MinBPM      int              `json:"min_bpm"`
	MaxBPM      int              `json:"max_bpm"`
	MeanBPM     float64          `json:"mean_bpm"`
	WeightedBPM float64          `json:"weighted_bpm"`
	Estimates   []EstimateRecord `json:"estimates,omitempty"`
}

// NewAnalyzeApp creates the analyze application.
func NewAnalyzeApp(ctx *Context) *AnalyzeApp {
	return &AnalyzeApp{ctx: ctx, logger: ctx.Logger}
}

// Run loads the capture and replays it synchronously.
func (app *AnalyzeApp) Run(ctx context.Context) error {
	samples, err := LoadSamplesCSV(app.ctx.InputFile)
	if err != nil {
		return fmt.Errorf("failed to load samples: %w", err)
	}
	app.logger.Debug("capture loaded", logging.Fields{
		"input_file": app.ctx.InputFile,
		"samples":    len(samples),
	})

	var (
		aggregator Aggregator
		estimates  []EstimateRecord
		spectra    int
	)

	cfg := sessionConfig(app.ctx.Config, app.logger)
	sess, err := session.New(cfg, session.Callbacks{
		OnBPM: func(bpm int, weight float64) {
			aggregator.Add(bpm, weight)
			estimates = append(estimates, EstimateRecord{
				Cycle:  len(estimates) + 1,
				BPM:    bpm,
				Weight: weight,
			})
		},
		OnSpectrum: func([]analyzers.SpectrumPoint) { spectra++ },
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	for _, sample := range samples {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		sess.Push(sample)
	}

	stats := sess.Stats()
	weighted, _ := aggregator.Average()

	summary := AnalyzeSummary{
		InputFile:   app.ctx.InputFile,
		Samples:     len(samples),
		Cycles:      stats.Cycles,
		Emitted:     stats.Emitted,
		NoEstimate:  stats.NoEstimate,
		Dropped:     stats.Dropped,
		MinBPM:      stats.MinBPM,
		MaxBPM:      stats.MaxBPM,
		MeanBPM:     stats.MeanBPM,
		WeightedBPM: weighted,
	}
	if app.ctx.Verbose {
		summary.Estimates = estimates
	}

	app.logger.Info("analysis complete", logging.Fields{
		"samples":      summary.Samples,
		"emitted":      summary.Emitted,
		"weighted_bpm": summary.WeightedBPM,
		"spectra":      spectra,
	})

	return app.ctx.writeResults(summary)
}

// LoadSamplesCSV reads a two-column capture file: elapsed milliseconds
// and intensity value. A non-numeric first row is treated as a header.
func LoadSamplesCSV(path string) ([]ppg.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSamples(f)
}

// ReadSamples parses capture rows from a reader.
func ReadSamples(r io.Reader) ([]ppg.Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	base := time.Unix(0, 0).UTC()
	var samples []ppg.Sample
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+1, err)
		}
		line++

		offsetMs, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: bad offset %q", line, record[0])
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad value %q", line, record[1])
		}

		offset := time.Duration(math.Round(offsetMs * float64(time.Millisecond)))
		samples = append(samples, ppg.Sample{
			Timestamp: base.Add(offset),
			Value:     value,
		})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("capture contains no samples")
	}
	return samples, nil
}
