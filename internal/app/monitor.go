package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pulsesense/ppg-monitor/internal/session"
	"github.com/pulsesense/ppg-monitor/internal/synth"
	"github.com/pulsesense/ppg-monitor/pkg/logging"
)

// MonitorApp runs a live measurement session against the synthetic PPG
// source, streaming estimates as they are produced.
type MonitorApp struct {
	ctx    *Context
	logger logging.Logger
}

// MonitorSummary is the end-of-run report.
type MonitorSummary struct {
	SessionID    string  `json:"session_id"`
	DurationSec  float64 `json:"duration_seconds"`
	Cycles       int     `json:"cycles"`
	Emitted      int     `json:"emitted"`
	NoEstimate   int     `json:"no_estimate"`
	Dropped      int     `json:"dropped"`
	FeedDropped  int64   `json:"feed_dropped"`
	MinBPM       int     `json:"min_bpm"`
	MaxBPM       int     `json:"max_bpm"`
	MeanBPM      float64 `json:"mean_bpm"`
	WeightedBPM  float64 `json:"weighted_bpm"`
	LastSmoothed float64 `json:"last_smoothed_bpm"`
}

// NewMonitorApp creates the monitor application.
func NewMonitorApp(ctx *Context) *MonitorApp {
	return &MonitorApp{ctx: ctx, logger: ctx.Logger}
}

// Run executes the measurement for the configured duration.
func (app *MonitorApp) Run(ctx context.Context) error {
	cfg := app.ctx.Config

	var aggregator Aggregator
	callbacks := session.Callbacks{
		OnBPM: func(bpm int, weight float64) {
			aggregator.Add(bpm, weight)
			if !app.ctx.Quiet {
				fmt.Printf("bpm=%d weight=%.3f\n", bpm, weight)
			}
		},
		OnSignalQuality: func(present bool) {
			if !present {
				app.logger.Warn("finger contact lost")
			}
		},
	}

	sess, err := session.New(sessionConfig(cfg, app.logger), callbacks)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	feed := session.NewFeed(sess, cfg.Capture.FeedDepth, app.logger)
	simulator := synth.New(synth.Config{
		RateBPM:   cfg.Simulator.RateBPM,
		Baseline:  cfg.Simulator.Baseline,
		Amplitude: cfg.Simulator.Amplitude,
		DriftAmp:  cfg.Simulator.DriftAmp,
		NoiseAmp:  cfg.Simulator.NoiseAmp,
		Seed:      cfg.Simulator.Seed,
	})

	runCtx, cancel := context.WithTimeout(ctx, app.ctx.Duration)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- feed.Run(runCtx) }()

	app.logger.Info("monitor started", logging.Fields{
		"session_id":   sess.ID().String(),
		"duration_sec": app.ctx.Duration.Seconds(),
		"rate_bpm":     cfg.Simulator.RateBPM,
		"interval_ms":  cfg.Simulator.SampleInterval.Milliseconds(),
	})

	ticker := time.NewTicker(cfg.Simulator.SampleInterval)
	defer ticker.Stop()

producer:
	for {
		select {
		case <-runCtx.Done():
			break producer
		case now := <-ticker.C:
			feed.Offer(simulator.Sample(start, now.Sub(start)))
		}
	}

	// Wait for the pump to stop before touching session state.
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("feed terminated: %w", err)
	}

	stats := sess.Stats()
	smoothed, _ := sess.SmoothedBPM()
	weighted, _ := aggregator.Average()

	summary := MonitorSummary{
		SessionID:    sess.ID().String(),
		DurationSec:  time.Since(start).Seconds(),
		Cycles:       stats.Cycles,
		Emitted:      stats.Emitted,
		NoEstimate:   stats.NoEstimate,
		Dropped:      stats.Dropped,
		FeedDropped:  feed.Dropped(),
		MinBPM:       stats.MinBPM,
		MaxBPM:       stats.MaxBPM,
		MeanBPM:      stats.MeanBPM,
		WeightedBPM:  weighted,
		LastSmoothed: smoothed,
	}

	app.logger.Info("monitor finished", logging.Fields{
		"cycles":       summary.Cycles,
		"emitted":      summary.Emitted,
		"weighted_bpm": summary.WeightedBPM,
	})

	return app.ctx.writeResults(summary)
}
