// Package configs loads and validates the monitor configuration from
// files, environment, and flags via viper.
package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pulsesense/ppg-monitor/pkg/ppg/analyzers"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Signal pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline"`

	// Capture boundary configuration
	Capture CaptureConfig `mapstructure:"capture"`

	// Synthetic source configuration
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

// PipelineConfig contains the conditioning and frequency-analysis tunables
type PipelineConfig struct {
	WindowLength   int     `mapstructure:"window_length"`
	Cutoff         int     `mapstructure:"cutoff"`
	DetrendSpreads []int   `mapstructure:"detrend_spreads"`
	NormBlockSize  int     `mapstructure:"norm_block_size"`
	SmoothRatioK   float64 `mapstructure:"smooth_ratio_k"`
	Alpha          float64 `mapstructure:"alpha"`
	Strategy       string  `mapstructure:"strategy"`
}

// CaptureConfig contains the sample-intake settings
type CaptureConfig struct {
	MinSampleGap time.Duration `mapstructure:"min_sample_gap"`
	FeedDepth    int           `mapstructure:"feed_depth"`
	Finger       FingerConfig  `mapstructure:"finger"`
}

// FingerConfig contains the finger-contact channel thresholds
type FingerConfig struct {
	RedFloor  float64 `mapstructure:"red_floor"`
	GreenCeil float64 `mapstructure:"green_ceil"`
	BlueCeil  float64 `mapstructure:"blue_ceil"`
}

// SimulatorConfig contains the synthetic PPG source settings
type SimulatorConfig struct {
	RateBPM        float64       `mapstructure:"rate_bpm"`
	SampleInterval time.Duration `mapstructure:"sample_interval"`
	Baseline       float64       `mapstructure:"baseline"`
	Amplitude      float64       `mapstructure:"amplitude"`
	DriftAmp       float64       `mapstructure:"drift_amp"`
	NoiseAmp       float64       `mapstructure:"noise_amp"`
	Seed           int64         `mapstructure:"seed"`
	Duration       time.Duration `mapstructure:"duration"`
}

// LoadConfig builds the effective configuration from viper's merged
// sources (defaults, config file, environment, bound flags).
func LoadConfig() (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Validate rejects invalid settings at load time; nothing is clamped.
func (c *Config) Validate() error {
	p := c.Pipeline
	if p.WindowLength <= 0 {
		return fmt.Errorf("pipeline.window_length must be positive, got %d", p.WindowLength)
	}
	if p.Alpha <= 0 || p.Alpha > 1 {
		return fmt.Errorf("pipeline.alpha must be in (0, 1], got %v", p.Alpha)
	}
	if p.Cutoff < 0 {
		return fmt.Errorf("pipeline.cutoff must be non-negative, got %d", p.Cutoff)
	}
	if p.NormBlockSize <= 0 || p.NormBlockSize > p.WindowLength {
		return fmt.Errorf("pipeline.norm_block_size must be in [1, %d], got %d",
			p.WindowLength, p.NormBlockSize)
	}
	if p.SmoothRatioK <= 0 {
		return fmt.Errorf("pipeline.smooth_ratio_k must be positive, got %v", p.SmoothRatioK)
	}
	for _, spread := range p.DetrendSpreads {
		if spread <= 0 {
			return fmt.Errorf("pipeline.detrend_spreads entries must be positive, got %d", spread)
		}
	}
	if p.Strategy != analyzers.StrategySpectral && p.Strategy != analyzers.StrategyThreshold {
		return fmt.Errorf("pipeline.strategy must be %q or %q, got %q",
			analyzers.StrategySpectral, analyzers.StrategyThreshold, p.Strategy)
	}

	if c.Capture.MinSampleGap < 0 {
		return fmt.Errorf("capture.min_sample_gap must be non-negative, got %v", c.Capture.MinSampleGap)
	}
	if c.Capture.FeedDepth < 1 {
		return fmt.Errorf("capture.feed_depth must be at least 1, got %d", c.Capture.FeedDepth)
	}

	s := c.Simulator
	if s.RateBPM <= 0 {
		return fmt.Errorf("simulator.rate_bpm must be positive, got %v", s.RateBPM)
	}
	if s.SampleInterval <= 0 {
		return fmt.Errorf("simulator.sample_interval must be positive, got %v", s.SampleInterval)
	}
	return nil
}
