package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsesense/ppg-monitor/pkg/ppg/analyzers"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestDefaultsProduceValidConfig(t *testing.T) {
	cfg := defaultConfig(t)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Pipeline.WindowLength)
	assert.Equal(t, []int{25, 10, 5}, cfg.Pipeline.DetrendSpreads)
	assert.Equal(t, analyzers.StrategySpectral, cfg.Pipeline.Strategy)
	assert.Equal(t, 40*time.Millisecond, cfg.Capture.MinSampleGap)
	assert.Equal(t, 72.0, cfg.Simulator.RateBPM)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window", func(c *Config) { c.Pipeline.WindowLength = 0 }},
		{"alpha zero", func(c *Config) { c.Pipeline.Alpha = 0 }},
		{"alpha above one", func(c *Config) { c.Pipeline.Alpha = 1.01 }},
		{"negative cutoff", func(c *Config) { c.Pipeline.Cutoff = -2 }},
		{"block larger than window", func(c *Config) { c.Pipeline.NormBlockSize = 99 }},
		{"zero ratio", func(c *Config) { c.Pipeline.SmoothRatioK = 0 }},
		{"bad spread", func(c *Config) { c.Pipeline.DetrendSpreads = []int{10, 0} }},
		{"bad strategy", func(c *Config) { c.Pipeline.Strategy = "autocorrelation" }},
		{"negative gap", func(c *Config) { c.Capture.MinSampleGap = -time.Second }},
		{"zero feed depth", func(c *Config) { c.Capture.FeedDepth = 0 }},
		{"zero sim rate", func(c *Config) { c.Simulator.RateBPM = 0 }},
		{"zero sim interval", func(c *Config) { c.Simulator.SampleInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	v := viper.New()
	v.Set("pipeline.window_length", 64)
	v.Set("pipeline.strategy", analyzers.StrategyThreshold)
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 64, cfg.Pipeline.WindowLength)
	assert.Equal(t, analyzers.StrategyThreshold, cfg.Pipeline.Strategy)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.5, cfg.Pipeline.Alpha)
}
