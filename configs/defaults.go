package configs

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pulsesense/ppg-monitor/pkg/ppg"
	"github.com/pulsesense/ppg-monitor/pkg/ppg/analyzers"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}

	// Pipeline defaults. Cutoff 0 keeps the full window: on the default
	// 50-sample, 50 ms cadence the bin quantization then stays within a
	// couple of BPM around resting heart rates.
	if !v.IsSet("pipeline.window_length") {
		v.Set("pipeline.window_length", 50)
	}
	if !v.IsSet("pipeline.cutoff") {
		v.Set("pipeline.cutoff", 0)
	}
	if !v.IsSet("pipeline.detrend_spreads") {
		v.Set("pipeline.detrend_spreads", []int{25, 10, 5})
	}
	if !v.IsSet("pipeline.norm_block_size") {
		v.Set("pipeline.norm_block_size", 10)
	}
	if !v.IsSet("pipeline.smooth_ratio_k") {
		v.Set("pipeline.smooth_ratio_k", 20.0)
	}
	if !v.IsSet("pipeline.alpha") {
		v.Set("pipeline.alpha", 0.5)
	}
	if !v.IsSet("pipeline.strategy") {
		v.Set("pipeline.strategy", analyzers.StrategySpectral)
	}

	// Capture defaults
	if !v.IsSet("capture.min_sample_gap") {
		v.Set("capture.min_sample_gap", 40*time.Millisecond)
	}
	if !v.IsSet("capture.feed_depth") {
		v.Set("capture.feed_depth", 1)
	}
	if !v.IsSet("capture.finger.red_floor") {
		v.Set("capture.finger.red_floor", ppg.DefaultRedFloor)
	}
	if !v.IsSet("capture.finger.green_ceil") {
		v.Set("capture.finger.green_ceil", ppg.DefaultGreenCeil)
	}
	if !v.IsSet("capture.finger.blue_ceil") {
		v.Set("capture.finger.blue_ceil", ppg.DefaultBlueCeil)
	}

	// Simulator defaults
	if !v.IsSet("simulator.rate_bpm") {
		v.Set("simulator.rate_bpm", 72.0)
	}
	if !v.IsSet("simulator.sample_interval") {
		v.Set("simulator.sample_interval", 50*time.Millisecond)
	}
	if !v.IsSet("simulator.baseline") {
		v.Set("simulator.baseline", 180.0)
	}
	if !v.IsSet("simulator.amplitude") {
		v.Set("simulator.amplitude", 8.0)
	}
	if !v.IsSet("simulator.drift_amp") {
		v.Set("simulator.drift_amp", 3.0)
	}
	if !v.IsSet("simulator.noise_amp") {
		v.Set("simulator.noise_amp", 0.5)
	}
	if !v.IsSet("simulator.duration") {
		v.Set("simulator.duration", 30*time.Second)
	}
}
