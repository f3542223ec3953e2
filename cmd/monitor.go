package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsesense/ppg-monitor/internal/app"
)

var (
	// Monitor command flags
	monitorDuration time.Duration
	monitorRateBPM  float64
	monitorStrategy string
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run a live heart rate measurement session",
	Long: `Run a live measurement session against the built-in synthetic
PPG source.

The simulator produces a cardiac-like waveform with configurable rate,
baseline drift, and noise. Samples feed the estimation session exactly
the way camera frames would, including the drop-on-busy back-pressure
behavior, so the command doubles as an end-to-end exercise of the
pipeline.

Examples:
  # Run a 30 second session with defaults
  ppg-monitor monitor

  # Simulate a 100 BPM heart rate for one minute
  ppg-monitor monitor --rate 100 --duration 1m

  # Use the threshold-crossing analyzer and YAML output
  ppg-monitor monitor --strategy threshold -o yaml`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVarP(&monitorDuration, "duration", "d", 0,
		"measurement duration (default from config)")
	monitorCmd.Flags().Float64VarP(&monitorRateBPM, "rate", "r", 0,
		"simulated heart rate in BPM (default from config)")
	monitorCmd.Flags().StringVarP(&monitorStrategy, "strategy", "s", "",
		"estimation strategy (spectral, threshold)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	appCtx := &app.Context{
		ConfigFile:   configFile,
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
		Duration:     monitorDuration,
		Verbose:      verbose,
		Quiet:        quiet,
	}
	if err := appCtx.Setup(); err != nil {
		return err
	}

	if monitorRateBPM > 0 {
		appCtx.Config.Simulator.RateBPM = monitorRateBPM
	}
	if monitorStrategy != "" {
		appCtx.Config.Pipeline.Strategy = monitorStrategy
		if err := appCtx.Config.Validate(); err != nil {
			return err
		}
	}

	monitor := app.NewMonitorApp(appCtx)
	return monitor.Run(context.Background())
}
