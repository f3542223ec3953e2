package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsesense/ppg-monitor/internal/app"
)

var (
	// Analyze command flags
	analyzeStrategy string
	analyzeWindow   int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [capture-file]",
	Short: "Analyze a recorded sample capture",
	Long: `Replay a recorded PPG capture through the estimation pipeline
and report every estimate plus summary statistics.

The capture is a two-column CSV of elapsed milliseconds and intensity
value; a header row is accepted. Replay is synchronous and driven by
the recorded timestamps, so results are exactly reproducible.

Examples:
  # Analyze a capture with the configured pipeline
  ppg-monitor analyze capture.csv

  # Compare both strategies on the same capture
  ppg-monitor analyze --strategy spectral capture.csv
  ppg-monitor analyze --strategy threshold capture.csv

  # Per-estimate detail as a table
  ppg-monitor analyze -v -o table capture.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "",
		"estimation strategy (spectral, threshold)")
	analyzeCmd.Flags().IntVarP(&analyzeWindow, "window", "w", 0,
		"sample window length (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	appCtx := &app.Context{
		ConfigFile:   configFile,
		InputFile:    args[0],
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		Quiet:        quiet,
	}
	if err := appCtx.Setup(); err != nil {
		return err
	}

	if analyzeStrategy != "" {
		appCtx.Config.Pipeline.Strategy = analyzeStrategy
	}
	if analyzeWindow > 0 {
		appCtx.Config.Pipeline.WindowLength = analyzeWindow
	}
	if analyzeStrategy != "" || analyzeWindow > 0 {
		if err := appCtx.Config.Validate(); err != nil {
			return fmt.Errorf("invalid pipeline override: %w", err)
		}
	}

	analyzer := app.NewAnalyzeApp(appCtx)
	return analyzer.Run(context.Background())
}
