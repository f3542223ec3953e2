// Package app wires configuration, logging, sessions, and output into
// the runnable monitor and analyze applications.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pulsesense/ppg-monitor/configs"
	"github.com/pulsesense/ppg-monitor/internal/output"
	"github.com/pulsesense/ppg-monitor/internal/session"
	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ConfigFile   string
	InputFile    string
	OutputFile   string
	OutputFormat string
	Duration     time.Duration
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// Setup loads configuration and installs the logger. It is called once
// by every command before building its app.
func (ctx *Context) Setup() error {
	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := config.LogLevel
	if ctx.Verbose {
		level = "debug"
	}
	logger := logging.NewLogger(level)
	logging.SetDefaultLogger(logger)

	if ctx.OutputFormat == "" {
		ctx.OutputFormat = config.OutputFormat
	}
	if ctx.Duration == 0 {
		ctx.Duration = config.Simulator.Duration
	}

	ctx.Logger = logger
	ctx.Config = config

	logger.Debug("application context initialized", logging.Fields{
		"config_file":   ctx.ConfigFile,
		"output_format": ctx.OutputFormat,
		"window_length": config.Pipeline.WindowLength,
		"strategy":      config.Pipeline.Strategy,
	})
	return nil
}

// sessionConfig maps the loaded configuration onto a session config,
// including the finger-contact predicate built from the configured
// channel thresholds.
func sessionConfig(cfg *configs.Config, logger logging.Logger) session.Config {
	finger := cfg.Capture.Finger
	predicate := func(c ppg.ColorSample) bool {
		return c.Red > finger.RedFloor && c.Green < finger.GreenCeil && c.Blue < finger.BlueCeil
	}

	return session.Config{
		WindowLen:       cfg.Pipeline.WindowLength,
		Cutoff:          cfg.Pipeline.Cutoff,
		DetrendSpreads:  cfg.Pipeline.DetrendSpreads,
		NormBlockSize:   cfg.Pipeline.NormBlockSize,
		SmoothRatioK:    cfg.Pipeline.SmoothRatioK,
		Alpha:           cfg.Pipeline.Alpha,
		MinSampleGap:    cfg.Capture.MinSampleGap,
		Strategy:        cfg.Pipeline.Strategy,
		FingerPredicate: predicate,
		Logger:          logger,
	}
}

// writeResults formats the payload and writes it to the configured
// output file or stdout.
func (ctx *Context) writeResults(payload any) error {
	formatter := output.ForFormat(ctx.OutputFormat)
	data, err := formatter.Format(payload, true)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if ctx.OutputFile != "" {
		dir := filepath.Dir(ctx.OutputFile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(ctx.OutputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		ctx.Logger.Debug("results written to file", logging.Fields{
			"output_file": ctx.OutputFile,
			"size_bytes":  len(data),
		})
		return nil
	}

	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
