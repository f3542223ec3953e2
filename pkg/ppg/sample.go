// Package ppg provides the core types for photoplethysmography (PPG)
// signal processing: timestamped intensity samples, the rolling sample
// window, and finger-contact detection over raw color readings.
package ppg

import "time"

// Sample is a single timestamped skin-reflectance intensity reading.
// Samples are immutable once created.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// ColorSample is a raw RGB reading from the capture collaborator, used
// only for finger-contact detection. Channel values are in [0, 255].
type ColorSample struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// FingerPredicate reports whether a raw color reading indicates fingertip
// contact with the sensor.
type FingerPredicate func(c ColorSample) bool

// Default finger-contact channel thresholds. A covered camera with the
// torch on saturates red and absorbs green and blue.
const (
	DefaultRedFloor  = 150.0
	DefaultGreenCeil = 100.0
	DefaultBlueCeil  = 50.0
)

// DefaultFingerPredicate is the stock contact check: strong red channel
// with suppressed green and blue.
func DefaultFingerPredicate(c ColorSample) bool {
	return c.Red > DefaultRedFloor && c.Green < DefaultGreenCeil && c.Blue < DefaultBlueCeil
}
