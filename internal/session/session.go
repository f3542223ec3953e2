// Package session implements a single PPG measurement session: the
// rolling sample window, the per-sample conditioning and frequency
// analysis pipeline, session-level BPM smoothing, and the callback
// surface toward the consuming application.
package session

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
	"github.com/pulsesense/ppg-monitor/pkg/ppg/analyzers"
	"github.com/pulsesense/ppg-monitor/pkg/ppg/filter"
)

// Callbacks is the event surface a consumer registers on a session. Any
// callback may be nil. Callbacks fire synchronously from Push, on the
// pushing goroutine.
type Callbacks struct {
	// OnBPM fires once per cycle that produced a frequency estimate, with
	// the session-smoothed BPM and the raw confidence weight.
	OnBPM func(bpm int, weight float64)
	// OnConditioned fires once per full-window cycle with the conditioned
	// series, timestamp-aligned with the raw window.
	OnConditioned func(series []ppg.Sample)
	// OnSpectrum fires when the spectral strategy produced a spectrum.
	OnSpectrum func(points []analyzers.SpectrumPoint)
	// OnSignalQuality fires on every color reading pushed via PushColor.
	OnSignalQuality func(present bool)
}

// Config holds the tunables for one measurement session.
type Config struct {
	// WindowLen is the rolling window length N, typically 50-70.
	WindowLen int
	// Cutoff is the number of samples trimmed from each window edge
	// before the spectral transform.
	Cutoff int
	// DetrendSpreads are the cascade half-widths, applied in order.
	DetrendSpreads []int
	// NormBlockSize is the block size for normalizer recalibration.
	NormBlockSize int
	// SmoothRatioK is the in-window EMA ratio constant.
	SmoothRatioK float64
	// Alpha is the session-level BPM smoothing factor in (0, 1].
	Alpha float64
	// MinSampleGap is the minimum spacing between accepted samples;
	// samples timestamped inside the gap are dropped, not queued.
	// Zero disables the back-pressure gate.
	MinSampleGap time.Duration
	// Strategy selects the frequency analyzer ("spectral" or "threshold").
	Strategy string
	// FingerPredicate overrides the contact check; nil uses the default.
	FingerPredicate ppg.FingerPredicate
	// Logger is injected; nil uses the package default.
	Logger logging.Logger
}

// Validate checks the configuration per the error taxonomy: invalid
// values are construction failures, never silently clamped.
func (c *Config) Validate() error {
	if c.WindowLen <= 0 {
		return fmt.Errorf("window length must be positive, got %d", c.WindowLen)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("smoothing alpha must be in (0, 1], got %v", c.Alpha)
	}
	if c.Cutoff < 0 {
		return fmt.Errorf("cutoff must be non-negative, got %d", c.Cutoff)
	}
	if c.MinSampleGap < 0 {
		return fmt.Errorf("minimum sample gap must be non-negative, got %v", c.MinSampleGap)
	}
	return nil
}

// Stats are per-session counters, reported on demand and at session end.
type Stats struct {
	Cycles     int     `json:"cycles"`
	Dropped    int     `json:"dropped"`
	NoEstimate int     `json:"no_estimate"`
	Emitted    int     `json:"emitted"`
	MinBPM     int     `json:"min_bpm"`
	MaxBPM     int     `json:"max_bpm"`
	MeanBPM    float64 `json:"mean_bpm"`

	bpmSum float64
}

// Session owns the sample window and the running smoothed BPM for one
// measurement. Sessions are single-writer: Push and PushColor must be
// called from one goroutine at a time.
type Session struct {
	id          uuid.UUID
	cfg         Config
	buffer      *ppg.SampleBuffer
	conditioner *filter.Conditioner
	analyzer    analyzers.Analyzer
	callbacks   Callbacks
	finger      ppg.FingerPredicate
	logger      logging.Logger

	smoothedBPM  float64
	haveEstimate bool
	lastAccepted time.Time
	stats        Stats
}

// New validates the configuration and creates a session.
func New(cfg Config, callbacks Callbacks) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	id := uuid.New()
	logger = logger.WithFields(logging.Fields{
		"component":  "session",
		"session_id": id.String(),
	})

	buffer, err := ppg.NewSampleBuffer(cfg.WindowLen)
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	conditioner, err := filter.NewConditioner(filter.ConditionerConfig{
		WindowLen:      cfg.WindowLen,
		NormBlockSize:  cfg.NormBlockSize,
		DetrendSpreads: cfg.DetrendSpreads,
		SmoothRatioK:   cfg.SmoothRatioK,
	})
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	analyzer, err := analyzers.NewAnalyzer(cfg.Strategy, cfg.Cutoff, logger)
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	finger := cfg.FingerPredicate
	if finger == nil {
		finger = ppg.DefaultFingerPredicate
	}

	logger.Debug("session created", logging.Fields{
		"window_len": cfg.WindowLen,
		"strategy":   analyzer.Name(),
		"alpha":      cfg.Alpha,
		"cutoff":     cfg.Cutoff,
	})

	return &Session{
		id:          id,
		cfg:         cfg,
		buffer:      buffer,
		conditioner: conditioner,
		analyzer:    analyzer,
		callbacks:   callbacks,
		finger:      finger,
		logger:      logger,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Push feeds one sample through the full pipeline. It returns false when
// the sample was dropped by the back-pressure gate. One push runs one
// complete cycle before returning; nothing is queued.
func (s *Session) Push(sample ppg.Sample) bool {
	if s.cfg.MinSampleGap > 0 && !s.lastAccepted.IsZero() &&
		sample.Timestamp.Sub(s.lastAccepted) < s.cfg.MinSampleGap {
		s.stats.Dropped++
		return false
	}
	s.lastAccepted = sample.Timestamp

	s.buffer.Push(sample)
	s.stats.Cycles++

	// A session must accumulate a full window before estimates are valid.
	if !s.buffer.Full() {
		return true
	}

	window := s.buffer.Snapshot()
	values := make([]float64, len(window))
	for i, smp := range window {
		values[i] = smp.Value
	}

	conditioned := s.conditioner.Apply(values)

	if s.callbacks.OnConditioned != nil {
		series := make([]ppg.Sample, len(window))
		for i := range window {
			series[i] = ppg.Sample{Timestamp: window[i].Timestamp, Value: conditioned[i]}
		}
		s.callbacks.OnConditioned(series)
	}

	estimate, ok := s.analyzer.Analyze(window, conditioned)
	if !ok {
		// Transient no-estimate cycle: no event, smoothed BPM unchanged.
		s.stats.NoEstimate++
		return true
	}

	if s.callbacks.OnSpectrum != nil && len(estimate.Spectrum) > 0 {
		s.callbacks.OnSpectrum(estimate.Spectrum)
	}

	// The first valid estimate seeds the running average directly so the
	// session does not have to climb up from zero.
	if !s.haveEstimate {
		s.smoothedBPM = estimate.BPM
		s.haveEstimate = true
	} else {
		s.smoothedBPM = (1-s.cfg.Alpha)*s.smoothedBPM + s.cfg.Alpha*estimate.BPM
	}

	bpm := int(math.Round(s.smoothedBPM))
	s.recordEmission(bpm)

	if s.callbacks.OnBPM != nil {
		s.callbacks.OnBPM(bpm, estimate.Weight)
	}
	return true
}

// PushColor feeds one raw color reading through the finger-contact
// predicate and fires OnSignalQuality.
func (s *Session) PushColor(c ppg.ColorSample) {
	present := s.finger(c)
	if s.callbacks.OnSignalQuality != nil {
		s.callbacks.OnSignalQuality(present)
	}
}

// SmoothedBPM returns the current smoothed BPM and whether any estimate
// has been produced this session.
func (s *Session) SmoothedBPM() (float64, bool) {
	return s.smoothedBPM, s.haveEstimate
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Reset discards all measurement state, starting a fresh session over the
// same configuration. The session keeps its identifier.
func (s *Session) Reset() {
	s.buffer.Reset()
	s.smoothedBPM = 0
	s.haveEstimate = false
	s.lastAccepted = time.Time{}
	s.stats = Stats{}
	s.logger.Debug("session reset")
}

func (s *Session) recordEmission(bpm int) {
	st := &s.stats
	if st.Emitted == 0 || bpm < st.MinBPM {
		st.MinBPM = bpm
	}
	if st.Emitted == 0 || bpm > st.MaxBPM {
		st.MaxBPM = bpm
	}
	st.Emitted++
	st.bpmSum += float64(bpm)
	st.MeanBPM = st.bpmSum / float64(st.Emitted)
}
