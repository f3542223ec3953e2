package session

import (
	"context"
	"sync/atomic"

	"github.com/pulsesense/ppg-monitor/pkg/logging"
	"github.com/pulsesense/ppg-monitor/pkg/ppg"
)

// Feed decouples a platform-driven capture producer from the session's
// synchronous cycle through a bounded channel. Samples offered while the
// channel is full are dropped, never queued, so a slow pipeline bounds
// memory instead of building a backlog.
type Feed struct {
	session *Session
	samples chan ppg.Sample
	logger  logging.Logger
	dropped atomic.Int64
}

// NewFeed creates a feed in front of the session with the given channel
// depth. Depth 1 gives the strictest drop-on-busy behavior.
func NewFeed(s *Session, depth int, logger logging.Logger) *Feed {
	if depth < 1 {
		depth = 1
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Feed{
		session: s,
		samples: make(chan ppg.Sample, depth),
		logger:  logger.WithFields(logging.Fields{"component": "feed"}),
	}
}

// Offer hands a sample to the feed without blocking. It returns false
// when the feed is busy and the sample was dropped.
func (f *Feed) Offer(sample ppg.Sample) bool {
	select {
	case f.samples <- sample:
		return true
	default:
		f.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of samples dropped at the feed boundary.
func (f *Feed) Dropped() int64 {
	return f.dropped.Load()
}

// Run pumps samples into the session until the context is canceled. It is
// the only goroutine touching the session, preserving the single-writer
// discipline.
func (f *Feed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			f.logger.Debug("feed stopping", logging.Fields{
				"offer_dropped": f.dropped.Load(),
			})
			return ctx.Err()
		case sample := <-f.samples:
			f.session.Push(sample)
		}
	}
}
