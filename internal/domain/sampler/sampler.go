// Package sampler gathers repeated scorer measurements for one URL.
package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/model"
	"github.com/pagepulse/pagepulse/internal/domain/scoring"
	"github.com/pagepulse/pagepulse/pkg/logger"
	"github.com/pagepulse/pagepulse/pkg/metrics"
)

// Default sampling configuration constants.
const (
	defaultRunCount = 3
	defaultPause    = 2 * time.Second
)

// Sampler invokes a Scorer a fixed number of times in sequence and keeps
// the runs that succeeded. The scorer spawns a browser-class engine, so
// runs never overlap and a short pause separates them.
type Sampler struct {
	scorer   scoring.Scorer
	runCount int
	pause    time.Duration
	log      logger.Logger
}

// New constructs a Sampler around the given scorer.
func New(scorer scoring.Scorer, opts ...Option) *Sampler {
	s := &Sampler{
		scorer:   scorer,
		runCount: defaultRunCount,
		pause:    defaultPause,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// RunCount returns the configured number of runs per URL.
func (s *Sampler) RunCount() int { return s.runCount }

// Sample runs the scorer runCount times for url. Failed runs are dropped,
// not retried; the successes are returned in completion order. When every
// run fails the returned error wraps ErrAllRunsFailed.
func (s *Sampler) Sample(ctx context.Context, url string) ([]model.ScoreSample, error) {
	samples := make([]model.ScoreSample, 0, s.runCount)
	var lastErr error

	for run := 1; run <= s.runCount; run++ {
		if run > 1 {
			if err := s.wait(ctx); err != nil {
				return nil, err
			}
		}

		sample, err := s.scorer.Score(ctx, url)
		if err != nil {
			lastErr = err
			metrics.RecordSampleFailure()
			s.log.Warn(ctx, "scoring run failed",
				logger.String("url", url),
				logger.Int("run", run),
				logger.Error(err),
			)
			continue
		}

		metrics.RecordSample()
		s.log.Debug(ctx, "scoring run completed",
			logger.String("url", url),
			logger.Int("run", run),
			logger.Int("performance", sample.Performance),
		)
		samples = append(samples, sample)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s: last error: %v", ErrAllRunsFailed, url, lastErr)
	}
	return samples, nil
}

// wait pauses between runs, bailing out early on cancellation.
func (s *Sampler) wait(ctx context.Context) error {
	if s.pause == 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("sampling interrupted: %w", ctx.Err())
	case <-time.After(s.pause):
		return nil
	}
}
