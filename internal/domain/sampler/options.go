package sampler

import (
	"time"

	"github.com/pagepulse/pagepulse/pkg/logger"
)

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithRunCount sets the number of scorer runs per URL.
func WithRunCount(count int) Option {
	return func(s *Sampler) {
		if count > 0 {
			s.runCount = count
		}
	}
}

// WithPause sets the pause between consecutive runs for one URL.
// This is rate limiting for the external tool, not a correctness knob.
func WithPause(pause time.Duration) Option {
	return func(s *Sampler) {
		if pause >= 0 {
			s.pause = pause
		}
	}
}

// WithLogger sets a custom logger for the sampler.
func WithLogger(log logger.Logger) Option {
	return func(s *Sampler) {
		if log != nil {
			s.log = log
		}
	}
}
