package repository

import "github.com/pagepulse/pagepulse/pkg/logger"

// Option applies a configuration option to the Repository.
type Option func(*Repository)

// WithLogger sets a custom logger for the repository.
func WithLogger(log logger.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}
