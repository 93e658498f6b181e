// Package aggregate reduces repeated score samples into one snapshot.
package aggregate

import (
	"errors"
	"math"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/model"
)

// Sentinel kinds for aggregation errors.
var (
	// ErrEmptySampleSet indicates a programming error upstream: the
	// sampler never hands over an empty set.
	ErrEmptySampleSet = errors.New("empty sample set")
)

// Snapshot averages the samples into a single snapshot for url. Each
// category is reduced independently to the arithmetic mean of the
// contributing samples, rounded half up. The raw samples are retained in
// RawResults; callers that do not want them persisted strip the field
// before saving. Pure apart from the timestamp.
func Snapshot(url string, samples []model.ScoreSample) (model.Snapshot, error) {
	if len(samples) == 0 {
		return model.Snapshot{}, ErrEmptySampleSet
	}

	var perf, access, best, seo int
	for _, s := range samples {
		perf += s.Performance
		access += s.Accessibility
		best += s.BestPractices
		seo += s.SEO
	}

	n := len(samples)
	raw := make([]model.ScoreSample, n)
	copy(raw, samples)

	return model.Snapshot{
		URL:           url,
		Runs:          n,
		Performance:   mean(perf, n),
		Accessibility: mean(access, n),
		BestPractices: mean(best, n),
		SEO:           mean(seo, n),
		Timestamp:     time.Now(),
		RawResults:    raw,
	}, nil
}

// mean divides and rounds half up. Scores are non-negative, so
// floor(x+0.5) is exact half-up rounding.
func mean(sum, n int) int {
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}
