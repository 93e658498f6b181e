package scoring

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/model"
)

// Score range for derived static scores.
const (
	staticScoreFloor = 40
	staticScoreSpan  = 61 // floor + span - 1 = 100
)

// Option applies a configuration option to the StaticScorer.
type Option func(*StaticScorer)

// WithFixedScores pins the sample returned for a specific URL.
func WithFixedScores(url string, sample model.ScoreSample) Option {
	return func(s *StaticScorer) {
		s.fixed[url] = sample
	}
}

// StaticScorer implements Scorer with deterministic, URL-derived scores.
// It exists for local development and tests, standing in for the external
// page-analysis tool.
type StaticScorer struct {
	fixed map[string]model.ScoreSample
}

// NewStaticScorer creates a static scorer with configuration options.
func NewStaticScorer(opts ...Option) *StaticScorer {
	s := &StaticScorer{
		fixed: make(map[string]model.ScoreSample),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score derives stable category scores from the URL. The same URL always
// yields the same scores, so a baseline run followed by a normal run
// produces an all-zero delta.
func (s *StaticScorer) Score(ctx context.Context, url string) (model.ScoreSample, error) {
	if err := ctx.Err(); err != nil {
		return model.ScoreSample{}, err
	}

	if sample, ok := s.fixed[url]; ok {
		sample.CapturedAt = time.Now()
		return sample, nil
	}

	return model.ScoreSample{
		Performance:   derive(url, "performance"),
		Accessibility: derive(url, "accessibility"),
		BestPractices: derive(url, "best-practices"),
		SEO:           derive(url, "seo"),
		CapturedAt:    time.Now(),
	}, nil
}

// derive hashes url+category into a score in [floor, 100].
func derive(url, category string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(category))
	return staticScoreFloor + int(h.Sum32()%staticScoreSpan)
}
