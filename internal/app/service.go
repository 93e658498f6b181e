// Package service orchestrates the measurement pipeline: sample,
// aggregate, persist, compare, and render, one URL at a time.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pagepulse/pagepulse/internal/adapters/report"
	"github.com/pagepulse/pagepulse/internal/adapters/repository"
	"github.com/pagepulse/pagepulse/internal/domain/aggregate"
	"github.com/pagepulse/pagepulse/internal/domain/compare"
	"github.com/pagepulse/pagepulse/internal/domain/model"
	"github.com/pagepulse/pagepulse/internal/domain/sampler"
	"github.com/pagepulse/pagepulse/pkg/logger"
	"github.com/pagepulse/pagepulse/pkg/metrics"
)

// state names the steps a URL moves through. completed and failed are
// terminal.
type state string

const (
	stateStart      state = "start"
	stateSampled    state = "sampled"
	stateAggregated state = "aggregated"
	stateCompleted  state = "completed"
	stateFailed     state = "failed"
)

// Service runs the pipeline over the configured URL set. URLs are
// processed strictly one at a time so at most one external measurement
// is in flight; one URL's failure never aborts the rest.
type Service struct {
	sampler  *sampler.Sampler
	repo     *repository.Repository
	renderer report.Renderer

	urls         []string
	baselineMode bool
	keepRaw      bool

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithURLs sets the ordered URL set to process.
func WithURLs(urls []string) Option {
	return func(s *Service) {
		s.urls = urls
	}
}

// WithBaselineMode switches the run to baseline-update mode: snapshots
// go to the baseline slot and no reports are generated.
func WithBaselineMode(enabled bool) Option {
	return func(s *Service) {
		s.baselineMode = enabled
	}
}

// WithKeepRaw controls whether raw per-run samples are persisted inside
// snapshots.
func WithKeepRaw(keep bool) Option {
	return func(s *Service) {
		s.keepRaw = keep
	}
}

// WithRenderer sets the report renderer. Required for normal-mode runs.
func WithRenderer(r report.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs the pipeline service around a sampler and repository.
func New(smp *sampler.Sampler, repo *repository.Repository, opts ...Option) *Service {
	s := &Service{
		sampler: smp,
		repo:    repo,
		keepRaw: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Summary describes the outcome of one pipeline run.
type Summary struct {
	RunID     string
	Succeeded []string
	Failed    []string
}

// Run processes every configured URL in order. It returns
// ErrAllURLsFailed when no URL produced a snapshot; individual failures
// are logged and skipped. An empty aggregation input is a programming
// invariant violation and aborts the run.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	pages := make([]report.Page, 0, len(s.urls))

	s.log.Info(ctx, "pipeline run starting",
		logger.String("runID", summary.RunID),
		logger.Int("urls", len(s.urls)),
		logger.Bool("baselineMode", s.baselineMode),
		logger.Int("runsPerURL", s.sampler.RunCount()),
	)

	for _, url := range s.urls {
		page, err := s.processURL(ctx, url)
		if err != nil {
			if errors.Is(err, aggregate.ErrEmptySampleSet) || ctx.Err() != nil {
				return summary, err
			}
			summary.Failed = append(summary.Failed, url)
			metrics.RecordURLFailed()
			s.log.Error(ctx, "url failed, continuing",
				logger.String("runID", summary.RunID),
				logger.String("url", url),
				logger.Error(err),
			)
			continue
		}
		summary.Succeeded = append(summary.Succeeded, url)
		if page != nil {
			pages = append(pages, *page)
		}
	}

	if !s.baselineMode && s.renderer != nil && len(pages) > 0 {
		if err := s.renderer.RenderIndex(ctx, summary.RunID, pages); err != nil {
			s.log.Error(ctx, "index rendering failed", logger.Error(err))
		}
	}

	metrics.SetLastRun(time.Now().Unix())
	s.log.Info(ctx, "pipeline run finished",
		logger.String("runID", summary.RunID),
		logger.Int("succeeded", len(summary.Succeeded)),
		logger.Int("failed", len(summary.Failed)),
		logger.Any("failedURLs", summary.Failed),
	)

	if len(summary.Succeeded) == 0 {
		return summary, fmt.Errorf("%w: %d urls", ErrAllURLsFailed, len(summary.Failed))
	}
	return summary, nil
}

// processURL drives one URL through the pipeline states. The returned
// page is nil in baseline mode.
func (s *Service) processURL(ctx context.Context, url string) (*report.Page, error) {
	started := time.Now()
	st := stateStart

	samples, err := s.sampler.Sample(ctx, url)
	if err != nil {
		s.transition(ctx, url, st, stateFailed)
		return nil, err
	}
	st = s.transition(ctx, url, st, stateSampled)

	snap, err := aggregate.Snapshot(url, samples)
	if err != nil {
		s.transition(ctx, url, st, stateFailed)
		return nil, err
	}
	if !s.keepRaw {
		snap.RawResults = nil
	}
	st = s.transition(ctx, url, st, stateAggregated)

	if s.baselineMode {
		if err := s.repo.Save(ctx, repository.SlotBaseline, snap); err != nil {
			s.transition(ctx, url, st, stateFailed)
			return nil, err
		}
		s.finish(ctx, url, st, snap, started)
		return nil, nil
	}

	if err := s.repo.Save(ctx, repository.SlotLatest, snap); err != nil {
		s.transition(ctx, url, st, stateFailed)
		return nil, err
	}

	baseline, err := s.repo.Load(ctx, repository.SlotBaseline, url)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		// Comparison is best effort: any baseline read problem costs
		// only the delta, never the persisted snapshot.
		s.log.Warn(ctx, "baseline unavailable, skipping comparison",
			logger.String("url", url),
			logger.Error(err),
		)
		baseline = nil
	}

	page := report.Page{
		Snapshot: snap,
		Baseline: baseline,
		Delta:    compare.Delta(snap, baseline),
	}
	if s.renderer != nil {
		if err := s.renderer.Render(ctx, page); err != nil {
			s.log.Error(ctx, "report rendering failed",
				logger.String("url", url),
				logger.Error(err),
			)
		}
	}

	s.finish(ctx, url, st, snap, started)
	return &page, nil
}

// transition logs a state change and returns the new state.
func (s *Service) transition(ctx context.Context, url string, from, to state) state {
	s.log.Debug(ctx, "state transition",
		logger.String("url", url),
		logger.String("from", string(from)),
		logger.String("to", string(to)),
	)
	return to
}

// finish marks a URL completed and publishes its metrics.
func (s *Service) finish(ctx context.Context, url string, st state, snap model.Snapshot, started time.Time) {
	s.transition(ctx, url, st, stateCompleted)
	metrics.RecordURLProcessed()
	metrics.ObserveURLDuration(time.Since(started).Seconds())
	metrics.SetCategoryScore(url, "performance", snap.Performance)
	metrics.SetCategoryScore(url, "accessibility", snap.Accessibility)
	metrics.SetCategoryScore(url, "best-practices", snap.BestPractices)
	metrics.SetCategoryScore(url, "seo", snap.SEO)
}
