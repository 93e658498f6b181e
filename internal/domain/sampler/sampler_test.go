package sampler_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/pagepulse/pagepulse/internal/domain/model"
	"github.com/pagepulse/pagepulse/internal/domain/sampler"
	"github.com/pagepulse/pagepulse/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// scriptedScorer returns canned outcomes in order, one per run.
type scriptedScorer struct {
	outcomes []outcome
	calls    int
}

type outcome struct {
	sample model.ScoreSample
	err    error
}

func (s *scriptedScorer) Score(_ context.Context, _ string) (model.ScoreSample, error) {
	if s.calls >= len(s.outcomes) {
		return model.ScoreSample{}, errors.New("unexpected extra run")
	}
	out := s.outcomes[s.calls]
	s.calls++
	return out.sample, out.err
}

func sampleWith(perf int) outcome {
	return outcome{sample: model.ScoreSample{
		Performance: perf, Accessibility: 70, BestPractices: 70, SEO: 70,
	}}
}

func TestSampler(t *testing.T) {
	Convey("Given a sampler with three runs and no pause", t, func() {
		ctx := context.Background()

		Convey("When every run succeeds", func() {
			scorer := &scriptedScorer{outcomes: []outcome{
				sampleWith(80), sampleWith(90), sampleWith(100),
			}}
			s := sampler.New(scorer, sampler.WithRunCount(3), sampler.WithPause(0))

			samples, err := s.Sample(ctx, "https://example.com/")

			Convey("Then all three samples come back in run order", func() {
				So(err, ShouldBeNil)
				So(len(samples), ShouldEqual, 3)
				So(samples[0].Performance, ShouldEqual, 80)
				So(samples[1].Performance, ShouldEqual, 90)
				So(samples[2].Performance, ShouldEqual, 100)
			})

			Convey("And the scorer was invoked exactly three times", func() {
				So(err, ShouldBeNil)
				So(scorer.calls, ShouldEqual, 3)
			})
		})

		Convey("When exactly one of three runs fails", func() {
			scorer := &scriptedScorer{outcomes: []outcome{
				sampleWith(80),
				{err: errors.New("tool crashed")},
				sampleWith(100),
			}}
			s := sampler.New(scorer, sampler.WithRunCount(3), sampler.WithPause(0))

			samples, err := s.Sample(ctx, "https://example.com/")

			Convey("Then the failed run is dropped, not retried", func() {
				So(err, ShouldBeNil)
				So(len(samples), ShouldEqual, 2)
				So(samples[0].Performance, ShouldEqual, 80)
				So(samples[1].Performance, ShouldEqual, 100)
				So(scorer.calls, ShouldEqual, 3)
			})
		})

		Convey("When every run fails", func() {
			scorer := &scriptedScorer{outcomes: []outcome{
				{err: errors.New("boom")},
				{err: errors.New("boom")},
				{err: errors.New("boom")},
			}}
			s := sampler.New(scorer, sampler.WithRunCount(3), sampler.WithPause(0))

			samples, err := s.Sample(ctx, "https://example.com/")

			Convey("Then sampling fails with ErrAllRunsFailed", func() {
				So(samples, ShouldBeNil)
				So(errors.Is(err, sampler.ErrAllRunsFailed), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "https://example.com/")
			})
		})

		Convey("When the run count is one", func() {
			scorer := &scriptedScorer{outcomes: []outcome{sampleWith(95)}}
			s := sampler.New(scorer, sampler.WithRunCount(1), sampler.WithPause(0))

			samples, err := s.Sample(ctx, "https://example.com/")

			Convey("Then a single sample is returned", func() {
				So(err, ShouldBeNil)
				So(len(samples), ShouldEqual, 1)
			})
		})

		Convey("When the context is cancelled between runs", func() {
			cancelled, cancel := context.WithCancel(ctx)
			scorer := &scriptedScorer{outcomes: []outcome{
				sampleWith(80), sampleWith(90), sampleWith(100),
			}}
			s := sampler.New(scorer, sampler.WithRunCount(3), sampler.WithPause(0))

			cancel()
			_, err := s.Sample(cancelled, "https://example.com/")

			Convey("Then sampling stops with the context error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
