package scorer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pagepulse/pagepulse/internal/adapters/scorer"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeTool writes a shell script standing in for the lighthouse binary.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "lighthouse")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o700); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

func TestCLIScorer(t *testing.T) {
	Convey("Given a CLI scorer", t, func() {
		ctx := context.Background()

		Convey("When the tool emits a valid JSON report", func() {
			bin := fakeTool(t, `cat <<'EOF'
{"categories":{"performance":{"score":0.8},"accessibility":{"score":0.9},"best-practices":{"score":0.85},"seo":{"score":0.95}}}
EOF`)
			sample, err := scorer.NewCLIScorer(bin).Score(ctx, "https://example.com/")

			Convey("Then the category scores are extracted", func() {
				So(err, ShouldBeNil)
				So(sample.Performance, ShouldEqual, 80)
				So(sample.Accessibility, ShouldEqual, 90)
				So(sample.BestPractices, ShouldEqual, 85)
				So(sample.SEO, ShouldEqual, 95)
			})
		})

		Convey("When the tool exits non-zero", func() {
			bin := fakeTool(t, `echo "CHROME_NOT_FOUND" 1>&2; exit 1`)
			_, err := scorer.NewCLIScorer(bin).Score(ctx, "https://example.com/")

			Convey("Then scoring fails with the tool's complaint", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "CHROME_NOT_FOUND")
			})
		})

		Convey("When the tool prints garbage", func() {
			bin := fakeTool(t, `echo "Fetching page..."`)
			_, err := scorer.NewCLIScorer(bin).Score(ctx, "https://example.com/")

			Convey("Then it reports malformed output", func() {
				So(errors.Is(err, scorer.ErrMalformedOutput), ShouldBeTrue)
			})
		})

		Convey("When the binary does not exist", func() {
			_, err := scorer.NewCLIScorer("/nonexistent/lighthouse").Score(ctx, "https://example.com/")

			Convey("Then scoring fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
