package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/model"
	"github.com/pagepulse/pagepulse/pkg/logger"
)

// CLIOption applies a configuration option to the CLIScorer.
type CLIOption func(*CLIScorer)

// WithExtraArgs appends additional flags to each invocation.
func WithExtraArgs(args ...string) CLIOption {
	return func(s *CLIScorer) {
		s.extraArgs = append(s.extraArgs, args...)
	}
}

// WithCLILogger sets a custom logger for the CLI scorer.
func WithCLILogger(log logger.Logger) CLIOption {
	return func(s *CLIScorer) {
		if log != nil {
			s.log = log
		}
	}
}

// CLIScorer implements scoring.Scorer by spawning a lighthouse-compatible
// executable once per run and parsing its JSON report from stdout.
type CLIScorer struct {
	bin       string
	extraArgs []string
	log       logger.Logger
}

// cliReport is the subset of the CLI JSON report the pipeline consumes.
type cliReport struct {
	Categories categorySet `json:"categories"`
}

// NewCLIScorer creates a scorer around the given executable.
func NewCLIScorer(bin string, opts ...CLIOption) *CLIScorer {
	s := &CLIScorer{
		bin: bin,
		extraArgs: []string{
			"--output=json",
			"--quiet",
			"--chrome-flags=--headless=new",
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Score runs one analysis of pageURL. The process inherits ctx, so
// cancellation kills the tool.
func (s *CLIScorer) Score(ctx context.Context, pageURL string) (model.ScoreSample, error) {
	args := append([]string{pageURL}, s.extraArgs...)
	cmd := exec.CommandContext(ctx, s.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	if err := cmd.Run(); err != nil {
		return model.ScoreSample{}, fmt.Errorf("run %s for %s: %w: %s", s.bin, pageURL, err, firstLine(stderr.Bytes()))
	}

	var report cliReport
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		return model.ScoreSample{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	sample, err := report.Categories.sample(time.Now())
	if err != nil {
		return model.ScoreSample{}, err
	}

	s.log.Debug(ctx, "lighthouse run completed",
		logger.String("url", pageURL),
		logger.Duration("took", time.Since(started)),
		logger.Int("performance", sample.Performance),
	)
	return sample, nil
}

// firstLine trims tool stderr down to something loggable.
func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}
