package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/model"
	"github.com/pagepulse/pagepulse/pkg/logger"
)

// Default PSI client configuration constants.
const (
	defaultPSITimeout    = 60 * time.Second
	maxPSIResponseBytes  = 16 << 20 // PSI payloads run large; cap reads anyway
	runPagespeedEndpoint = "/runPagespeed"
)

// PSIOption applies a configuration option to the PSIScorer.
type PSIOption func(*PSIScorer)

// WithAPIKey sets the key query parameter sent with each request.
func WithAPIKey(key string) PSIOption {
	return func(s *PSIScorer) {
		s.apiKey = key
	}
}

// WithTimeout bounds one scoring request end to end.
func WithTimeout(timeout time.Duration) PSIOption {
	return func(s *PSIScorer) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// WithPSILogger sets a custom logger for the PSI scorer.
func WithPSILogger(log logger.Logger) PSIOption {
	return func(s *PSIScorer) {
		if log != nil {
			s.log = log
		}
	}
}

// PSIScorer implements scoring.Scorer against a PageSpeed-Insights-style
// HTTP API.
type PSIScorer struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     logger.Logger
}

// psiResponse is the subset of the API response the pipeline consumes.
type psiResponse struct {
	LighthouseResult struct {
		Categories categorySet `json:"categories"`
	} `json:"lighthouseResult"`
}

// NewPSIScorer creates a scorer that calls baseURL's runPagespeed endpoint.
func NewPSIScorer(baseURL string, opts ...PSIOption) *PSIScorer {
	s := &PSIScorer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultPSITimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Score requests one analysis of pageURL and extracts the four category
// scores.
func (s *PSIScorer) Score(ctx context.Context, pageURL string) (model.ScoreSample, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("strategy", "mobile")
	for _, cat := range []string{"performance", "accessibility", "best-practices", "seo"} {
		q.Add("category", cat)
	}
	if s.apiKey != "" {
		q.Set("key", s.apiKey)
	}
	endpoint := s.baseURL + runPagespeedEndpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.ScoreSample{}, fmt.Errorf("build pagespeed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return model.ScoreSample{}, fmt.Errorf("pagespeed request for %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.ScoreSample{}, fmt.Errorf("pagespeed request for %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPSIResponseBytes))
	if err != nil {
		return model.ScoreSample{}, fmt.Errorf("read pagespeed response: %w", err)
	}

	var parsed psiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.ScoreSample{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	sample, err := parsed.LighthouseResult.Categories.sample(time.Now())
	if err != nil {
		return model.ScoreSample{}, err
	}

	s.log.Debug(ctx, "pagespeed run completed",
		logger.String("url", pageURL),
		logger.Duration("took", time.Since(started)),
		logger.Int("performance", sample.Performance),
	)
	return sample, nil
}
