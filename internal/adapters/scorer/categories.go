// Package scorer provides Scorer implementations over external
// page-analysis tools.
package scorer

import (
	"fmt"
	"math"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/model"
)

// categorySet mirrors the category block shared by the PageSpeed API
// response and lighthouse CLI JSON output. Scores are 0-1 floats;
// pointers distinguish a missing category from a zero score.
type categorySet struct {
	Performance   *categoryResult `json:"performance"`
	Accessibility *categoryResult `json:"accessibility"`
	BestPractices *categoryResult `json:"best-practices"`
	SEO           *categoryResult `json:"seo"`
}

type categoryResult struct {
	Score *float64 `json:"score"`
}

// sample converts the category set to a ScoreSample, failing when any
// category or score is absent.
func (c categorySet) sample(capturedAt time.Time) (model.ScoreSample, error) {
	out := model.ScoreSample{CapturedAt: capturedAt}
	for _, cat := range []struct {
		name   string
		result *categoryResult
		dst    *int
	}{
		{"performance", c.Performance, &out.Performance},
		{"accessibility", c.Accessibility, &out.Accessibility},
		{"best-practices", c.BestPractices, &out.BestPractices},
		{"seo", c.SEO, &out.SEO},
	} {
		if cat.result == nil || cat.result.Score == nil {
			return model.ScoreSample{}, fmt.Errorf("%w: missing %s score", ErrMalformedOutput, cat.name)
		}
		*cat.dst = int(math.Round(*cat.result.Score * 100))
	}
	return out, nil
}
