// Package scoring defines the contract for measuring page quality scores.
package scoring

import (
	"context"

	"github.com/pagepulse/pagepulse/internal/domain/model"
)

// Scorer produces one set of category scores for a URL. Implementations
// wrap an external page-analysis tool and are expected to be expensive:
// callers invoke them strictly one at a time. Timeouts are the
// implementation's concern; the caller only observes success or failure.
type Scorer interface {
	// Score runs one measurement, honoring ctx for cancellation.
	Score(ctx context.Context, url string) (model.ScoreSample, error)
}
