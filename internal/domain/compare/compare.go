// Package compare computes per-category deltas between snapshots.
package compare

import (
	"github.com/pagepulse/pagepulse/internal/domain/model"
)

// Delta returns latest minus baseline for each category, or nil when
// there is no baseline to compare against. Values are not clamped and
// may be negative.
func Delta(latest model.Snapshot, baseline *model.Snapshot) *model.Delta {
	if baseline == nil {
		return nil
	}
	return &model.Delta{
		Performance:   latest.Performance - baseline.Performance,
		Accessibility: latest.Accessibility - baseline.Accessibility,
		BestPractices: latest.BestPractices - baseline.BestPractices,
		SEO:           latest.SEO - baseline.SEO,
	}
}
