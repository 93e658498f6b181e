// Package report renders snapshots and deltas into display artifacts.
package report

import (
	"context"

	"github.com/pagepulse/pagepulse/internal/domain/model"
)

// Page is the renderer input for one URL: the snapshot just taken, the
// baseline it was compared against (nil on first runs), and the delta
// between them (nil exactly when Baseline is nil).
type Page struct {
	Snapshot model.Snapshot
	Baseline *model.Snapshot
	Delta    *model.Delta
}

// Renderer produces display artifacts from pipeline output. The pipeline
// only hands over its own structures; rendering failures are reported but
// never fail a URL whose snapshot is already persisted.
type Renderer interface {
	// Render writes the artifact for one URL.
	Render(ctx context.Context, page Page) error

	// RenderIndex writes the run-level index over all rendered pages.
	RenderIndex(ctx context.Context, runID string, pages []Page) error
}
