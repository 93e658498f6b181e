package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pagepulse/pagepulse/internal/domain/model"
	"github.com/pagepulse/pagepulse/internal/domain/urlkey"
	"github.com/pagepulse/pagepulse/pkg/logger"
	"github.com/pagepulse/pagepulse/pkg/metrics"
)

// Repository serializes snapshots to and from a Store, one record per
// URL key per slot.
type Repository struct {
	store Store
	log   logger.Logger
}

// New constructs a Repository over the given store.
func New(store Store, opts ...Option) *Repository {
	r := &Repository{store: store}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get()
	}
	return r
}

// Save writes the snapshot into the given slot under its URL key,
// replacing any prior record.
func (r *Repository) Save(ctx context.Context, slot Slot, snap model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot for %s: %w", snap.URL, err)
	}

	key := urlkey.Key(snap.URL)
	if err := r.store.Put(ctx, slot, key, data); err != nil {
		return fmt.Errorf("save %s snapshot for %s: %w", slot, snap.URL, err)
	}

	metrics.RecordSnapshotWrite(string(slot))
	r.log.Debug(ctx, "snapshot saved",
		logger.String("url", snap.URL),
		logger.String("slot", string(slot)),
		logger.String("key", key),
		logger.Int("runs", snap.Runs),
		logger.Time("timestamp", snap.Timestamp),
	)
	return nil
}

// Load reads and decodes the snapshot for url from the given slot.
// A missing record is ErrNotFound. A record that exists but does not
// decode is ErrCorruptRecord, except in the baseline slot where it
// degrades to ErrNotFound so a damaged baseline only costs the
// comparison, never the run.
func (r *Repository) Load(ctx context.Context, slot Slot, url string) (*model.Snapshot, error) {
	key := urlkey.Key(url)
	data, err := r.store.Get(ctx, slot, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %s snapshot for %s: %w", slot, url, err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		if slot == SlotBaseline {
			r.log.Warn(ctx, "baseline record is corrupt, treating as absent",
				logger.String("url", url),
				logger.String("key", key),
				logger.Error(err),
			)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrCorruptRecord, slot, key, err)
	}
	return &snap, nil
}
