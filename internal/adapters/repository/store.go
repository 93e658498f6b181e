// Package repository persists baseline and latest snapshots per URL.
package repository

import "context"

// Slot names one of the two snapshot namespaces.
type Slot string

// The two slots a snapshot can be written to. Each pipeline run
// overwrites one slot for each URL it processes.
const (
	SlotBaseline Slot = "baseline"
	SlotLatest   Slot = "latest"
)

// Store is durable key-value storage partitioned by slot. Keys are
// produced by urlkey.Key, so storage is partitioned per URL and no
// cross-key coordination is needed.
type Store interface {
	// Put writes data under key in the slot's namespace, replacing any
	// prior value unconditionally.
	Put(ctx context.Context, slot Slot, key string, data []byte) error

	// Get reads the value under key, or ErrNotFound.
	Get(ctx context.Context, slot Slot, key string) ([]byte, error)

	// Close releases backend resources.
	Close() error
}
