package repository

import "errors"

// Sentinel kinds for snapshot storage errors.
var (
	// ErrNotFound means no record exists for the slot/URL pair. This is
	// the normal first-run state for the baseline slot, never a default
	// zero snapshot.
	ErrNotFound = errors.New("snapshot not found")

	// ErrCorruptRecord means a stored record exists but cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt snapshot record")
)
