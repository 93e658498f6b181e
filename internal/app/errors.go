package service

import "errors"

// Sentinel kinds for pipeline errors.
var (
	// ErrAllURLsFailed means not a single configured URL produced a
	// snapshot; the process exits non-zero on it.
	ErrAllURLsFailed = errors.New("all urls failed")
)
