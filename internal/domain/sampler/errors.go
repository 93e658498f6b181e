package sampler

import "errors"

// Sentinel kinds for sampling errors.
var (
	ErrAllRunsFailed = errors.New("all sampling runs failed")
)
