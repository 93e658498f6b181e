package scorer

import "errors"

// Sentinel kinds for scorer adapter errors.
var (
	// ErrMalformedOutput means the external tool answered but its output
	// is missing the expected category scores.
	ErrMalformedOutput = errors.New("malformed scorer output")
)
