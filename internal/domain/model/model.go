// Package model contains domain models passed between layers.
package model

import "time"

// ScoreSample holds the four category scores produced by a single scorer
// run. Samples are ephemeral: they feed the aggregator and are only kept
// around inside a Snapshot's RawResults for audit.
type ScoreSample struct {
	Performance   int       `json:"performance"`   // 0-100
	Accessibility int       `json:"accessibility"` // 0-100
	BestPractices int       `json:"bestPractices"` // 0-100
	SEO           int       `json:"seo"`           // 0-100
	CapturedAt    time.Time `json:"capturedAt"`
}

// Snapshot is one averaged, persisted measurement for a URL.
// Category fields are the arithmetic mean of the contributing samples,
// rounded half up. Runs is the number of samples that survived.
// A snapshot is written once per pipeline run and never mutated after.
type Snapshot struct {
	URL           string        `json:"url"`
	Runs          int           `json:"runs"`
	Performance   int           `json:"performance"`
	Accessibility int           `json:"accessibility"`
	BestPractices int           `json:"bestPractices"`
	SEO           int           `json:"seo"`
	Timestamp     time.Time     `json:"timestamp"`
	RawResults    []ScoreSample `json:"rawResults,omitempty"`
}

// Delta is the signed per-category difference between a latest snapshot
// and a baseline snapshot (latest minus baseline). Values are not clamped.
// Deltas are recomputed every run and never persisted.
type Delta struct {
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
	SEO           int `json:"seo"`
}
