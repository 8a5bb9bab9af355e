package services

import (
	"errors"
	"math"
)

const (
	StatusStrong    = "strong"
	StatusModerate  = "moderate"
	StatusNeedsWork = "needs-work"
)

var ErrInvalidScore = errors.New("invalid score")

// ClampScore bounds a raw model score into 1..10 and rounds it to the
// nearest integer. Non-finite or wildly out-of-range values are rejected;
// the caller decides what to substitute.
func ClampScore(raw float64) (int, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, ErrInvalidScore
	}
	if raw < -100 || raw > 1000 {
		return 0, ErrInvalidScore
	}
	clamped := math.Min(math.Max(raw, 1), 10)
	return int(math.Round(clamped)), nil
}

// StatusFromScore is the single source of truth for the status label.
// A status is never stored or returned that disagrees with this mapping.
func StatusFromScore(score int) string {
	if score >= 8 {
		return StatusStrong
	}
	if score >= 6 {
		return StatusModerate
	}
	return StatusNeedsWork
}
