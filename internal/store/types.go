// Package store provides SQLite persistence for analysis history and the
// suggestions derived from it.
package store

import (
	"errors"
	"time"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// ErrAmbiguousID is returned when an ID prefix matches several analyses.
var ErrAmbiguousID = errors.New("ambiguous analysis id")

// Suggestion statuses.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Analysis is one stored analysis run.
type Analysis struct {
	ID         string              `json:"id" yaml:"id"`
	CreatedAt  time.Time           `json:"created_at" yaml:"created_at"`
	Descriptor estimate.Descriptor `json:"descriptor" yaml:"descriptor"`
	Seed       uint64              `json:"seed" yaml:"seed"`
	Bundle     analyzer.Bundle     `json:"bundle" yaml:"bundle"`
}

// Suggestion is a stored recommendation tied to an analysis.
type Suggestion struct {
	ID          int64   `json:"id"`
	AnalysisID  string  `json:"analysis_id"`
	Category    string  `json:"category"`
	Priority    int     `json:"priority"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
	Status      string  `json:"status"` // "open", "resolved"
}

// AnalysisDiff is the comparison between two analyses.
type AnalysisDiff struct {
	Previous *Analysis     `json:"previous"`
	Current  *Analysis     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single metric between analyses.
type MetricDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}
