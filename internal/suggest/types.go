// Package suggest provides the recommendation engine and rule types.
package suggest

import (
	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// Priority levels for suggestions.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Suggestion represents an actionable improvement recommendation.
type Suggestion struct {
	Category    string  `json:"category" yaml:"category"`
	Priority    int     `json:"priority" yaml:"priority"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	ImpactScore float64 `json:"impact_score" yaml:"impact_score"`
}

// AnalysisContext provides all data needed by suggest rules to generate
// recommendations. It is built from a finished analysis bundle.
type AnalysisContext struct {
	Kind     estimate.SourceKind `json:"source_kind"`
	Overview analyzer.Overview   `json:"overview"`
	Quality  estimate.Quality    `json:"quality"`
	Security estimate.Security   `json:"security"`

	// Degraded is set when the bundle came from the basic fallback, in
	// which case vulnerability and license data are not meaningful.
	Degraded bool `json:"degraded"`
}

// NewContext builds a rule context for the analysis of d.
func NewContext(d estimate.Descriptor, b *analyzer.Bundle) *AnalysisContext {
	return &AnalysisContext{
		Kind:     d.Kind,
		Overview: b.Overview,
		Quality:  b.Quality,
		Security: b.Security,
		Degraded: b.Degraded,
	}
}

// Rule is a function that examines the analysis context and produces
// zero or more suggestions.
type Rule func(ctx *AnalysisContext) []Suggestion
