// Package estimate derives descriptive source-code metrics from a minimal
// project descriptor. Every value is synthesized from heuristic formulas
// driven by an injected random generator; nothing is read from the project.
package estimate

// Volume is the estimated size of a project.
type Volume struct {
	Files int `json:"file_count" yaml:"file_count"`
	Lines int `json:"line_count" yaml:"line_count"`
}

// LanguageShare is one entry of a language breakdown.
type LanguageShare struct {
	Name       string `json:"name" yaml:"name"`
	Percentage int    `json:"percentage" yaml:"percentage"`
	Files      int    `json:"files" yaml:"files"`
}

// Quality holds the code quality scores.
type Quality struct {
	// Complexity is in [1,10].
	Complexity int `json:"complexity" yaml:"complexity"`

	// Maintainability is in [20,100].
	Maintainability int `json:"maintainability" yaml:"maintainability"`

	// TestCoverage is a percentage in [0,100].
	TestCoverage int `json:"test_coverage" yaml:"test_coverage"`

	// Documentation is a percentage in [10,100].
	Documentation int `json:"documentation" yaml:"documentation"`
}

// Security holds the security indicators.
type Security struct {
	Vulnerabilities      int    `json:"vulnerabilities" yaml:"vulnerabilities"`
	OutdatedDependencies int    `json:"outdated_dependencies" yaml:"outdated_dependencies"`
	License              string `json:"license" yaml:"license"`

	// Score is in [30,100].
	Score int `json:"security_score" yaml:"security_score"`
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
