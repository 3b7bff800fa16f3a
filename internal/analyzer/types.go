// Package analyzer assembles the estimators into a single metrics bundle
// and owns the asynchronous boundary where a real analysis backend would
// plug in.
package analyzer

import "github.com/blackwell-systems/codegauge/internal/estimate"

// DateLayout is the format of Overview.LastUpdated.
const DateLayout = "2006-01-02"

// Overview is the project summary section of a bundle.
type Overview struct {
	FileCount    int                      `json:"file_count" yaml:"file_count"`
	LineCount    int                      `json:"line_count" yaml:"line_count"`
	Languages    []estimate.LanguageShare `json:"languages" yaml:"languages"`
	Contributors int                      `json:"contributors" yaml:"contributors"`
	LastUpdated  string                   `json:"last_updated" yaml:"last_updated"`
}

// Bundle is the complete result of one analysis. A new analysis replaces
// a bundle wholesale; bundles are never updated in place.
type Bundle struct {
	Overview Overview          `json:"overview" yaml:"overview"`
	Quality  estimate.Quality  `json:"quality" yaml:"quality"`
	Security estimate.Security `json:"security" yaml:"security"`

	// Degraded is set when the basic fallback analysis produced the bundle.
	Degraded bool `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// clone returns a deep copy of b.
func (b *Bundle) clone() *Bundle {
	out := *b
	out.Overview.Languages = append([]estimate.LanguageShare{}, b.Overview.Languages...)
	return &out
}

// Result pairs a bundle with the error that prevented it.
type Result struct {
	Descriptor estimate.Descriptor `json:"descriptor"`
	Seed       uint64              `json:"seed"`
	Bundle     *Bundle             `json:"bundle,omitempty"`
	Err        error               `json:"-"`
}
