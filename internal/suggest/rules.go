package suggest

import (
	"fmt"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// Thresholds at which the built-in rules fire.
const (
	documentationThreshold   = 60
	coverageThreshold        = 60
	complexityThreshold      = 7
	maintainabilityThreshold = 50
	securityScoreThreshold   = 60
)

// LowDocumentation suggests documenting public APIs when documentation
// coverage is at or below 60%.
func LowDocumentation(ctx *AnalysisContext) []Suggestion {
	doc := ctx.Quality.Documentation
	if doc > documentationThreshold {
		return nil
	}
	gap := float64(100-doc) / 100
	return []Suggestion{{
		Category: "documentation",
		Priority: PriorityMedium,
		Title:    "Improve documentation coverage",
		Description: fmt.Sprintf(
			"Documentation coverage is %d%%. Add doc comments to exported APIs "+
				"and a README section per top-level module.",
			doc,
		),
		ImpactScore: ComputeImpact(ctx.Overview.FileCount, gap, 2.0, 30.0),
	}}
}

// LowTestCoverage suggests adding tests when coverage is below 60%.
func LowTestCoverage(ctx *AnalysisContext) []Suggestion {
	cov := ctx.Quality.TestCoverage
	if cov >= coverageThreshold {
		return nil
	}
	priority := PriorityMedium
	if cov < 30 {
		priority = PriorityHigh
	}
	gap := float64(100-cov) / 100
	return []Suggestion{{
		Category: "testing",
		Priority: priority,
		Title:    "Raise test coverage",
		Description: fmt.Sprintf(
			"Estimated test coverage is %d%%. Start with tests around the most "+
				"frequently changed modules before broadening coverage.",
			cov,
		),
		ImpactScore: ComputeImpact(ctx.Overview.FileCount, gap, 5.0, 60.0),
	}}
}

// HighComplexity suggests breaking up complex code when the complexity
// score is 7 or higher.
func HighComplexity(ctx *AnalysisContext) []Suggestion {
	c := ctx.Quality.Complexity
	if c < complexityThreshold {
		return nil
	}
	return []Suggestion{{
		Category: "quality",
		Priority: PriorityHigh,
		Title:    "Reduce code complexity",
		Description: fmt.Sprintf(
			"Complexity is %d/10 across %d files. Split long functions and "+
				"flatten deeply nested conditionals.",
			c, ctx.Overview.FileCount,
		),
		ImpactScore: ComputeImpact(ctx.Overview.FileCount, float64(c)/10, 4.0, 45.0),
	}}
}

// LowMaintainability suggests refactoring when maintainability is below 50.
func LowMaintainability(ctx *AnalysisContext) []Suggestion {
	m := ctx.Quality.Maintainability
	if m >= maintainabilityThreshold {
		return nil
	}
	return []Suggestion{{
		Category: "quality",
		Priority: PriorityHigh,
		Title:    "Improve maintainability",
		Description: fmt.Sprintf(
			"Maintainability index is %d. Consolidate duplicated logic and "+
				"separate modules with mixed responsibilities.",
			m,
		),
		ImpactScore: ComputeImpact(ctx.Overview.FileCount, float64(100-m)/100, 3.0, 45.0),
	}}
}

// KnownVulnerabilities flags any reported vulnerabilities as critical.
func KnownVulnerabilities(ctx *AnalysisContext) []Suggestion {
	n := ctx.Security.Vulnerabilities
	if n <= 0 {
		return nil
	}
	return []Suggestion{{
		Category: "security",
		Priority: PriorityCritical,
		Title:    fmt.Sprintf("Fix %d known vulnerabilit%s", n, plural(n, "y", "ies")),
		Description: "Upgrade or patch the affected dependencies and re-run the analysis " +
			"to confirm the findings are resolved.",
		ImpactScore: ComputeImpact(ctx.Overview.FileCount, 1.0, float64(n)*10, 30.0),
	}}
}

// OutdatedDependencies suggests upgrading stale dependencies.
func OutdatedDependencies(ctx *AnalysisContext) []Suggestion {
	n := ctx.Security.OutdatedDependencies
	if n <= 0 {
		return nil
	}
	priority := PriorityLow
	if n >= 5 {
		priority = PriorityMedium
	}
	return []Suggestion{{
		Category: "dependencies",
		Priority: priority,
		Title:    fmt.Sprintf("Update %d outdated dependenc%s", n, plural(n, "y", "ies")),
		Description: "Outdated dependencies accumulate security fixes you are not receiving. " +
			"Schedule upgrades in small batches.",
		ImpactScore: ComputeImpact(n, 1.0, 5.0, 15.0),
	}}
}

// UnknownLicense suggests declaring a license when none was detected.
// Archives and degraded bundles always report an unknown license, so they
// are skipped.
func UnknownLicense(ctx *AnalysisContext) []Suggestion {
	if ctx.Degraded || ctx.Kind == estimate.KindArchive || ctx.Security.License != estimate.LicenseUnknown {
		return nil
	}
	return []Suggestion{{
		Category: "licensing",
		Priority: PriorityMedium,
		Title:    "Declare a license",
		Description: "No license was detected. Add a LICENSE file so others " +
			"know how the code may be used.",
		ImpactScore: ComputeImpact(1, 1.0, 30.0, 5.0),
	}}
}

// WeakSecurityScore suggests a security review when the score is at or
// below 60.
func WeakSecurityScore(ctx *AnalysisContext) []Suggestion {
	s := ctx.Security.Score
	if s > securityScoreThreshold {
		return nil
	}
	return []Suggestion{{
		Category: "security",
		Priority: PriorityHigh,
		Title:    "Schedule a security review",
		Description: fmt.Sprintf(
			"Security score is %d/100. Review input handling and dependency "+
				"hygiene, then enable automated dependency scanning.",
			s,
		),
		ImpactScore: ComputeImpact(ctx.Overview.FileCount, float64(100-s)/100, 3.0, 60.0),
	}}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
