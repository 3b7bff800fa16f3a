package store

// metricDirection maps metric names to whether higher values are better.
var metricDirection = map[string]bool{
	"file_count":            true,
	"line_count":            true,
	"contributors":          true,
	"complexity":            false,
	"maintainability":       true,
	"test_coverage":         true,
	"documentation":         true,
	"vulnerabilities":       false,
	"outdated_dependencies": false,
	"security_score":        true,
}

// metricOrder is the display order of compared metrics.
var metricOrder = []string{
	"file_count", "line_count", "contributors",
	"complexity", "maintainability", "test_coverage", "documentation",
	"vulnerabilities", "outdated_dependencies", "security_score",
}

func metricValues(a *Analysis) map[string]float64 {
	b := a.Bundle
	return map[string]float64{
		"file_count":            float64(b.Overview.FileCount),
		"line_count":            float64(b.Overview.LineCount),
		"contributors":          float64(b.Overview.Contributors),
		"complexity":            float64(b.Quality.Complexity),
		"maintainability":       float64(b.Quality.Maintainability),
		"test_coverage":         float64(b.Quality.TestCoverage),
		"documentation":         float64(b.Quality.Documentation),
		"vulnerabilities":       float64(b.Security.Vulnerabilities),
		"outdated_dependencies": float64(b.Security.OutdatedDependencies),
		"security_score":        float64(b.Security.Score),
	}
}

// Compare returns per-metric deltas from prev to curr.
func Compare(prev, curr *Analysis) *AnalysisDiff {
	prevVals := metricValues(prev)
	currVals := metricValues(curr)

	deltas := make([]MetricDelta, 0, len(metricOrder))
	for _, name := range metricOrder {
		p, c := prevVals[name], currVals[name]
		delta := c - p

		direction := "unchanged"
		if delta != 0 {
			higherIsBetter := metricDirection[name]
			isPositive := delta > 0
			if isPositive == higherIsBetter {
				direction = "improved"
			} else {
				direction = "regressed"
			}
		}

		deltas = append(deltas, MetricDelta{
			Name:      name,
			Previous:  p,
			Current:   c,
			Delta:     delta,
			Direction: direction,
		})
	}

	return &AnalysisDiff{Previous: prev, Current: curr, Deltas: deltas}
}

// HigherIsBetter reports whether an increase in the named metric is an
// improvement. Unknown metrics are assumed to improve upwards.
func HigherIsBetter(name string) bool {
	better, known := metricDirection[name]
	return better || !known
}
