package estimate

// ComplexityBase is the complexity score before randomness and clamping.
// It never decreases as files or lines grow.
func ComplexityBase(files, lines int) int {
	c := 1
	if files > 200 {
		c += 2
	}
	if files > 500 {
		c += 2
	}
	if lines > 10_000 {
		c += 2
	}
	if lines > 50_000 {
		c += 2
	}
	return c
}

// MaintainabilityBase is the maintainability score before randomness and
// clamping. It strictly decreases with complexity and never increases with
// file count.
func MaintainabilityBase(complexity, files int) int {
	score := 80 - (complexity-1)*5
	if files > 300 {
		score -= 10
	}
	if files > 1000 {
		score -= 15
	}
	return score
}

func testCoverageBase(files int, langs []LanguageShare) int {
	coverage := 50
	if files > 100 {
		coverage += 10
	}
	if files > 500 {
		coverage += 15
	}
	if HasLanguage(langs, LangJavaScript) {
		coverage += 5
	}
	if HasLanguage(langs, LangPython) {
		coverage += 10
	}
	return coverage
}

func documentationBase(files int, langs []LanguageShare) int {
	doc := 40
	if files > 100 {
		doc += 15
	}
	if files > 500 {
		doc += 20
	}
	if HasLanguage(langs, LangPython) {
		doc += 10
	}
	if HasLanguage(langs, LangJavaScript) {
		doc += 5
	}
	return doc
}

// EstimateQuality derives the quality scores from volume and language mix.
func EstimateQuality(v Volume, langs []LanguageShare, r Rand) Quality {
	complexity := clamp(ComplexityBase(v.Files, v.Lines)+between(r, 0, 3), 1, 10)
	return Quality{
		Complexity:      complexity,
		Maintainability: clamp(MaintainabilityBase(complexity, v.Files)+jitter(r), 20, 100),
		TestCoverage:    clamp(testCoverageBase(v.Files, langs)+jitter(r), 0, 100),
		Documentation:   clamp(documentationBase(v.Files, langs)+jitter(r), 10, 100),
	}
}
