package estimate

// LicenseUnknown is reported when no license can be claimed.
const LicenseUnknown = "Unknown"

// LicenseCatalog is the set of licenses a repository may be assigned.
var LicenseCatalog = []string{
	"MIT License",
	"Apache 2.0",
	"GPL v3",
	"BSD 3-Clause",
	"ISC License",
}

// SecurityScoreBase is the security score before randomness and clamping.
// It decreases with vulnerabilities and outdated dependencies.
func SecurityScoreBase(vulnerabilities, outdated, files int) int {
	score := 100
	score -= vulnerabilities * 15
	score -= min(outdated*3, 20)
	if files > 500 {
		score += 10
	}
	return score
}

// EstimateSecurity derives the security indicators. Only repositories are
// assigned a license; archives report LicenseUnknown.
func EstimateSecurity(kind SourceKind, v Volume, langs []LanguageShare, r Rand) Security {
	vulns := 0
	if v.Files > 200 {
		vulns += r.IntN(3)
	}
	if v.Files > 500 {
		vulns += r.IntN(2)
	}
	if HasLanguage(langs, LangJavaScript) {
		vulns += r.IntN(2)
	}

	outdated := 0
	if v.Files > 100 {
		outdated += r.IntN(5)
	}
	if v.Files > 300 {
		outdated += r.IntN(8)
	}
	if v.Files > 500 {
		outdated += r.IntN(10)
	}

	license := LicenseUnknown
	if kind == KindRepository {
		license = LicenseCatalog[r.IntN(len(LicenseCatalog))]
	}

	return Security{
		Vulnerabilities:      vulns,
		OutdatedDependencies: outdated,
		License:              license,
		Score:                clamp(SecurityScoreBase(vulns, outdated, v.Files)+jitter(r), 30, 100),
	}
}

// EstimateContributors returns a contributor count. Repositories scale
// with file count; archives use a flat range.
func EstimateContributors(kind SourceKind, files int, r Rand) int {
	if kind != KindRepository {
		return between(r, 2, 12)
	}
	switch {
	case files < 100:
		return between(r, 1, 6)
	case files < 500:
		return between(r, 5, 20)
	default:
		return between(r, 20, 70)
	}
}
