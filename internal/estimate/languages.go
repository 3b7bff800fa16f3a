package estimate

// Language names in catalog order. The last entry is the catch-all.
const (
	LangJavaScript = "JavaScript"
	LangPython     = "Python"
	LangHTMLCSS    = "HTML/CSS"
	LangJava       = "Java"
	LangCPP        = "C++"
	LangGo         = "Go"
	LangRust       = "Rust"
	LangOther      = "Other"
)

// LanguageCatalog is the fixed set of languages a breakdown draws from.
var LanguageCatalog = []string{
	LangJavaScript,
	LangPython,
	LangHTMLCSS,
	LangJava,
	LangCPP,
	LangGo,
	LangRust,
	LangOther,
}

// primaryCandidates is how many leading catalog entries may be primary.
const primaryCandidates = 5

// EstimateLanguages distributes fileCount files across the language
// catalog. A primary language takes 40-70%, the next catalog entry takes
// up to 20-40%, and the remaining entries are filled greedily with 5-20%
// each. Whatever percentage or files are left go to "Other".
//
// The returned slice keeps catalog order and omits entries without files.
// It is nil when fileCount is not positive.
func EstimateLanguages(fileCount int, r Rand) []LanguageShare {
	if fileCount <= 0 {
		return nil
	}
	shares := distribute(fileCount, r)

	var out []LanguageShare
	for _, s := range shares {
		if s.Files > 0 {
			out = append(out, s)
		}
	}
	return out
}

// distribute returns one share per catalog entry, including empty ones.
// Percentages always sum to 100 and files always sum to fileCount.
func distribute(fileCount int, r Rand) []LanguageShare {
	shares := make([]LanguageShare, len(LanguageCatalog))
	for i, name := range LanguageCatalog {
		shares[i].Name = name
	}

	remainingPct := 100
	remainingFiles := fileCount
	assign := func(i, pct int) {
		files := pct * fileCount / 100
		shares[i].Percentage += pct
		shares[i].Files += files
		remainingPct -= pct
		remainingFiles -= files
	}
	budgetLeft := func() bool {
		return remainingPct > 0 && remainingFiles > 0
	}

	primary := r.IntN(primaryCandidates)
	assign(primary, between(r, 40, 70))

	secondary := (primary + 1) % primaryCandidates
	if budgetLeft() {
		assign(secondary, min(remainingPct, between(r, 20, 40)))
	}

	for i := range shares {
		if i == primary || i == secondary {
			continue
		}
		if !budgetLeft() {
			break
		}
		assign(i, min(remainingPct, between(r, 5, 20)))
	}

	other := len(shares) - 1
	shares[other].Percentage += remainingPct
	shares[other].Files += remainingFiles
	return shares
}

// HasLanguage reports whether langs contains an entry named name.
func HasLanguage(langs []LanguageShare, name string) bool {
	for _, l := range langs {
		if l.Name == name {
			return true
		}
	}
	return false
}
