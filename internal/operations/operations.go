// Package operations provides the illustrative code operations shown next
// to an analysis: keyword search, refactoring suggestions and performance
// tips. All results come from fixed tables; no source is read.
package operations

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// Match is a single code location returned by Search.
type Match struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Code    string `json:"code" yaml:"code"`
	Context string `json:"context" yaml:"context"`
}

var codeIndex = []Match{
	{File: "src/components/App.js", Line: 45, Code: "const handleSubmit = async () => {", Context: "Function definition for form submission handling"},
	{File: "src/utils/helpers.js", Line: 23, Code: "export const validateInput = (input) => {", Context: "Input validation utility function"},
	{File: "src/components/Button.js", Line: 12, Code: "const className = `btn btn-${variant} ${disabled ? 'btn-disabled' : ''}`;", Context: "Button component styling with dynamic classes"},
	{File: "src/hooks/useAuth.js", Line: 18, Code: "const [user, setUser] = useState(null);", Context: "Authentication state management"},
	{File: "src/services/api.js", Line: 34, Code: "const response = await fetch(endpoint);", Context: "API service function with fetch request"},
}

// Search returns the indexed locations whose code, file or context contains
// query, ignoring case. An empty query matches nothing. A non-empty
// pathPattern further restricts results to files matching the glob.
func Search(query, pathPattern string) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	var pathFilter glob.Glob
	if pathPattern != "" {
		g, err := glob.Compile(pathPattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling path pattern %q: %w", pathPattern, err)
		}
		pathFilter = g
	}

	q := strings.ToLower(query)
	var out []Match
	for _, m := range codeIndex {
		if pathFilter != nil && !pathFilter.Match(m.File) {
			continue
		}
		if strings.Contains(strings.ToLower(m.Code), q) ||
			strings.Contains(strings.ToLower(m.File), q) ||
			strings.Contains(strings.ToLower(m.Context), q) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Level rates impact or effort.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Refactoring is one suggested code change.
type Refactoring struct {
	Type       string `json:"type" yaml:"type"`
	File       string `json:"file" yaml:"file"`
	Line       int    `json:"line" yaml:"line"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
	Impact     Level  `json:"impact" yaml:"impact"`
	Effort     Level  `json:"effort" yaml:"effort"`
	Reason     string `json:"reason" yaml:"reason"`
}

var repositoryRefactorings = []Refactoring{
	{
		Type: "function", File: "src/components/App.js", Line: 45,
		Suggestion: "Extract form validation logic into a separate utility function for better reusability",
		Impact:     LevelHigh, Effort: LevelMedium,
		Reason: "Form validation is repeated across multiple components",
	},
	{
		Type: "component", File: "src/components/Button.js", Line: 8,
		Suggestion: "Split large Button component into smaller, focused components (PrimaryButton, SecondaryButton)",
		Impact:     LevelMedium, Effort: LevelHigh,
		Reason: "Button component handles too many variants and responsibilities",
	},
}

var archiveRefactorings = []Refactoring{
	{
		Type: "variable", File: "src/utils/helpers.js", Line: 15,
		Suggestion: "Use const instead of let for variables that are not reassigned",
		Impact:     LevelLow, Effort: LevelLow,
		Reason: "Improves code readability and prevents accidental reassignment",
	},
}

var commonRefactorings = []Refactoring{
	{
		Type: "import", File: "src/index.js", Line: 3,
		Suggestion: "Group related imports together and add import sorting",
		Impact:     LevelLow, Effort: LevelLow,
		Reason: "Better code organization and readability",
	},
	{
		Type: "error", File: "src/components/Form.js", Line: 67,
		Suggestion: "Implement proper error boundary for form submission errors",
		Impact:     LevelHigh, Effort: LevelMedium,
		Reason: "Current error handling could crash the application",
	},
}

// Refactorings returns the suggestions for a project of the given kind.
// Kind-specific entries come first, followed by the common ones.
func Refactorings(kind estimate.SourceKind) []Refactoring {
	var out []Refactoring
	switch kind {
	case estimate.KindRepository:
		out = append(out, repositoryRefactorings...)
	case estimate.KindArchive:
		out = append(out, archiveRefactorings...)
	}
	return append(out, commonRefactorings...)
}

// PerformanceTips returns general optimization hints.
func PerformanceTips() []string {
	return []string{
		"Implement code splitting for better performance",
		"Optimize image assets",
		"Use React.memo for expensive components",
		"Implement lazy loading",
	}
}
