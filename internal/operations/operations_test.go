package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		pattern   string
		wantFiles []string
	}{
		{"empty query", "", "", nil},
		{"whitespace query", "   ", "", nil},
		{"matches code", "useState", "", []string{"src/hooks/useAuth.js"}},
		{"case insensitive", "FETCH", "", []string{"src/services/api.js"}},
		{"matches file path", "components", "", []string{"src/components/App.js", "src/components/Button.js"}},
		{"matches context", "validation", "", []string{"src/utils/helpers.js"}},
		{"const everywhere", "const", "", []string{
			"src/components/App.js", "src/utils/helpers.js", "src/components/Button.js",
			"src/hooks/useAuth.js", "src/services/api.js",
		}},
		{"path filter", "const", "src/components/*", []string{"src/components/App.js", "src/components/Button.js"}},
		{"path filter star does not cross dirs", "const", "src/*", nil},
		{"super glob crosses dirs", "const", "src/**.js", []string{
			"src/components/App.js", "src/utils/helpers.js", "src/components/Button.js",
			"src/hooks/useAuth.js", "src/services/api.js",
		}},
		{"no match", "goroutine", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Search(tc.query, tc.pattern)
			require.NoError(t, err)

			var files []string
			for _, m := range got {
				files = append(files, m.File)
			}
			assert.Equal(t, tc.wantFiles, files)
		})
	}
}

func TestSearch_BadPattern(t *testing.T) {
	_, err := Search("const", "src/[")
	assert.Error(t, err)
}

func TestRefactorings(t *testing.T) {
	repo := Refactorings(estimate.KindRepository)
	require.Len(t, repo, 4)
	assert.Equal(t, "function", repo[0].Type)
	assert.Equal(t, "component", repo[1].Type)
	assert.Equal(t, "import", repo[2].Type)
	assert.Equal(t, "error", repo[3].Type)

	archive := Refactorings(estimate.KindArchive)
	require.Len(t, archive, 3)
	assert.Equal(t, "variable", archive[0].Type)
	assert.Equal(t, LevelLow, archive[0].Impact)

	assert.Len(t, Refactorings("unknown"), 2)
}

func TestRefactorings_DoesNotAliasTables(t *testing.T) {
	first := Refactorings(estimate.KindArchive)
	first[0].Suggestion = "changed"

	again := Refactorings(estimate.KindArchive)
	assert.NotEqual(t, "changed", again[0].Suggestion)
	assert.Len(t, again, 3)
}

func TestPerformanceTips(t *testing.T) {
	tips := PerformanceTips()
	assert.Len(t, tips, 4)
	assert.Contains(t, tips, "Implement lazy loading")
}
