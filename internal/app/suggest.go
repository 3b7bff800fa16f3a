package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/output"
	"github.com/blackwell-systems/codegauge/internal/suggest"
)

var (
	suggestFlags    seedFlags
	suggestLimit    int
	suggestCategory string
	suggestID       string
	suggestPlatform string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [url|archive]",
	Short: "Generate ranked improvement recommendations",
	Long: `Generate actionable, ranked recommendations from an analysis. With a
target, the target is analyzed first; otherwise the latest saved analysis
(or the one named by --id) is used. Suggestions are scored by impact and
sorted from highest to lowest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestFlags.register(suggestCmd)
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 10, "Maximum number of suggestions to show")
	suggestCmd.Flags().StringVar(&suggestCategory, "category", "", "Filter by category (documentation, testing, quality, security, dependencies, licensing)")
	suggestCmd.Flags().StringVar(&suggestID, "id", "", "Saved analysis ID or prefix")
	suggestCmd.Flags().StringVar(&suggestPlatform, "platform", "", "Repository platform; detected from the URL when omitted")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx, err := suggestContext(cmd, args)
	if err != nil {
		return err
	}

	suggestions := suggest.NewEngine().Run(ctx)

	if suggestCategory != "" {
		suggestions = filterByCategory(suggestions, suggestCategory)
	}
	if suggestLimit > 0 && len(suggestions) > suggestLimit {
		suggestions = suggestions[:suggestLimit]
	}

	if flagJSON {
		if suggestions == nil {
			suggestions = []suggest.Suggestion{}
		}
		return writeJSON(cmd.OutOrStdout(), suggestions)
	}

	renderSuggestions(cmd.OutOrStdout(), suggestions)
	return nil
}

// suggestContext analyzes the target argument or loads a saved analysis.
func suggestContext(cmd *cobra.Command, args []string) (*suggest.AnalysisContext, error) {
	if len(args) == 1 {
		d, err := parseTarget(args[0], estimate.Platform(suggestPlatform))
		if err != nil {
			return nil, err
		}
		b, err := newAnalyzer(cmd, &suggestFlags).Analyze(cmd.Context(), d)
		if err != nil {
			return nil, err
		}
		return suggest.NewContext(d, b), nil
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	a, err := loadAnalysis(db, suggestID)
	if err != nil {
		return nil, err
	}
	return suggest.NewContext(a.Descriptor, &a.Bundle), nil
}

func filterByCategory(suggestions []suggest.Suggestion, category string) []suggest.Suggestion {
	var filtered []suggest.Suggestion
	for _, s := range suggestions {
		if s.Category == category {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func renderSuggestions(w io.Writer, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, output.Section("Suggestions"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, " No suggestions. The project looks healthy!")
		return
	}

	fmt.Fprintln(w, output.Section("Improvement Suggestions"))
	fmt.Fprintln(w)

	for i, s := range suggestions {
		label := priorityToLabel(s.Priority)
		fmt.Fprintf(w, " #%d %s %s\n", i+1, stylePriority(s.Priority, label), output.StyleBold.Render(s.Title))
		fmt.Fprintf(w, "    Impact: %.1f  |  Category: %s\n", s.ImpactScore, s.Category)
		fmt.Fprintf(w, "    %s\n", s.Description)
		fmt.Fprintln(w)
	}
}

func priorityToLabel(priority int) string {
	switch priority {
	case suggest.PriorityCritical:
		return "[CRITICAL]"
	case suggest.PriorityHigh:
		return "[HIGH]"
	case suggest.PriorityMedium:
		return "[MEDIUM]"
	case suggest.PriorityLow:
		return "[LOW]"
	default:
		return "[UNKNOWN]"
	}
}

func stylePriority(priority int, label string) string {
	switch priority {
	case suggest.PriorityCritical, suggest.PriorityHigh:
		return output.StyleError.Render(label)
	case suggest.PriorityMedium:
		return output.StyleWarning.Render(label)
	default:
		return output.StyleMuted.Render(label)
	}
}
