package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/output"
	"github.com/blackwell-systems/codegauge/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show and compare saved analyses",
	Long: `List saved analyses, newest first. Analyses are saved with
'codegauge analyze --save'. IDs may be abbreviated to any unique prefix.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved analysis (default: latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyCompareCmd = &cobra.Command{
	Use:   "compare [previous-id current-id]",
	Short: "Compare two saved analyses (default: the latest two)",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runHistoryCompare,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of analyses to list")
	historyCmd.AddCommand(historyShowCmd, historyCompareCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	analyses, err := db.RecentAnalyses(historyLimit)
	if err != nil {
		return fmt.Errorf("loading analyses: %w", err)
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if analyses == nil {
			analyses = []store.Analysis{}
		}
		return writeJSON(w, analyses)
	}

	if len(analyses) == 0 {
		fmt.Fprintln(w, " No saved analyses. Run 'codegauge analyze --save' to create one.")
		return nil
	}

	fmt.Fprintln(w, output.Section("Analysis History"))
	fmt.Fprintln(w)
	tbl := output.NewTable("ID", "Date", "Source", "Files", "Quality", "Security").AlignRight(3, 4, 5)
	for _, a := range analyses {
		tbl.AddRow(
			shortID(a.ID),
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			sourceLabel(a.Descriptor),
			output.Count(a.Bundle.Overview.FileCount),
			fmt.Sprintf("%d", a.Bundle.Quality.Maintainability),
			fmt.Sprintf("%d", a.Bundle.Security.Score),
		)
	}
	tbl.Fprint(w)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	a, err := loadAnalysis(db, id)
	if err != nil {
		return err
	}

	suggestions, err := db.SuggestionsFor(a.ID)
	if err != nil {
		return fmt.Errorf("loading suggestions: %w", err)
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, map[string]any{"analysis": a, "suggestions": suggestions})
	}

	renderReport(w, analysisReport{ID: a.ID, Descriptor: a.Descriptor, Seed: a.Seed, Bundle: &a.Bundle}, sectionAll)
	if len(suggestions) > 0 {
		fmt.Fprintln(w, output.Section("Saved Suggestions"))
		fmt.Fprintln(w)
		tbl := output.NewTable("Priority", "Title", "Status")
		for _, s := range suggestions {
			status := s.Status
			if status == store.StatusResolved {
				status = output.StyleSuccess.Render(status)
			}
			tbl.AddRow(stylePriority(s.Priority, priorityToLabel(s.Priority)), s.Title, status)
		}
		tbl.Fprint(w)
	}
	return nil
}

func runHistoryCompare(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var prev, curr *store.Analysis
	switch len(args) {
	case 0:
		recent, err := db.RecentAnalyses(2)
		if err != nil {
			return fmt.Errorf("loading analyses: %w", err)
		}
		if len(recent) < 2 {
			return fmt.Errorf("need at least two saved analyses to compare, found %d", len(recent))
		}
		curr, prev = &recent[0], &recent[1]
	case 1:
		return fmt.Errorf("compare takes zero or two analysis IDs")
	default:
		if prev, err = loadAnalysis(db, args[0]); err != nil {
			return err
		}
		if curr, err = loadAnalysis(db, args[1]); err != nil {
			return err
		}
	}

	diff := store.Compare(prev, curr)
	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, diff)
	}
	renderDiff(w, diff)
	return nil
}

func renderDiff(w io.Writer, diff *store.AnalysisDiff) {
	fmt.Fprintln(w, output.Section("Analysis Comparison"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s  %s (%s)\n", output.StyleMuted.Render("previous"),
		shortID(diff.Previous.ID), sourceLabel(diff.Previous.Descriptor))
	fmt.Fprintf(w, " %s   %s (%s)\n\n", output.StyleMuted.Render("current"),
		shortID(diff.Current.ID), sourceLabel(diff.Current.Descriptor))

	tbl := output.NewTable("Metric", "Previous", "Current", "Delta", "Trend").AlignRight(1, 2, 3)
	for _, d := range diff.Deltas {
		tbl.AddRow(
			metricLabel(d.Name),
			fmt.Sprintf("%.0f", d.Previous),
			fmt.Sprintf("%.0f", d.Current),
			fmt.Sprintf("%+.0f", d.Delta),
			output.TrendArrow(d.Delta, store.HigherIsBetter(d.Name)),
		)
	}
	tbl.Fprint(w)
}

// metricLabel returns a display label for a compared metric.
func metricLabel(name string) string {
	labels := map[string]string{
		"file_count":            "Files",
		"line_count":            "Lines of code",
		"contributors":          "Contributors",
		"complexity":            "Complexity",
		"maintainability":       "Maintainability",
		"test_coverage":         "Test coverage",
		"documentation":         "Documentation",
		"vulnerabilities":       "Vulnerabilities",
		"outdated_dependencies": "Outdated dependencies",
		"security_score":        "Security score",
	}
	if l, ok := labels[name]; ok {
		return l
	}
	return name
}
