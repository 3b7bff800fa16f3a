package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/operations"
	"github.com/blackwell-systems/codegauge/internal/output"
)

var searchPath string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed code locations",
	Long: `Search the indexed code locations for a keyword. Matching is
case-insensitive over code, file path and context. --path restricts
results to files matching a glob, where * stays within one directory
and ** crosses directories.

Examples:
  codegauge search useState
  codegauge search const --path 'src/components/*'`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchPath, "path", "", "Glob over file paths")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	matches, err := operations.Search(args[0], searchPath)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if matches == nil {
			matches = []operations.Match{}
		}
		return writeJSON(w, matches)
	}

	fmt.Fprintln(w, output.Section("Code Search"))
	fmt.Fprintln(w)
	if len(matches) == 0 {
		fmt.Fprintf(w, " No matches for %q.\n", args[0])
		return nil
	}

	tbl := output.NewTable("Location", "Code", "Context")
	for _, m := range matches {
		tbl.AddRow(m.File+":"+strconv.Itoa(m.Line), m.Code, output.StyleMuted.Render(m.Context))
	}
	tbl.Fprint(w)
	return nil
}

var refactorKind string

var refactorCmd = &cobra.Command{
	Use:   "refactor",
	Short: "Refactoring suggestions and performance tips",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := estimate.SourceKind(refactorKind)
		if !kind.Valid() {
			return fmt.Errorf("unknown kind %q (want repository or archive)", refactorKind)
		}

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"refactorings":     operations.Refactorings(kind),
				"performance_tips": operations.PerformanceTips(),
			})
		}
		renderOperations(cmd.OutOrStdout(), kind)
		return nil
	},
}

func init() {
	refactorCmd.Flags().StringVar(&refactorKind, "kind", string(estimate.KindRepository), "Source kind (repository or archive)")
	rootCmd.AddCommand(refactorCmd)
}
