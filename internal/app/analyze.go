package app

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/export"
	"github.com/blackwell-systems/codegauge/internal/intake"
	"github.com/blackwell-systems/codegauge/internal/store"
	"github.com/blackwell-systems/codegauge/internal/suggest"
)

var (
	analyzeFlags       seedFlags
	analyzePlatform    string
	analyzeArchiveName string
	analyzeSize        string
	analyzeSection     string
	analyzeSave        bool
	analyzeExport      string
	analyzeFormat      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url|archive]...",
	Short: "Estimate metrics for repositories or archives",
	Long: `Estimate size, language mix, quality and security metrics for each
target. A target with a URL scheme is treated as a repository; anything
else as an archive file (.zip or .rar) whose size is read from disk.

Several targets are analyzed concurrently. Use --archive-name with --size
to describe an archive that is not on this machine.

Examples:
  codegauge analyze https://github.com/acme/widgets
  codegauge analyze --platform gitlab https://gitlab.com/acme/widgets
  codegauge analyze ./release.zip --section security
  codegauge analyze --archive-name src.rar --size 12MB --seed 42
  codegauge analyze https://github.com/acme/a https://github.com/acme/b --save`,
	RunE: runAnalyze,
}

func init() {
	analyzeFlags.register(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzePlatform, "platform", "", "Repository platform (github, gitlab, bitbucket, sourceforge, apache-svn); detected from the URL when omitted")
	analyzeCmd.Flags().StringVar(&analyzeArchiveName, "archive-name", "", "Name of an archive to describe without reading it")
	analyzeCmd.Flags().StringVar(&analyzeSize, "size", "", "Archive size for --archive-name, e.g. 12MB or 3MiB")
	analyzeCmd.Flags().StringVar(&analyzeSection, "section", sectionAll, "Section to show (overview, quality, security, operations, all)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save results to the history database")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "Write results to a JSON or YAML file")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Export format (json or yaml); inferred from --export extension when omitted")
	rootCmd.AddCommand(analyzeCmd)
}

// analysisReport is one analyzed target as written by --json and --export.
type analysisReport struct {
	ID          string               `json:"id,omitempty" yaml:"id,omitempty"`
	Descriptor  estimate.Descriptor  `json:"descriptor" yaml:"descriptor"`
	Seed        uint64               `json:"seed" yaml:"seed"`
	Bundle      *analyzer.Bundle     `json:"bundle,omitempty" yaml:"bundle,omitempty"`
	Error       string               `json:"error,omitempty" yaml:"error,omitempty"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if !validSection(analyzeSection) {
		return fmt.Errorf("unknown section %q", analyzeSection)
	}

	descs, err := collectDescriptors(args)
	if err != nil {
		return err
	}

	a := newAnalyzer(cmd, &analyzeFlags)
	var results []analyzer.Result
	if len(descs) == 1 {
		d := descs[0]
		seed := a.Seed(d)
		b, err := a.AnalyzeSeed(cmd.Context(), d, seed)
		results = []analyzer.Result{{Descriptor: d, Seed: seed, Bundle: b, Err: err}}
	} else {
		results = a.AnalyzeAll(cmd.Context(), descs, cfg.Analysis.BatchConcurrency)
	}

	reports := make([]analysisReport, len(results))
	failed := 0
	for i, r := range results {
		reports[i] = analysisReport{Descriptor: r.Descriptor, Seed: r.Seed, Bundle: r.Bundle}
		if r.Err != nil {
			failed++
			reports[i].Error = r.Err.Error()
			logger.Error().Err(r.Err).Str("source", r.Descriptor.Source).Msg("analysis failed")
			continue
		}
		reports[i].Suggestions = suggest.NewEngine().Run(suggest.NewContext(r.Descriptor, r.Bundle))
	}

	if analyzeSave {
		if err := saveReports(reports); err != nil {
			return err
		}
	}

	if analyzeExport != "" {
		if err := exportReports(analyzeExport, analyzeFormat, reports); err != nil {
			return err
		}
		logger.Info().Str("path", analyzeExport).Msg("exported analysis")
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if err := writeJSON(w, reports); err != nil {
			return err
		}
	} else {
		for i, rep := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if rep.Error != "" {
				fmt.Fprintf(w, " %s: %s\n", sourceLabel(rep.Descriptor), rep.Error)
				continue
			}
			renderReport(w, rep, analyzeSection)
		}
	}

	switch {
	case failed == len(results):
		return errors.New(reports[0].Error)
	case failed > 0:
		return fmt.Errorf("%d of %d analyses failed", failed, len(results))
	}
	return nil
}

// collectDescriptors validates every target before any analysis starts.
func collectDescriptors(args []string) ([]estimate.Descriptor, error) {
	platform := estimate.Platform(analyzePlatform)
	var descs []estimate.Descriptor
	for _, target := range args {
		d, err := parseTarget(target, platform)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}

	if analyzeArchiveName != "" {
		if analyzeSize == "" {
			return nil, fmt.Errorf("--size is required with --archive-name")
		}
		size, err := humanize.ParseBytes(analyzeSize)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid size %q: %v", estimate.ErrInvalidDescriptor, analyzeSize, err)
		}
		d, err := intake.Archive(analyzeArchiveName, int64(size), cfg.Intake.MaxArchiveBytes())
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}

	if len(descs) == 0 {
		return nil, fmt.Errorf("nothing to analyze: pass a repository URL, an archive path or --archive-name")
	}
	return descs, nil
}

// saveReports stores each successful analysis with its suggestions and
// resolves earlier suggestions for the same source that no longer apply.
func saveReports(reports []analysisReport) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for i := range reports {
		rep := &reports[i]
		if rep.Bundle == nil {
			continue
		}
		rec := &store.Analysis{Descriptor: rep.Descriptor, Seed: rep.Seed, Bundle: *rep.Bundle}
		if err := db.SaveAnalysis(rec); err != nil {
			return fmt.Errorf("saving analysis: %w", err)
		}
		rep.ID = rec.ID

		titles := make([]string, 0, len(rep.Suggestions))
		for _, s := range rep.Suggestions {
			titles = append(titles, s.Title)
		}
		if rep.Descriptor.Source != "" {
			n, err := db.ResolveMissing(rep.Descriptor.Source, titles)
			if err != nil {
				return fmt.Errorf("resolving suggestions: %w", err)
			}
			if n > 0 {
				logger.Info().Int("resolved", n).Str("source", rep.Descriptor.Source).Msg("resolved suggestions")
			}
		}
		for _, s := range rep.Suggestions {
			if err := db.InsertSuggestion(&store.Suggestion{
				AnalysisID:  rec.ID,
				Category:    s.Category,
				Priority:    s.Priority,
				Title:       s.Title,
				Description: s.Description,
				ImpactScore: s.ImpactScore,
			}); err != nil {
				return fmt.Errorf("saving suggestion: %w", err)
			}
		}
		logger.Debug().Str("id", rec.ID).Msg("saved analysis")
	}
	return nil
}

func exportReports(path, format string, reports []analysisReport) error {
	f := export.FormatForPath(path)
	if format != "" {
		var err error
		if f, err = export.ParseFormat(format); err != nil {
			return err
		}
	}
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	return export.WriteFile(path, f, v)
}
