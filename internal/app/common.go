package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/intake"
	"github.com/blackwell-systems/codegauge/internal/store"
)

// seedFlags are the analysis flags shared by analyze, suggest and
// interactive.
type seedFlags struct {
	seed    uint64
	stable  bool
	latency time.Duration
}

func (f *seedFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Fixed random seed for reproducible estimates")
	cmd.Flags().BoolVar(&f.stable, "stable", false, "Derive the seed from the input so repeated runs agree")
	cmd.Flags().DurationVar(&f.latency, "latency", 0, "Simulated processing delay (default from config)")
}

// newAnalyzer builds an Analyzer from the loaded config with any flag
// overrides applied. Flags win over config.
func newAnalyzer(cmd *cobra.Command, f *seedFlags) *analyzer.Analyzer {
	settings := cfg.Analysis
	seedFixed := settings.Seed != 0
	if cmd.Flags().Changed("seed") {
		settings.Seed = f.seed
		seedFixed = true
	}
	if cmd.Flags().Changed("stable") {
		settings.StableSeed = f.stable
	}
	if cmd.Flags().Changed("latency") {
		settings.Latency = f.latency
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithLatency(settings.Latency),
	}
	switch {
	case seedFixed:
		opts = append(opts, analyzer.WithSeed(settings.Seed), analyzer.WithCache(settings.CacheSize))
	case settings.StableSeed:
		opts = append(opts, analyzer.WithSeedFunc(estimate.SeedFor), analyzer.WithCache(settings.CacheSize))
	}
	return analyzer.New(opts...)
}

// parseTarget turns a command-line target into a descriptor. Anything with
// a URL scheme is a repository; everything else is an archive on disk.
func parseTarget(target string, platform estimate.Platform) (estimate.Descriptor, error) {
	if strings.Contains(target, "://") {
		return intake.ParseRepository(platform, target)
	}
	return intake.ArchiveFromFile(target, cfg.Intake.MaxArchiveBytes())
}

// openDB opens the history database from the loaded config.
func openDB() (*store.DB, error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// loadAnalysis resolves an ID prefix, or the latest analysis when id is
// empty.
func loadAnalysis(db *store.DB, id string) (*store.Analysis, error) {
	if id == "" {
		recent, err := db.RecentAnalyses(1)
		if err != nil {
			return nil, fmt.Errorf("loading analyses: %w", err)
		}
		if len(recent) == 0 {
			return nil, fmt.Errorf("no saved analyses; run 'codegauge analyze --save' first")
		}
		return &recent[0], nil
	}
	a, err := db.GetAnalysis(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("no analysis with id %q", id)
	}
	return a, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sourceLabel(d estimate.Descriptor) string {
	if d.Source != "" {
		return d.Source
	}
	if d.Platform != "" {
		return string(d.Platform) + " " + string(d.Kind)
	}
	return string(d.Kind)
}
