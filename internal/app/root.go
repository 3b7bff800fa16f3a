// Package app contains the Cobra command tree for codegauge.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/config"
	"github.com/blackwell-systems/codegauge/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

// Populated by the root PersistentPreRunE before any subcommand runs.
var (
	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "codegauge",
	Short: "Heuristic source code metrics for repositories and archives",
	Long: `codegauge estimates descriptive metrics for a software project from a
repository URL or an uploaded archive: size, language mix, code quality
and security indicators. Estimates are heuristic and reproducible with a
fixed seed; no source code is fetched or read.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "codegauge", appVersion)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Use a subcommand:")
		fmt.Fprintln(w, "  analyze      Estimate metrics for repositories or archives")
		fmt.Fprintln(w, "  interactive  Analyze targets read line by line from stdin")
		fmt.Fprintln(w, "  suggest      Ranked recommendations for the latest analysis")
		fmt.Fprintln(w, "  search       Search indexed code locations")
		fmt.Fprintln(w, "  refactor     Refactoring suggestions and performance tips")
		fmt.Fprintln(w, "  history      List, show and compare saved analyses")
		fmt.Fprintln(w, "  export       Write a saved analysis as JSON or YAML")
		fmt.Fprintln(w, "  mcp          Run an MCP stdio server")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/codegauge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

// setup loads configuration and configures color and logging.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = c

	output.SetNoColor(flagNoColor || !output.ColorEnabled(cfg.Output.Color, os.Stdout))
	output.SetWidth(cfg.Output.Width)
	logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level, flagVerbose)
	return nil
}

// newLogger returns a console logger at the configured level. An unknown
// level falls back to warn; verbose forces debug.
func newLogger(w io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    output.IsNoColor(),
	}).Level(lvl).With().Timestamp().Logger()
}
