package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Write a saved analysis as JSON or YAML",
	Long: `Write a saved analysis (default: the latest) to stdout or a file.
The format defaults to JSON, or is inferred from the --output extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format (json or yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	format := export.FormatJSON
	if exportOutput != "" {
		format = export.FormatForPath(exportOutput)
	}
	if exportFormat != "" {
		if format, err = export.ParseFormat(exportFormat); err != nil {
			return err
		}
	}

	if exportOutput == "" {
		return export.Write(cmd.OutOrStdout(), format, a)
	}
	if err := export.WriteFile(exportOutput, format, a); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", exportOutput)
	return nil
}
