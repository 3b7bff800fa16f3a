package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/mcp"
)

var mcpFlags seedFlags

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server",
	Long: `Start a Model Context Protocol stdio server. The server exposes three
tools:

  analyze_source           Estimate metrics for a repository URL or archive
  search_code              Keyword search over indexed code locations
  refactoring_suggestions  Refactoring suggestions and performance tips

Example client configuration:
  {"mcpServers":{"codegauge":{"command":"codegauge","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	mcpFlags.register(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv := mcp.NewServer(newAnalyzer(cmd, &mcpFlags), cfg.Intake.MaxArchiveBytes(), appVersion)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
