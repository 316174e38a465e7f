package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools for reading and changing the orb settings and
querying the history of finished segments. It communicates via stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.logger.Info("starting MCP server")

		ctx := setupSignalHandler()

		server := mcp.NewServer(app.settings, Version)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
