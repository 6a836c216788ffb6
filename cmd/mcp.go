package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/adapters/mcp"
	"github.com/arkadyv/bellhop/internal/scheduler"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server communicates via stdio and keeps the scheduler
running, so sessions created over MCP ring while it is up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		loop := scheduler.NewLoop(eng)
		go loop.Run(ctx)

		server := mcp.NewServer(eng, sunProvider, appConfig)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
