package commands

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/engine/mcp"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol (MCP) server, exposing project and task
management as tools to LLM applications over the stdio transport.

The tool catalog covers project and task CRUD, free-text search, progress
recalculation, and statistics.`,
	Example: `  # Start the MCP server (stdio transport)
  taskdeck serve-mcp

  # Typical MCP client registration
  { "command": "taskdeck", "args": ["serve-mcp"] }`,
	RunE: runServeMCP,
}

var initServeMCPOnce sync.Once

// InitServeMCPCommand registers the serve-mcp command
func InitServeMCPCommand() {
	initServeMCPOnce.Do(func() {
		rootCmd.AddCommand(serveMCPCmd)
	})
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	service, _, _, cleanup, err := setupService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// stdio carries the protocol stream; logging must stay off stdout.
	logger.Info("MCP server ready", "transport", "stdio")
	return mcp.NewServer(service).Start(ctx)
}
