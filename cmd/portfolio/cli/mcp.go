package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pmcp "github.com/xXRex45Xx/MyPortfolio/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI agents",
		Long: `Start a Model Context Protocol (MCP) server that exposes read-only portfolio
content as tools for AI agents.

The server communicates over stdin/stdout using JSON-RPC, suitable for direct
integration with Claude Desktop or other MCP clients.`,
		Example: `  portfolio mcp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP()
		},
	}

	return cmd
}

func runMCP() error {
	// MCP talks JSON-RPC on stdout, so logs must stay on stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	st, _, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	mcpSrv := pmcp.NewMCPServer(st, logger)
	return mcpSrv.ServeStdio()
}
