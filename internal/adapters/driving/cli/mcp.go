package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the active project: the list_marks, find_occurrences
and tabulate tools, and the quala://projects, quala://files and
quala://files/{file} resources. It speaks JSON-RPC over stdio by default.

Use --port to serve over HTTP instead, for example to try the tools
in MCP Inspector.

Examples:
  # Stdio mode (default)
  quala mcp serve

  # HTTP mode
  quala mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "quala": {
        "command": "/path/to/quala",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Annotation: annotationService,
		Project:    projectService,
		File:       fileService,
		Tabulation: tabulationService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
