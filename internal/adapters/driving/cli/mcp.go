package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkroute/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can plan
chunk downloads and inspect overlap graphs.

Tools:
  plan_chunks  cheapest covering chunk set for an inline or stored manifest
  chunk_graph  overlap graph reachable from the start chunk

Resources:
  chunkroute://manifests         stored manifest list
  chunkroute://manifests/{name}  a stored manifest in TSV form

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Examples:
  chunkroute mcp serve
  chunkroute mcp serve --port 8080`,
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
		Plan:     planService,
		Manifest: manifestService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
