// ABOUTME: MCP subcommand for running the quietwins MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the quietwins MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to log and browse wins over stdio.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		// Create and run server
		server := mcp.NewServer(svc)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
