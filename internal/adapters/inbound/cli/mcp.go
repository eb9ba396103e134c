package cli

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/camelgen/camelgen/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the camelgen MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start camelgen MCP server (stdio)",
		Long:  "Start the camelgen MCP server using stdio transport. This lets AI coding assistants validate parameters and scaffold Camel projects.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workDir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				workDir = cwd
			}
			s := mcpadapter.NewCamelgenMCPServer(workDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&workDir, "path", "", "Working directory for relative paths (defaults to current working directory)")

	return cmd
}
