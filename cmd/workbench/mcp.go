package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench"
	"github.com/aretw0/workbench/internal/cli"
	"github.com/aretw0/workbench/internal/config"
	"github.com/aretw0/workbench/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes every tool to AI agents as an MCP tool, plus the tool catalogue
as a resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.MCP.Port, _ = cmd.Flags().GetInt("port")
		}

		wb, err := cli.NewWorkbench(cfg, logger, cli.NewHooks(logger, nil))
		if err != nil {
			return err
		}
		srv := mcp.NewServer(wb, strings.TrimSpace(workbench.Version), mcp.WithLogger(logger))

		switch cfg.MCP.Transport {
		case config.TransportStdio:
			// Logs go to stderr; stdout carries JSON-RPC.
			logger.Info("Starting Workbench MCP Server (Stdio)...")
			return srv.ServeStdio()
		case config.TransportSSE:
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			logger.Info("Starting Workbench MCP Server (SSE)", "port", cfg.MCP.Port)
			if err := srv.ServeSSE(sc, cfg.MCP.Port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", config.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
