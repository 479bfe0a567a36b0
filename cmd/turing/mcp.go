package main

import (
	"context"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the simulator as an MCP Server.
This allows AI agents to run machines, encode rule sets and read stored runs as tools and resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logLevel, _ := cmd.Flags().GetString("log-level")
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		stepLimit, _ := cmd.Flags().GetInt("step-limit")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.ServeMCP(ctx, cli.MCPOptions{
			Transport: transport,
			Addr:      addr,
			RedisAddr: redisAddr,
			StepLimit: stepLimit,
			Debug:     debug,
			LogLevel:  logLevel,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("redis", "", "Redis address for run history (default: in-memory)")
	mcpCmd.Flags().Int("step-limit", 0, "Maximum step budget per submitted run (default 100000)")
}
