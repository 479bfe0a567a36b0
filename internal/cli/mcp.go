package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/turing"
	mcpAdapter "github.com/aretw0/turing/pkg/adapters/mcp"
)

// MCPOptions configures ServeMCP.
type MCPOptions struct {
	Transport string // stdio or sse
	Addr      string // listen address for sse
	RedisAddr string
	StepLimit int
	Debug     bool
	LogLevel  string
}

// ServeMCP exposes the simulator as an MCP server until ctx is cancelled
// (sse) or stdin closes (stdio).
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger, err := createLogger(opts.Debug, opts.LogLevel)
	if err != nil {
		return err
	}

	simOpts := []turing.Option{turing.WithLogger(logger)}
	store, closeStore := openStore(opts.RedisAddr)
	defer closeStore()
	if store != nil {
		simOpts = append(simOpts, turing.WithStore(store))
	}

	serverOpts := []mcpAdapter.Option{mcpAdapter.WithLogger(logger)}
	if opts.StepLimit > 0 {
		serverOpts = append(serverOpts, mcpAdapter.WithStepLimit(opts.StepLimit))
	}
	srv := mcpAdapter.NewServer(turing.New(simOpts...), serverOpts...)

	switch opts.Transport {
	case "", "stdio":
		// Logs go to stderr; stdout carries JSON-RPC.
		logger.Info("Starting Turing MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting Turing MCP Server (SSE)", "address", opts.Addr)
		return srv.ServeSSE(ctx, opts.Addr)
	}
	return fmt.Errorf("unknown transport %q, supported: stdio, sse", opts.Transport)
}
