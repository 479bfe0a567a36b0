package main

import (
	"context"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes runs, run history, encoding and Prometheus metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logLevel, _ := cmd.Flags().GetString("log-level")
		redisAddr, _ := cmd.Flags().GetString("redis")
		addr, _ := cmd.Flags().GetString("addr")
		stepLimit, _ := cmd.Flags().GetInt("step-limit")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, os.Stdout, cli.ServeOptions{
			Addr:      addr,
			RedisAddr: redisAddr,
			StepLimit: stepLimit,
			Debug:     debug,
			LogLevel:  logLevel,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("redis", "", "Redis address for run history (default: in-memory)")
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Int("step-limit", 0, "Maximum step budget per submitted run (default 100000)")
}
