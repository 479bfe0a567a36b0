package main

import (
	"context"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a machine definition",
	Long:  `Compiles the definition document, runs the machine and prints a summary of the run.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logLevel, _ := cmd.Flags().GetString("log-level")
		redisAddr, _ := cmd.Flags().GetString("redis")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		jsonMode, _ := cmd.Flags().GetBool("json")
		trace, _ := cmd.Flags().GetBool("trace")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		_, err := cli.RunFile(ctx, os.Stdout, cli.RunOptions{
			Path:      args[0],
			MaxSteps:  maxSteps,
			Debug:     debug,
			LogLevel:  logLevel,
			JSON:      jsonMode,
			Trace:     trace,
			RedisAddr: redisAddr,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("redis", "", "Redis address for run history (default: in-memory)")
	runCmd.Flags().Int("max-steps", 0, "Override the step budget of the document")
	runCmd.Flags().Bool("json", false, "Print the run record as JSON")
	runCmd.Flags().Bool("trace", false, "Print every executed step")
}
