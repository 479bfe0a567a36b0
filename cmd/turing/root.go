package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic multi-tape Turing machine simulator",
	Long: `Turing runs machines described in YAML or JSON definition documents and
prints the canonical unary/binary encoding of their transition tables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Write logs at this level to stderr: debug, info, warn or error")
}
