package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode FILE",
	Short: "Print the binary encoding of a machine's rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decode, _ := cmd.Flags().GetBool("decode")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.EncodeFile(os.Stdout, cli.EncodeOptions{
			Path:   args[0],
			Decode: decode,
			JSON:   jsonMode,
		})
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().Bool("decode", false, "Decode the bitstring back into numeric rules")
	encodeCmd.Flags().Bool("json", false, "Print the encoding as JSON")
}
