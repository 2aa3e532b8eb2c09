package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdillard/todoapi/internal/dependencies/random"
)

func newKeygenCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a token signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			key := random.New().String(length, random.HexAlphabet)
			out.PrintMessage(key)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 64, "Key length in hex characters")

	return cmd
}
