package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var health HealthResult
			if err := client.Do(http.MethodGet, "/api/v1/health", nil, &health); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(health)
			return nil
		},
	}
}
