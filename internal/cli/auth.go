package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session commands",
	}

	authCmd.AddCommand(newSignupCmd())
	authCmd.AddCommand(newLoginCmd())
	authCmd.AddCommand(newWhoamiCmd())

	return authCmd
}

func newSignupCmd() *cobra.Command {
	var password, email, name string

	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"username": args[0],
				"password": password,
				"email":    email,
				"name":     name,
			}

			var user User
			if err := client.Do(http.MethodPost, "/api/v1/auth/signup", body, &user); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(user)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"username": args[0],
				"password": password,
			}

			var token TokenResult
			if err := client.Do(http.MethodPost, "/api/v1/auth/login", body, &token); err != nil {
				out.PrintError(err)
				return err
			}

			if err := cfg.SaveToken(token.Token); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var user User
			if err := client.Do(http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(user)
			return nil
		},
	}
}
