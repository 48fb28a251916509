package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/healthtrack/internal/app"
	"github.com/templui/healthtrack/internal/config"
)

func SessionsCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions (Redis expires them on its own)",
		RunE: func(c *cobra.Command, args []string) error {
			return withApp(cfg(), func(a *app.App) error {
				n, err := a.SessionService.PurgeExpired(c.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "purged %d sessions\n", n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <user-id>",
		Short: "End every session of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return withApp(cfg(), func(a *app.App) error {
				n, err := a.SessionService.RevokeUser(c.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "revoked %d sessions\n", n)
				return nil
			})
		},
	})

	return cmd
}
