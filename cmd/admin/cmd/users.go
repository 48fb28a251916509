package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/healthtrack/internal/app"
	"github.com/templui/healthtrack/internal/config"
)

func UsersCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(usersRegisterCmd(cfg))
	return cmd
}

func usersRegisterCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Create a user; the password is read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			password, err := bufio.NewReader(c.InOrStdin()).ReadString('\n')
			if err != nil && password == "" {
				return errors.New("password required on stdin")
			}
			password = strings.TrimRight(password, "\r\n")

			return withApp(cfg(), func(a *app.App) error {
				userID, err := a.AuthService.Register(c.Context(), args[0], password)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), userID)
				return nil
			})
		},
	}
}

func withApp(cfg *config.Config, fn func(a *app.App) error) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	return fn(a)
}
