package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/healthtrack/cmd/admin/cmd"
	"github.com/templui/healthtrack/internal/config"
	"github.com/templui/healthtrack/internal/logger"
)

func main() {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Operational tasks for healthtrack",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init(cfg.IsDevelopment(), "", cfg.AppEnv)
		},
	}

	loadConfig := func() *config.Config { return cfg }

	rootCmd.AddCommand(cmd.MigrateCmd(loadConfig))
	rootCmd.AddCommand(cmd.UsersCmd(loadConfig))
	rootCmd.AddCommand(cmd.SessionsCmd(loadConfig))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
