package cmd

import (
	"fmt"
	"os"

	"learntrack/backend/config"
	"learntrack/backend/utils"

	"github.com/spf13/cobra"
)

// Execute runs the tracker command line.
func Execute() {
	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Personal learning tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newTokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and logger shared by every command.
func bootstrap() (*config.Config, *utils.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
