package cmd

import (
	"learntrack/backend/utils"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := utils.InitDB(cfg)
			if err != nil {
				return err
			}
			if err := utils.Migrate(db); err != nil {
				return err
			}
			logger.Info("database migrated", "driver", cfg.DBDriver)
			return nil
		},
	}
}
