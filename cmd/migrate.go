package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzahanych/photo-app/internal/store"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(cfg.Database, log.Logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("Database schema is up to date", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
