package main

import (
	"github.com/spf13/cobra"

	"github.com/joestump/civic-api/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = e.db.Close() }()

			if err := db.Migrate(ctx, e.db); err != nil {
				return err
			}

			e.logger.Info("migrations complete")
			return nil
		},
	}
}
