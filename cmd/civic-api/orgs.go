package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/civic-api/internal/store"
)

func newOrgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "Manage organizations",
	}
	cmd.AddCommand(newOrgsDeleteCmd())
	return cmd
}

func newOrgsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an organization and everything it owns",
		Long: "Delete an organization by name or slug, together with its projects, " +
			"their issues, its events and its stories. Labels are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = e.db.Close() }()

			if err := store.New().Organizations.Delete(ctx, e.db, args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("organization %q not found", args[0])
				}
				return err
			}

			e.logger.Info("organization deleted", "name", args[0])
			return nil
		},
	}
}
