package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/civic-api/internal/api"
	"github.com/joestump/civic-api/internal/build"
	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctx, e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = e.db.Close() }()

			if err := db.Migrate(ctx, e.db); err != nil {
				return err
			}

			router := api.NewRouter(api.Deps{
				DB:         e.db,
				Store:      store.New(),
				Logger:     e.logger,
				PerPage:    e.cfg.API.PerPage,
				MaxPerPage: e.cfg.API.MaxPerPage,
			})

			srv := &http.Server{
				Addr:              e.cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				e.logger.Info("listening", "addr", e.cfg.HTTP.Addr, "version", build.String())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			e.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
