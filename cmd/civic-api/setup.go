package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/joestump/civic-api/internal/config"
	"github.com/joestump/civic-api/internal/db"
	logging "github.com/joestump/civic-api/internal/log"
)

// env is what every subcommand needs: config, a logger carried in ctx, and
// an open database.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	db     *db.DB
}

func setup(ctx context.Context) (context.Context, *env, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return ctx, nil, err
	}
	ctx = log.WithContext(ctx, logger)

	database, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return ctx, nil, err
	}
	if cfg.DB.Trace {
		database = database.WithTrace(logger.WithPrefix("db"))
	}

	return ctx, &env{cfg: cfg, logger: logger, db: database}, nil
}
