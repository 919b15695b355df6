// Package log builds the structured logger used across civic-api.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joestump/civic-api/internal/config"
)

// New returns a logger configured from cfg.Log. Output goes to stderr.
func New(cfg *config.Config) (*log.Logger, error) {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log: nil config")
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	if cfg.Log.Level != "" {
		lvl, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		logger.SetLevel(lvl)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	case "text", "":
		logger.SetFormatter(log.TextFormatter)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text, json, or logfmt", cfg.Log.Format)
	}

	return logger, nil
}
