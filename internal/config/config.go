package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration for civic-api.
type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
		Trace  bool
	}
	API struct {
		PerPage    int
		MaxPerPage int
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads config from environment (CIVIC_ prefix) and optional civic-api.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CIVIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("civic-api")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.trace", false)
	v.SetDefault("api.per_page", 20)
	v.SetDefault("api.max_per_page", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.DB.Trace = v.GetBool("db.trace")
	cfg.API.PerPage = v.GetInt("api.per_page")
	cfg.API.MaxPerPage = v.GetInt("api.max_per_page")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("CIVIC_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("CIVIC_DB_DSN is required")
	}
	if cfg.API.PerPage < 1 {
		return nil, fmt.Errorf("invalid CIVIC_API_PER_PAGE %d: must be positive", cfg.API.PerPage)
	}
	if cfg.API.MaxPerPage < cfg.API.PerPage {
		return nil, fmt.Errorf("CIVIC_API_MAX_PER_PAGE (%d) must be >= CIVIC_API_PER_PAGE (%d)", cfg.API.MaxPerPage, cfg.API.PerPage)
	}

	return cfg, nil
}
