package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/xXRex45Xx/MyPortfolio/internal/config"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

// loadConfig resolves the effective configuration from the config file and
// PORTFOLIO_* environment variables.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// openStore loads the configuration and opens the backing database.
// The caller owns the returned store and must Close it.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStoreWith(cfg)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}

// openStoreWith opens the backing database for an already loaded configuration.
func openStoreWith(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.Database.Driver, cfg.Database.DSN)
}

// newLogger builds the process logger for the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// versionString returns a display version string.
func versionString() string {
	if appVersion == "" || appVersion == "dev" {
		return "dev"
	}
	if strings.HasPrefix(appVersion, "v") {
		return appVersion
	}
	return "v" + appVersion
}
