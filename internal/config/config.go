package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully resolved application configuration. It is built once
// at startup from the config file and PORTFOLIO_* environment variables and
// passed down explicitly; nothing reads viper after Load returns.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// AllowedOrigins is the client origin allow-list for CORS. Requests from
	// other origins cannot use the admin API from a browser.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// DSN is the SQLite file path or the PostgreSQL connection string.
	DSN string `mapstructure:"dsn"`
}

type AuthConfig struct {
	// JWTSecret signs tokens with HMAC-SHA-512. Mandatory.
	JWTSecret string `mapstructure:"jwt_secret"`
	// JWTIssuer and JWTAudience are embedded in and validated against every
	// token. Mandatory.
	JWTIssuer   string `mapstructure:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience"`
}

type UploadsConfig struct {
	// Root is the directory holding the uploads/ and images/ subdirectories.
	Root string `mapstructure:"root"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers default values on the given viper instance for all
// optional settings. Mandatory settings (JWT key material, DSN, client
// origins) deliberately have no default so a missing value fails startup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("uploads.root", "data")
	v.SetDefault("log.level", "info")
}

// Load unmarshals and validates the configuration from the given viper
// instance. Any missing mandatory value is a startup error, never a runtime
// fallback.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every mandatory setting is present, reporting all
// missing keys at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwt_secret")
	}
	if c.Auth.JWTIssuer == "" {
		missing = append(missing, "auth.jwt_issuer")
	}
	if c.Auth.JWTAudience == "" {
		missing = append(missing, "auth.jwt_audience")
	}
	if c.Database.DSN == "" {
		missing = append(missing, "database.dsn")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		missing = append(missing, "server.allowed_origins")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server.port out of range")
	}
	return nil
}

// LogLevel translates the configured level string into a slog-compatible
// name, defaulting to info for unknown values.
func (c *Config) LogLevel() string {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		return strings.ToLower(c.Log.Level)
	default:
		return "info"
	}
}
