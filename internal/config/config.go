// Package config loads server configuration from defaults, an optional YAML
// file and TRIPSPLIT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRIPSPLIT_SERVER_PORT.
const EnvPrefix = "TRIPSPLIT"

// DefaultJWTSecret is only suitable for local development.
const DefaultJWTSecret = "change-me"

// Config holds all configuration for the server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Events   EventsConfig   `mapstructure:"events"`
	Demo     DemoConfig     `mapstructure:"demo"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	StaticPath      string        `mapstructure:"static_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the SQL driver and its data source.
type DatabaseConfig struct {
	// Driver is one of sqlite, postgres or pgx.
	Driver string `mapstructure:"driver"`
	// DSN is a file path for sqlite and a connection string otherwise.
	DSN string `mapstructure:"dsn"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
	// Required rejects anonymous calls to the group and transaction services.
	Required bool `mapstructure:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EventsConfig sizes the audit event buffer.
type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

// DemoConfig controls seeding of the demo group.
type DemoConfig struct {
	Seed bool `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_path", "./static")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/tripsplit.db")

	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_duration", 7*24*time.Hour)
	v.SetDefault("auth.required", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("events.buffer_size", 100)
	v.SetDefault("demo.seed", true)
}

// Load reads configuration. An empty path looks for config.yaml in the
// working directory and carries on without it; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	case c.Server.ShutdownTimeout <= 0:
		return errors.New("server.shutdown_timeout must be positive")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres", "pgx":
	default:
		return fmt.Errorf("database.driver %q is not one of sqlite, postgres, pgx", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenDuration <= 0 {
		return errors.New("auth.token_duration must be positive")
	}

	if c.Events.BufferSize <= 0 {
		return errors.New("events.buffer_size must be positive")
	}
	return nil
}
