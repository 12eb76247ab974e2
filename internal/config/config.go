// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	val "card-rewards/internal/validator"

	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix scopes the variables read by Load. Nested keys use a double
// underscore: REWARDS_DATABASE__URL -> database.url.
const EnvPrefix = "REWARDS_"

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

type DatabaseConfig struct {
	URL         string        `koanf:"url" validate:"required"`
	MaxConns    int32         `koanf:"max_conns" validate:"gte=1"`
	QueryLog    bool          `koanf:"query_log"`
	PingTimeout time.Duration `koanf:"ping_timeout" validate:"gt=0"`
}

type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaults() Config {
	return Config{
		Database: DatabaseConfig{
			MaxConns:    10,
			PingTimeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads REWARDS_* variables (and a .env file, if present) over the
// defaults. DATABASE_URL is used when REWARDS_DATABASE__URL is unset.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := val.Validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	return cfg
}

func (s ServerConfig) Addr() string {
	return ":" + s.Port
}
