package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	ctxlog "github.com/ErlanBelekov/league-manager/internal/log"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL       string `env:"DATABASE_URL,required" validate:"required"`
	DBConnectAttempts uint64 `env:"DB_CONNECT_ATTEMPTS" envDefault:"5" validate:"min=1,max=30"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h" validate:"min=1m"`

	// AdminOverride lets admins mutate resources they do not own.
	AdminOverride bool `env:"ADMIN_OVERRIDE" envDefault:"true"`
	// EnforceTeamRoles requires coaches to have role coach and players role player.
	EnforceTeamRoles bool `env:"ENFORCE_TEAM_ROLES" envDefault:"true"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

// Load reads configuration from the environment. With ENV=local (or ENV
// unset) a .env file in the working directory is loaded first, if present.
func Load() (*Config, error) {
	if e := os.Getenv("ENV"); e == "" || e == "local" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	return ctxlog.ParseLevel(c.LogLevel)
}
