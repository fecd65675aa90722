package cli

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings leaguectl shares with the server. Values come
// from the environment (and a local .env file) and may be overridden by
// flags.
type Config struct {
	Env               string `env:"ENV" envDefault:"local"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL       string `env:"DATABASE_URL"`
	DBConnectAttempts uint64 `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
}

// DefaultConfig reads the environment. A malformed variable falls back to
// the default so that --help always works.
func DefaultConfig() *Config {
	if e := os.Getenv("ENV"); e == "" || e == "local" {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return &Config{Env: "local", LogLevel: "info", DBConnectAttempts: 5, DatabaseURL: os.Getenv("DATABASE_URL")}
	}
	return cfg
}
