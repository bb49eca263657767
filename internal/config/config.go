package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	GinMode        string   `env:"GIN_MODE" envDefault:"release"`
	AppEnv         string   `env:"APP_ENV" envDefault:"production"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"ALLOWED_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	Gemini  GeminiConfig  `envPrefix:"GEMINI_"`
	Session SessionConfig `envPrefix:"SESSION_"`

	MaxImageBytes int64 `env:"MAX_IMAGE_BYTES" envDefault:"8388608"`

	// Per-IP limit on requests that can start a generation.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// GeminiConfig is injected into the profiler client at construction.
// An empty APIKey is reported by the client when a generation is attempted.
type GeminiConfig struct {
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL" envDefault:"gemini-2.5-flash"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"90s"`
}

type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"30m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
}

// Load reads .env when present, then parses the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", cfg.MaxImageBytes)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
