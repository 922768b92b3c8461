package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton kept for packages that cannot take injected config (crontab jobs).
var globalConfig *Config

// Config holds all environment backed configuration for the menu chat API.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Reasoning engine
	OpenAIAPIKey          string  `env:"OPENAI_API_KEY,notEmpty"`
	OpenAIBaseURL         string  `env:"OPENAI_BASE_URL"`
	CompletionModel       string  `env:"COMPLETION_MODEL" envDefault:"gpt-4"`
	CompletionMaxTokens   int     `env:"COMPLETION_MAX_TOKENS" envDefault:"200"`
	CompletionTemperature float32 `env:"COMPLETION_TEMPERATURE" envDefault:"0.7"`

	// Catalog / conversation seed data
	SeedFile string `env:"SEED_FILE" envDefault:"config/seed.yml"`
	Seed     *Seed  `env:"-"`

	// Catalog cache refresh
	CatalogRefreshEnabled bool `env:"CATALOG_REFRESH_ENABLED" envDefault:"true"`
	CatalogRefreshMinutes int  `env:"CATALOG_REFRESH_MINUTES" envDefault:"10"`

	// Transport
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,https://famires-app.pages.dev"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"menu-chat-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"famires"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	seedFile := strings.TrimSpace(cfg.SeedFile)
	if seedFile != "" {
		seed, err := LoadSeed(seedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed config: %w", err)
		}
		cfg.Seed = seed
	}
	if cfg.Seed == nil {
		cfg.Seed = DefaultSeed()
	}

	if cfg.CatalogRefreshMinutes <= 0 {
		cfg.CatalogRefreshMinutes = 10
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last reloaded
func GetEnvReloadedAt() time.Time {
	if globalConfig == nil {
		return time.Time{}
	}
	return globalConfig.EnvReloadedAt
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
