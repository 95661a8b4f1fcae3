// Package config loads service configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the service needs to run.
type Config struct {
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	Port        string `envconfig:"PORT" default:"8080" validate:"numeric"`
	Environment string `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development staging production"`

	// Provider credential. May be empty at startup; the validation gate then
	// rejects every transcribe request until it is set.
	AssemblyAIAPIKey  string `envconfig:"ASSEMBLYAI_API_KEY"`
	AssemblyAIBaseURL string `envconfig:"ASSEMBLYAI_BASE_URL" default:"https://api.assemblyai.com/v2" validate:"url"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"3s" validate:"gt=0"`
	PollTimeout  time.Duration `envconfig:"POLL_TIMEOUT" default:"120s" validate:"gt=0"`

	// Primary store connection string. Empty means the fallback store serves
	// everything.
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	FallbackDBPath string `envconfig:"FALLBACK_DB_PATH" default:"data/fallback-db.json"`

	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"150s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
}

// Load reads a .env file when one is present, then fills the Config from
// environment variables and validates it.
func Load() (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv probes the usual locations; a missing file is not an error
// because production sets variables system-wide.
func loadDotEnv() {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
	}
}

// ProviderKeyPresent reports whether the transcription credential is set.
func (c *Config) ProviderKeyPresent() bool {
	return c.AssemblyAIAPIKey != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
