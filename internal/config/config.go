package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment      string        `split_words:"true" default:"dev"`
	ListenAddress    string        `split_words:"true" default:"0.0.0.0:8080"`
	BaseAddress      string        `split_words:"true" default:"http://localhost:8080"`
	AllowedOrigin    string        `split_words:"true" default:"http://localhost:3000"`
	StorageDriver    string        `split_words:"true" default:"postgres"`
	PostgresDSN      string        `envconfig:"postgres_dsn"`
	OIDCProviderURL  string        `envconfig:"oidc_provider_url"`
	OIDCClientID     string        `envconfig:"oidc_client_id"`
	OIDCClientSecret string        `envconfig:"oidc_client_secret"`
	SessionLifetime  time.Duration `split_words:"true" default:"24h"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("ft", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "prod") || strings.EqualFold(config.Environment, "production")
}

// IsSecure returns whether the API is served via HTTPS and secure cookies should be used
func (config *Config) IsSecure() bool {
	return strings.HasPrefix(strings.ToLower(config.BaseAddress), "https://")
}
