package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int      `envconfig:"PORT" default:"8080"`
	DatabasePath    string   `envconfig:"DATABASE_PATH" default:"./meetings.db"`
	SecretKey       string   `envconfig:"SECRET_KEY" required:"true"`
	Algorithm       string   `envconfig:"ALGORITHM" default:"HS256"`
	TokenTTLMinutes int      `envconfig:"TOKEN_TTL_MINUTES" default:"30"`
	BcryptCost      int      `envconfig:"BCRYPT_COST" default:"10"`
	AppEnv          string   `envconfig:"APP_ENV" default:"development"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string   `envconfig:"LOG_FORMAT" default:"console"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must be provided")
	}
	if !supportedAlgorithms[c.Algorithm] {
		return fmt.Errorf("unsupported ALGORITHM %q", c.Algorithm)
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be > 0, got %d", c.TokenTTLMinutes)
	}
	return nil
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
