package config

import (
	"errors"
	"time"
)

// Config holds application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Session   SessionConfig   `mapstructure:"session"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Bootstrap.AdminLogin == "" || c.Bootstrap.AdminPassword == "" {
		return errors.New("bootstrap admin credentials are required")
	}
	if c.Session.TokenSecret == "" {
		return errors.New("session.token_secret is required")
	}
	if c.Session.TokenTTL <= 0 {
		return errors.New("session.token_ttl must be positive")
	}
	return nil
}

// AppConfig contains general application settings.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// BootstrapConfig describes the default administrator seeded into an empty
// user store on first run.
type BootstrapConfig struct {
	AdminLogin    string `mapstructure:"admin_login"`
	AdminPassword string `mapstructure:"admin_password"`
}

// SessionConfig contains session token settings.
type SessionConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	TokenFile   string        `mapstructure:"token_file"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
