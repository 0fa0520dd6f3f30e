// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// NewConfig loads configuration from environment using viper with typed
// defaults and validation.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("bootstrap.admin_login", "admin")
	v.SetDefault("bootstrap.admin_password", "123456")

	v.SetDefault("session.token_secret", "change-me-in-production")
	v.SetDefault("session.token_ttl", 12*time.Hour)
	v.SetDefault("session.token_file", ".projectdesk-session")

	v.SetDefault("app.environment", "development")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"bootstrap.admin_login",
		"bootstrap.admin_password",
		"session.token_secret",
		"session.token_ttl",
		"session.token_file",
		"app.environment",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
