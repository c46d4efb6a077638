// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Environment selects runtime behavior defaults
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds process-level settings. The validation core itself is
// configuration-free; these settings only wire the server and the
// optional validation log store.
type Config struct {
	ServerAddr  string
	DatabaseURL string
	Environment Environment
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with defaults.
// DATABASE_URL is optional: without it the validation log store is
// disabled and validation results are only returned, not persisted.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", string(EnvDevelopment))
	v.SetDefault("LOG_LEVEL", "info")

	env := Environment(v.GetString("ENVIRONMENT"))
	switch env {
	case EnvDevelopment, EnvProduction:
	case "prod":
		env = EnvProduction
	default:
		env = EnvDevelopment
	}

	addr := v.GetString("SERVER_ADDR")
	if addr == "" {
		addr = fmt.Sprintf("0.0.0.0:%s", v.GetString("PORT"))
	}

	logFormat := v.GetString("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
		if env == EnvProduction {
			logFormat = "json"
		}
	}

	return &Config{
		ServerAddr:  addr,
		DatabaseURL: v.GetString("DATABASE_URL"),
		Environment: env,
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   logFormat,
	}, nil
}
