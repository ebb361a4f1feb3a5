package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds process configuration, sourced from the environment.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	LogMode     string
	CORSOrigins []string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// are mandatory; boot should abort when Load fails rather than fall back to
// insecure defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_MODE", "production")
	v.SetDefault("CORS_ORIGINS", "*")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		Port:        v.GetString("PORT"),
		LogMode:     v.GetString("LOG_MODE"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}
