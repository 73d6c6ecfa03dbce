package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. Values are
// loaded once in main and passed down; packages never read env vars directly.
type Config struct {
	DatabaseURL string
	Port        string
	Env         string

	// Auth. When IntrospectionURL is set tokens are verified against the
	// external endpoint; otherwise JWTSecret selects local HS256 validation.
	JWTSecret        string
	IntrospectionURL string

	MaxConns    int32
	CORSOrigins string

	RateLimitMax    int
	RateLimitWindow time.Duration

	// AdminAPIKey gates the operator overview endpoint. Empty means the
	// endpoint stays closed.
	AdminAPIKey string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:             strings.TrimSpace(os.Getenv("PORT")),
		Env:              strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		IntrospectionURL: strings.TrimSpace(os.Getenv("AUTH_INTROSPECTION_URL")),
		CORSOrigins:      strings.TrimSpace(os.Getenv("CORS_ORIGINS")),
		AdminAPIKey:      strings.TrimSpace(os.Getenv("ADMIN_API_KEY")),
		MaxConns:         10,
		RateLimitMax:     60,
		RateLimitWindow:  time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" && cfg.IntrospectionURL == "" {
		return nil, errors.New("either JWT_SECRET or AUTH_INTROSPECTION_URL must be set")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}

	if v := strings.TrimSpace(os.Getenv("DB_MAX_CONNS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.MaxConns = int32(parsed)
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_TX_MAX")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.RateLimitMax = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_TX_WINDOW_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.RateLimitWindow = time.Duration(parsed) * time.Second
		}
	}

	return cfg, nil
}

// DevMode reports whether error detail may be exposed in responses.
func (c *Config) DevMode() bool {
	return c.Env == "dev"
}
