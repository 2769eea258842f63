// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/settleapp/settle/internal/models"
)

// Config holds everything the server needs to run.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration

	// CORSOrigin restricts browser access; "*" allows any origin.
	CORSOrigin string

	// SMTP settings for the email notifier. Email delivery is disabled
	// when SMTPHost is empty.
	SMTPHost string
	SMTPPort int
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	// AllowThirdPartySettlement lets any group member record a payment
	// between any two members. When false, the acting user must be the
	// payer or the payee.
	AllowThirdPartySettlement bool

	// Defaults are the construction-time entity defaults.
	Defaults models.Defaults
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a missing JWT_SECRET is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:       getEnvDefault("ADDR", ":8080"),
		DBPath:     getEnvDefault("DB_PATH", "./data/settle.db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getEnvDefault("CORS_ORIGIN", "*"),
		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPFrom:   getEnvDefault("SMTP_FROM", "noreply@settle.local"),
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		Defaults: models.Defaults{
			Category:  getEnvDefault("DEFAULT_CATEGORY", models.CategoryOther),
			AvatarURL: getEnvDefault("DEFAULT_AVATAR_URL", "https://i.pravatar.cc/150"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if !models.ValidCategory(cfg.Defaults.Category) {
		return nil, fmt.Errorf("DEFAULT_CATEGORY %q is not a valid category", cfg.Defaults.Category)
	}

	ttl, err := time.ParseDuration(getEnvDefault("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cfg.SMTPPort, err = strconv.Atoi(getEnvDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.AllowThirdPartySettlement, err = strconv.ParseBool(getEnvDefault("ALLOW_THIRD_PARTY_SETTLEMENT", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_THIRD_PARTY_SETTLEMENT: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
