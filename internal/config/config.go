package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultCORSOrigin is the audit frontend allowed when CORS_ALLOWED_ORIGINS is unset.
const DefaultCORSOrigin = "https://audit-vaperz-pos.vercel.app"

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port                string
	DatabaseDriver      string
	DatabaseURL         string
	SQLiteBootstrap     bool
	JWTSecret           string
	JWTIssuer           string
	JWTTTL              time.Duration
	BcryptCost          int
	CORSOrigins         []string
	HealthCheckSchedule string
	LogLevel            string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:                fallback(os.Getenv("PORT"), "5000"),
		DatabaseDriver:      strings.ToLower(fallback(os.Getenv("DB_DRIVER"), DriverPostgres)),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLiteBootstrap:     parseBool(os.Getenv("SQLITE_BOOTSTRAP")),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:           fallback(os.Getenv("JWT_ISSUER"), "pos-audit-backend"),
		CORSOrigins:         parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), DefaultCORSOrigin)),
		HealthCheckSchedule: fallbackUnlessSet("HEALTH_CHECK_SCHEDULE", "@every 1m"),
		LogLevel:            fallback(os.Getenv("LOG_LEVEL"), "info"),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	cost := fallback(os.Getenv("BCRYPT_COST"), "10")
	if n, err := strconv.Atoi(cost); err == nil && n >= bcrypt.MinCost && n <= bcrypt.MaxCost {
		cfg.BcryptCost = n
	} else {
		cfg.BcryptCost = 10
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER %q is not supported", cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	// No built-in signing secret: a missing value is a deployment error.
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

// fallbackUnlessSet distinguishes an explicitly empty variable from an unset one.
func fallbackUnlessSet(key, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{DefaultCORSOrigin}
	}
	return out
}
