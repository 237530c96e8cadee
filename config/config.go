package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// MongoDB
	MongoURL     string
	DatabaseName string

	// HTTP
	ListenAddr  string
	CORSOrigins []string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Logging
	LogLevel  string
	LogFormat string // "json" or "console"
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string

	cfg.MongoURL = getEnv("MONGO_URL", "mongodb://localhost:27017")
	if cfg.MongoURL == "" {
		errs = append(errs, "MONGO_URL must be set")
	}

	cfg.DatabaseName = getEnv("DATABASE_NAME", "gt_funds")
	if cfg.DatabaseName == "" {
		errs = append(errs, "DATABASE_NAME must be set")
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":8000")

	originsStr := getEnv("CORS_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(originsStr, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
		}
	}

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET must be set")
	}

	ttlMinutes, err := getEnvAsIntRequired("TOKEN_TTL_MINUTES", 30)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TOKEN_TTL_MINUTES: %v", err))
	} else if ttlMinutes <= 0 {
		errs = append(errs, "TOKEN_TTL_MINUTES must be positive")
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		errs = append(errs, "LOG_FORMAT must be 'json' or 'console'")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
