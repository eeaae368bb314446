package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the full application configuration. It is read once at
// startup and treated as immutable afterwards.
type Config struct {
	// Database
	MongoURI string
	Database string

	// Auth
	JWTSecret string

	// Server
	Port string

	// Uploads
	ImageDir string

	// CORS; empty means allow all origins
	CORSOrigins []string

	// Rate limit, requests per minute per IP
	RateLimit int
}

// Load reads the configuration from environment variables. Missing
// required variables are reported together in a single error.
func Load() (*Config, error) {
	cfg := &Config{
		Database:  "inkwell",
		Port:      "8080",
		ImageDir:  "images",
		RateLimit: 120,
	}

	var missing []string

	cfg.MongoURI = os.Getenv("MONGODB_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if v := os.Getenv("DATABASE_NAME"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("IMAGE_DIR"); v != "" {
		cfg.ImageDir = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE value %q", v)
		}
		cfg.RateLimit = n
	}

	return cfg, nil
}
