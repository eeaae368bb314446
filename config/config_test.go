package config

import (
	"strings"
	"testing"
)

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for missing variables")
	}
	for _, name := range []string{"MONGODB_URI", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("IMAGE_DIR", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Database != "inkwell" {
		t.Errorf("Database = %q, want inkwell", cfg.Database)
	}
	if cfg.ImageDir != "images" {
		t.Errorf("ImageDir = %q, want images", cfg.ImageDir)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v, want empty", cfg.CORSOrigins)
	}
	if cfg.RateLimit != 120 {
		t.Errorf("RateLimit = %d, want 120", cfg.RateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_NAME", "blog")
	t.Setenv("IMAGE_DIR", "/var/uploads")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != "9000" || cfg.Database != "blog" || cfg.ImageDir != "/var/uploads" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RateLimit != 30 {
		t.Errorf("RateLimit = %d, want 30", cfg.RateLimit)
	}
}

func TestLoadInvalidRateLimit(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric rate limit")
	}
}
