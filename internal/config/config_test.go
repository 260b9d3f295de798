package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 9090
  gin_mode: release
database:
  dsn: "host=localhost user=app dbname=app"
jwt:
  secret: "unit-test-secret"
  issuer: "lurniq-api"
  access_ttl: "12h"
  refresh_ttl: "96h"
tokens:
  verification_ttl: "48h"
  reset_ttl: "30m"
rate_limit:
  store: memory
  window: "30s"
  auth_limit: 7
kafka:
  brokers: ["localhost:9092"]
  topic: audit-events
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.AccessTTL != 12*time.Hour || cfg.RefreshTTL != 96*time.Hour {
		t.Errorf("unexpected JWT TTLs: %v / %v", cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.VerificationTTL != 48*time.Hour || cfg.ResetTTL != 30*time.Minute {
		t.Errorf("unexpected token TTLs: %v / %v", cfg.VerificationTTL, cfg.ResetTTL)
	}
	if cfg.RateLimitWindow != 30*time.Second || cfg.AuthLimit != 7 {
		t.Errorf("unexpected rate limit config: %v / %d", cfg.RateLimitWindow, cfg.AuthLimit)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaTopic != "audit-events" {
		t.Errorf("unexpected kafka config: %v / %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "unit-test-secret"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AccessTTL != 24*time.Hour || cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("unexpected default JWT TTLs: %v / %v", cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.VerificationTTL != 24*time.Hour || cfg.ResetTTL != time.Hour {
		t.Errorf("unexpected default token TTLs: %v / %v", cfg.VerificationTTL, cfg.ResetTTL)
	}
	if cfg.AuthLimit != 5 || cfg.DefaultLimit != 60 || cfg.ResetUserLimit != 3 {
		t.Errorf("unexpected default limits: %d / %d / %d", cfg.AuthLimit, cfg.DefaultLimit, cfg.ResetUserLimit)
	}
	if cfg.RateLimitStore != "memory" {
		t.Errorf("expected memory store default, got %s", cfg.RateLimitStore)
	}
}

func TestLoadFileRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
`)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error for a missing jwt secret")
	}
}

func TestLoadFileEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "file-secret"
`)

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "host=override")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("expected the env secret to win, got %s", cfg.JWTSecret)
	}
	if cfg.DSN != "host=override" {
		t.Errorf("expected the env DSN to win, got %s", cfg.DSN)
	}
}

func TestLoadFileInvalidDuration(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "unit-test-secret"
  access_ttl: "not-a-duration"
`)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error for an invalid duration")
	}
}
