package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AuthTokenTTL != 12*time.Hour {
		t.Errorf("expected default token TTL 12h, got %s", cfg.AuthTokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.DefaultTimezone != "America/Los_Angeles" {
		t.Errorf("unexpected default timezone %s", cfg.DefaultTimezone)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.isana.health, https://staging.isana.health")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.AuthTokenTTL != time.Hour {
		t.Errorf("expected token TTL 1h, got %s", cfg.AuthTokenTTL)
	}
	if !cfg.RedisTLS {
		t.Error("expected RedisTLS true")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[1] != "https://staging.isana.health" {
		t.Errorf("unexpected origin %s", cfg.CORSAllowedOrigins[1])
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "many")

	cfg := Load()

	if cfg.AuthTokenTTL != 12*time.Hour {
		t.Errorf("expected fallback token TTL, got %s", cfg.AuthTokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected fallback bcrypt cost, got %d", cfg.BcryptCost)
	}
}
