package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HOST", "PORT", "CLASSIFIER_BACKEND", "CLASSIFIER_TIMEOUT", "CACHE_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr() != "0.0.0.0:5000" {
		t.Fatalf("expected 0.0.0.0:5000, got %s", cfg.Addr())
	}
	if cfg.Backend != BACKEND_WATSON {
		t.Fatalf("expected watson backend, got %s", cfg.Backend)
	}
	if cfg.ClassifierTimeout != 60*time.Second {
		t.Fatalf("expected 60s dev timeout, got %s", cfg.ClassifierTimeout)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Fatalf("expected 24h cache ttl, got %s", cfg.CacheTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "5123")
	t.Setenv("CLASSIFIER_BACKEND", "HUGOT")
	t.Setenv("CACHE_TTL", "90")
	t.Setenv("NORMALIZE_MARKDOWN", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CLASSIFIER_TIMEOUT", "")

	cfg := Load()

	if cfg.Port != "5123" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.Backend != BACKEND_HUGOT {
		t.Fatalf("expected hugot backend, got %s", cfg.Backend)
	}
	if cfg.ClassifierTimeout != 10*time.Second {
		t.Fatalf("expected 10s production timeout, got %s", cfg.ClassifierTimeout)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("expected bare seconds to parse, got %s", cfg.CacheTTL)
	}
	if !cfg.NormalizeMarkdown {
		t.Fatal("expected markdown normalization enabled")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
}

func TestGetEnvDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("HEALTHCHECK_INTERVAL", "soon")

	if got := getEnvDuration("HEALTHCHECK_INTERVAL", 15*time.Second); got != 15*time.Second {
		t.Fatalf("expected default, got %s", got)
	}
}

func TestGetEnvDurationRejectsNonPositive(t *testing.T) {
	for _, value := range []string{"0", "0s", "-5s", "-10"} {
		t.Setenv("HEALTHCHECK_INTERVAL", value)

		if got := Load().HealthcheckInterval; got != 15*time.Second {
			t.Fatalf("HEALTHCHECK_INTERVAL=%q: expected default 15s, got %s", value, got)
		}
	}
}
