package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Port != 1337 {
		t.Fatalf("unexpected default port %d", cfg.App.Port)
	}
	if cfg.App.Env != "development" {
		t.Fatalf("unexpected default env %q", cfg.App.Env)
	}
	if cfg.Redis.SessionTTL != 0 {
		t.Fatalf("sessions must not expire by default, got ttl %v", cfg.Redis.SessionTTL)
	}
	if cfg.Argon2.Memory != 65536 || cfg.Argon2.Iterations != 3 {
		t.Fatalf("unexpected argon2 defaults: %+v", cfg.Argon2)
	}
	if cfg.Argon2.SaltLength != 16 {
		t.Fatalf("unexpected default salt length %d", cfg.Argon2.SaltLength)
	}
	if cfg.Verification.Skip {
		t.Fatal("verification must be required by default")
	}
	if cfg.Storage.RandomizeNamespace {
		t.Fatal("namespace randomization must be off by default")
	}
	if cfg.Telemetry.MetricsNamespace != "auth" {
		t.Fatalf("unexpected metrics namespace %q", cfg.Telemetry.MetricsNamespace)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_APP_PORT", "8080")
	t.Setenv("AUTH_APP_ENV", "production")
	t.Setenv("AUTH_POSTGRES_HOST", "db.internal")
	t.Setenv("AUTH_REDIS_SESSION_TTL", "24h")
	t.Setenv("AUTH_STORAGE_NAMESPACE", "it-42/")
	t.Setenv("AUTH_STORAGE_RANDOMIZE_NAMESPACE", "true")
	t.Setenv("AUTH_VERIFICATION_SKIP", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Port != 8080 {
		t.Fatalf("env override ignored for port: %d", cfg.App.Port)
	}
	if cfg.App.Env != "production" {
		t.Fatalf("env override ignored for env: %q", cfg.App.Env)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Fatalf("env override ignored for postgres host: %q", cfg.Postgres.Host)
	}
	if cfg.Redis.SessionTTL != 24*time.Hour {
		t.Fatalf("env override ignored for session ttl: %v", cfg.Redis.SessionTTL)
	}
	if cfg.Storage.Namespace != "it-42/" {
		t.Fatalf("env override ignored for namespace: %q", cfg.Storage.Namespace)
	}
	if !cfg.Storage.RandomizeNamespace {
		t.Fatal("env override ignored for randomize_namespace")
	}
	if !cfg.Verification.Skip {
		t.Fatal("env override ignored for verification.skip")
	}
}
