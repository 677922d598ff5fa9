package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Currency != "USD" || cfg.NotifyWorkers != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mongo.Database != "restaurant_pos" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if !cfg.Development() {
		t.Fatal("expected development by default")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("JWT_SECRET=from-file\nPORT=9090\nCURRENCY=EUR\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "7070")
	t.Setenv("CURRENCY", "")
	os.Unsetenv("CURRENCY")

	cfg, err := Load(context.Background(), envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "from-env" || cfg.Port != "7070" {
		t.Fatalf("environment should win: %+v", cfg)
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("expected CURRENCY from .env, got %q", cfg.Currency)
	}
}
