package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/bingo?sslmode=disable")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.AccessTokenTTLMin != 1440 {
		t.Fatalf("AccessTokenTTLMin = %d, want 1440", cfg.AccessTokenTTLMin)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerRequiresTokenSecret(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/bingo?sslmode=disable")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/bingo?sslmode=disable")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "30")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.AccessTokenTTLMin != 30 {
		t.Fatalf("AccessTokenTTLMin = %d, want 30", cfg.AccessTokenTTLMin)
	}
}
