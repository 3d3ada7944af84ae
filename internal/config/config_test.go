package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
	if len(cfg.Backends) != 2 || cfg.Backends[0] != "postgres" || cfg.Backends[1] != "static" {
		t.Fatalf("unexpected backends: %v", cfg.Backends)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  addr: ":9090"
logging:
  level: debug
backends: [sqlite]
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("BUSINESS_BITES_CONFIG", path)
	t.Setenv("DATABASE_DSN", "postgres://env@db:5432/bites")
	t.Setenv("BACKENDS", "postgres, sqlite")
	t.Setenv("STATIC_DATASET_PATH", "/srv/bites/dataset.json")

	cfg := Load()

	if cfg.Server.Addr != ":9090" {
		t.Fatalf("file override ignored: %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("file override ignored: %s", cfg.Logging.Level)
	}
	if cfg.Database.DSN != "postgres://env@db:5432/bites" {
		t.Fatalf("env override ignored: %s", cfg.Database.DSN)
	}
	if len(cfg.Backends) != 2 || cfg.Backends[0] != "postgres" || cfg.Backends[1] != "sqlite" {
		t.Fatalf("env backends ignored: %v", cfg.Backends)
	}
	if cfg.Static.DatasetPath != "/srv/bites/dataset.json" {
		t.Fatalf("env dataset path ignored: %s", cfg.Static.DatasetPath)
	}
}
