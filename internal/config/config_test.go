package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Path != "data/holdings.json" {
		t.Errorf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.TTLSeconds != 300 {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Provider.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.Provider.TimeoutSeconds)
	}
	if cfg.Schedule.ScreenerCron == "" {
		t.Error("expected a default screener cron")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
storage:
  backend: sqlite
watchlist:
  - AAPL
  - MSFT
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LISTEN_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env should override file, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Path != "data/stockdash.db" {
		t.Errorf("unexpected sqlite storage config: %+v", cfg.Storage)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != "AAPL" {
		t.Errorf("unexpected watchlist: %v", cfg.Watchlist)
	}
}

func TestValidateRejectsBadBackends(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	cfg.Storage.Backend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown storage backend")
	}
	cfg.Storage.Backend = "file"

	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisAddr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for redis backend without addr")
	}
	cfg.Cache.RedisAddr = "localhost:6379"
	if err := cfg.Validate(); err != nil {
		t.Errorf("redis backend with addr should validate: %v", err)
	}
}
