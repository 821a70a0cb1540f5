package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	base := Config{
		Store:    StoreConfig{Driver: "sqlite3", Path: "data/progress.db"},
		Practice: PracticeConfig{WeekWindowDays: 7},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"path", func(c *Config) { c.Store.Path = " " }},
		{"window", func(c *Config) { c.Practice.WeekWindowDays = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	mem := Config{Store: StoreConfig{Driver: "memory"}, Practice: PracticeConfig{WeekWindowDays: 7}}
	if err := mem.Validate(); err != nil {
		t.Fatalf("memory driver needs no path: %v", err)
	}
}

func TestStoreDSN(t *testing.T) {
	cfg := Config{Store: StoreConfig{Path: "/tmp/p.db"}}
	dsn := cfg.StoreDSN()
	if !strings.HasPrefix(dsn, "file:/tmp/p.db?") || !strings.Contains(dsn, "_busy_timeout=5000") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUSSIE_STORE_DRIVER", "memory")
	t.Setenv("AUSSIE_PRACTICE_SEED", "42")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != "memory" || cfg.Practice.Seed != 42 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Practice.WeekWindowDays != 7 || cfg.Log.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
