package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.CurrencySymbol != "₹" {
		t.Errorf("CurrencySymbol = %q", cfg.Appearance.CurrencySymbol)
	}
	if cfg.Export.Filename != "expenses.xlsx" {
		t.Errorf("Export.Filename = %q", cfg.Export.Filename)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Share.BaseURL = "https://spend.example/"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Server.IntervalSec = 9
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.StateDB = "/from/config.db"

	if got := StatePath(cfg); got != "/from/config.db" {
		t.Errorf("StatePath = %q, want config value", got)
	}
	t.Setenv(EnvStateDB, "/from/env.db")
	if got := StatePath(cfg); got != "/from/env.db" {
		t.Errorf("StatePath = %q, want env value", got)
	}

	t.Setenv(EnvShareBaseURL, "https://env.example/")
	if got := ShareBaseURL(cfg); got != "https://env.example/" {
		t.Errorf("ShareBaseURL = %q", got)
	}
	t.Setenv(EnvLogLevel, "debug")
	if got := LogLevel(cfg); got != "debug" {
		t.Errorf("LogLevel = %q", got)
	}
}

func TestDefaultStatePathUnderDataDir(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv(EnvStateDB, "")

	want := filepath.Join(data, "spendfold", "state.db")
	if got := StatePath(DefaultConfig()); got != want {
		t.Errorf("StatePath = %q, want %q", got, want)
	}
}
