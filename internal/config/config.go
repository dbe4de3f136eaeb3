// Package config loads and saves the spendfold TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "spendfold"

// Environment overrides, applied on top of the config file.
const (
	EnvStateDB      = "SPENDFOLD_STATE_DB"
	EnvShareBaseURL = "SPENDFOLD_SHARE_BASE_URL"
	EnvLogLevel     = "SPENDFOLD_LOG_LEVEL"
)

// Config holds all spendfold configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Share      ShareConfig      `toml:"share"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	StateDB        string `toml:"state_db,omitempty"`
	ConfirmDeletes bool   `toml:"confirm_deletes"`
}

// ShareConfig holds share-link settings.
type ShareConfig struct {
	BaseURL string `toml:"base_url"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	Filename string `toml:"filename"`
}

// AppearanceConfig holds theme and currency display settings.
type AppearanceConfig struct {
	Theme          string `toml:"theme"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// ServerConfig holds settings for the local HTTP service.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	IntervalSec int    `toml:"interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			ConfirmDeletes: true,
		},
		Share: ShareConfig{
			BaseURL: "http://127.0.0.1:8787/",
		},
		Export: ExportConfig{
			Filename: "expenses.xlsx",
		},
		Appearance: AppearanceConfig{
			Theme:          "flexoki-dark",
			CurrencySymbol: "₹",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8787",
			IntervalSec: 5,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the state file.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// CacheDir returns the XDG-compliant cache directory holding logs and
// service state.
func CacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback, appName)
}

// StatePath returns the state database path: env, then config, then the
// default under DataDir.
func StatePath(cfg Config) string {
	if p := os.Getenv(EnvStateDB); p != "" {
		return p
	}
	if cfg.General.StateDB != "" {
		return expandHome(cfg.General.StateDB)
	}
	return filepath.Join(DataDir(), "state.db")
}

// LogPath returns the log file used when the screen is not available.
func LogPath(cfg Config) string {
	if cfg.Log.File != "" {
		return expandHome(cfg.Log.File)
	}
	return filepath.Join(CacheDir(), appName+".log")
}

// ShareBaseURL returns the base URL for share links, env first.
func ShareBaseURL(cfg Config) string {
	if u := os.Getenv(EnvShareBaseURL); u != "" {
		return u
	}
	return cfg.Share.BaseURL
}

// LogLevel returns the diagnostic log level, env first.
func LogLevel(cfg Config) string {
	if l := os.Getenv(EnvLogLevel); l != "" {
		return l
	}
	return cfg.Log.Level
}

// ExportFilename returns the configured export file name.
func ExportFilename(cfg Config) string {
	if cfg.Export.Filename != "" {
		return expandHome(cfg.Export.Filename)
	}
	return "expenses.xlsx"
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
