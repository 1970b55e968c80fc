// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for kbchat.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete kbchat configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Tenants TenantsConfig `toml:"tenants"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// BackendConfig contains the chat API connection settings.
type BackendConfig struct {
	// URL is the base URL of the knowledge-base chat API.
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout for chat, web-source, and
	// delete calls.
	TimeoutSecs int `toml:"timeout_secs"`
	// UploadTimeoutSecs is the timeout for document uploads, which ingest
	// server-side and take longer.
	UploadTimeoutSecs int `toml:"upload_timeout_secs"`
}

// TenantsConfig points at the tenant directory file.
type TenantsConfig struct {
	// File is the path to the tenant directory (TOML, [[tenant]] blocks).
	// Default: ~/.kbchat/tenants.toml
	File string `toml:"file"`
	// Watch reloads the directory when the file changes.
	Watch bool `toml:"watch"`
}

// LogConfig contains logging settings. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	// Path of the log file. Default: ~/.kbchat/kbchat.log
	Path string `toml:"path"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Markdown renders assistant answers through glamour when true.
	Markdown bool `toml:"markdown"`
	// WordWrap is the wrap width for rendered answers (0 = viewport width).
	WordWrap int `toml:"word_wrap"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:               "http://127.0.0.1:8000",
			TimeoutSecs:       30,
			UploadTimeoutSecs: 120,
		},
		Tenants: TenantsConfig{
			File:  "",
			Watch: true,
		},
		Log: LogConfig{
			Path:  "",
			Level: "info",
		},
		UI: UIConfig{
			Markdown: true,
			WordWrap: 0,
		},
	}
}

// Dir returns the kbchat configuration directory (~/.kbchat), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".kbchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default config file path (~/.kbchat/config.toml).
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from path, or from the default location when
// path is empty. A missing file yields the defaults. Environment overrides
// are applied after the file, then path defaults are filled in and the
// result validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies KBCHAT_* environment variables over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KBCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("KBCHAT_TENANTS_FILE"); v != "" {
		c.Tenants.File = v
	}
	if v := os.Getenv("KBCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("KBCHAT_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
}

// setDefaults fills in paths that depend on the home directory.
func (c *Config) setDefaults() error {
	if c.Tenants.File == "" || c.Log.Path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if c.Tenants.File == "" {
			c.Tenants.File = filepath.Join(dir, "tenants.toml")
		}
		if c.Log.Path == "" {
			c.Log.Path = filepath.Join(dir, "kbchat.log")
		}
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url %q is not a valid URL", c.Backend.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url scheme %q is not http or https", u.Scheme)
	}

	if c.Backend.TimeoutSecs <= 0 {
		return fmt.Errorf("backend.timeout_secs must be positive, got %d", c.Backend.TimeoutSecs)
	}
	if c.Backend.UploadTimeoutSecs <= 0 {
		return fmt.Errorf("backend.upload_timeout_secs must be positive, got %d", c.Backend.UploadTimeoutSecs)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	if c.UI.WordWrap < 0 {
		return fmt.Errorf("ui.word_wrap must not be negative, got %d", c.UI.WordWrap)
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration as TOML to path.
func Save(cfg *Config, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
