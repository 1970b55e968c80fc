// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for kbchat.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// DEFAULT TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "http://127.0.0.1:8000", cfg.Backend.URL)
	require.Equal(t, 30, cfg.Backend.TimeoutSecs)
	require.Equal(t, 120, cfg.Backend.UploadTimeoutSecs)
	require.True(t, cfg.Tenants.Watch)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.UI.Markdown)
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
url = "https://kb.example.com"
timeout_secs = 10

[tenants]
file = "` + filepath.ToSlash(filepath.Join(dir, "tenants.toml")) + `"
watch = false

[log]
path = "` + filepath.ToSlash(filepath.Join(dir, "kb.log")) + `"
level = "debug"

[ui]
markdown = false
word_wrap = 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://kb.example.com", cfg.Backend.URL)
	require.Equal(t, 10, cfg.Backend.TimeoutSecs)
	require.Equal(t, 120, cfg.Backend.UploadTimeoutSecs) // default survives partial file
	require.False(t, cfg.Tenants.Watch)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.UI.Markdown)
	require.Equal(t, 100, cfg.UI.WordWrap)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[backend]
url = "http://file-wins.example"
`), 0o600))

	t.Setenv("KBCHAT_BACKEND_URL", "http://env-wins.example")
	t.Setenv("KBCHAT_LOG_LEVEL", "warn")
	t.Setenv("KBCHAT_TIMEOUT_SECS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://env-wins.example", cfg.Backend.URL)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, 5, cfg.Backend.TimeoutSecs)
}

func TestLoad_EmptyPathMissingFileUsesDefaults(t *testing.T) {
	// Fresh home with no ~/.kbchat/config.toml: a first run must come up on
	// the built-in defaults instead of failing.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8000", cfg.Backend.URL)
	require.Equal(t, 30, cfg.Backend.TimeoutSecs)
	require.NotEmpty(t, cfg.Tenants.File)
	require.NotEmpty(t, cfg.Log.Path)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	// A path given explicitly (e.g. -config) is required; only the default
	// location tolerates a missing file.
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend = [[["), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, ok: true},
		{name: "https url", mutate: func(c *Config) { c.Backend.URL = "https://kb.example.com:8443" }, ok: true},
		{name: "missing scheme", mutate: func(c *Config) { c.Backend.URL = "127.0.0.1:8000" }, ok: false},
		{name: "bad scheme", mutate: func(c *Config) { c.Backend.URL = "ftp://kb.example.com" }, ok: false},
		{name: "zero timeout", mutate: func(c *Config) { c.Backend.TimeoutSecs = 0 }, ok: false},
		{name: "negative upload timeout", mutate: func(c *Config) { c.Backend.UploadTimeoutSecs = -1 }, ok: false},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, ok: false},
		{name: "negative word wrap", mutate: func(c *Config) { c.UI.WordWrap = -10 }, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://saved.example:9000"
	cfg.Tenants.File = filepath.Join(dir, "tenants.toml")
	cfg.Log.Path = filepath.Join(dir, "kb.log")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Backend.URL, loaded.Backend.URL)
	require.Equal(t, cfg.Tenants.File, loaded.Tenants.File)
}
