// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for kbchat.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - path passed on the command line (-config)
//   - ~/.kbchat/config.toml
//   - Built-in defaults
package config
