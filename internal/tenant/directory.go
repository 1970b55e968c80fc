// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tenant loads the tenant directory.
package tenant

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/kbchat-tui/internal/model"
)

// =============================================================================
// DIRECTORY FILE
// =============================================================================

// directoryFile is the on-disk shape of the tenant directory:
//
//	[[tenant]]
//	id = "tenant1"
//	name = "Fieldmate"
//	description = "Fieldmate Manual Assistant"
type directoryFile struct {
	Tenants []model.Tenant `toml:"tenant"`
}

// Load reads the tenant directory from path. The list is validated for
// non-empty, unique IDs; order is preserved as written.
func Load(path string) ([]model.Tenant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant directory: %w", err)
	}

	var file directoryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tenant directory %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(file.Tenants))
	for i, t := range file.Tenants {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("tenant %d in %s has no id", i+1, path)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tenant id %q in %s", t.ID, path)
		}
		seen[t.ID] = struct{}{}
	}
	return file.Tenants, nil
}

// WriteExample writes a starter directory file so a first run has something
// to select. Existing files are left alone.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	example := directoryFile{
		Tenants: []model.Tenant{
			{ID: "tenant1", Name: "Fieldmate", Description: "Fieldmate Manual Assistant"},
			{ID: "tenant2", Name: "SEO Service", Description: "SEO Knowledge Assistant"},
		},
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create tenant directory file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(example); err != nil {
		return fmt.Errorf("failed to write tenant directory file: %w", err)
	}
	return nil
}
