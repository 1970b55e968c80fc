// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tenant loads the tenant directory.
//
// The directory service that owns tenants lives elsewhere; the client treats
// the tenant list as an immutable input read from a TOML file. An optional
// fsnotify watcher picks up edits to the file without a restart. A reload
// replaces the list handed to the picker but never touches the active
// session: switching to a tenant is always an explicit user action.
package tenant
