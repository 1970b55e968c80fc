// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
//
// The view submits document uploads and web-source registrations through the
// session and renders the session's source registry as a table. Inputs are
// disabled while an operation is in flight; a failed operation raises the
// knowledge banner and leaves both the registry and the inputs untouched so
// the user can retry.
package knowledge
