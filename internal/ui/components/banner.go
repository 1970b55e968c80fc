// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the kbchat TUI.
package components

import (
	"github.com/jeranaias/kbchat-tui/internal/ui/styles"
	"github.com/jeranaias/kbchat-tui/internal/util"
)

// ErrorBanner renders a component-scoped error banner line. The chat view and
// the knowledge view each own one; they never share state. An empty message
// renders nothing.
func ErrorBanner(theme *styles.Theme, width int, message string) string {
	if message == "" {
		return ""
	}
	// Keep the banner on one line; long backend messages get truncated.
	return theme.ErrorBanner.Render(util.TruncateWidth("Error: "+message, max(width-4, 10)))
}
