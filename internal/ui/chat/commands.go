// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/session"
)

// queryCmd dispatches the accepted chat request to the backend. The client
// enforces its own timeout; the command blocks in its own goroutine and
// reports back through a QueryResultMsg.
func queryCmd(client *backend.Client, req session.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), req.TenantID, req.Query)
		return QueryResultMsg{Req: req, Resp: resp, Err: err}
	}
}
