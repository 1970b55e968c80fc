// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/session"
)

// QueryResultMsg delivers the outcome of a dispatched chat query. Req is the
// session-stamped request the query was issued under; the session compares
// its epoch on resolve and discards results for superseded tenants.
type QueryResultMsg struct {
	Req  session.ChatRequest
	Resp *backend.ChatResponse
	Err  error
}
