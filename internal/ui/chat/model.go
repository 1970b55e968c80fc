// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/session"
	"github.com/jeranaias/kbchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the chat view: a message viewport over the conversation log, a
// single-line input, and a spinner shown while a request is pending.
type Model struct {
	session *session.Session
	client  *backend.Client
	theme   *styles.Theme

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	markdown bool
	wordWrap int
	renderer *glamour.TermRenderer

	width  int
	height int
}

// New creates the chat view bound to the given session and backend client.
func New(sess *session.Session, client *backend.Client, theme *styles.Theme, markdown bool, wordWrap int) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	return Model{
		session:  sess,
		client:   client,
		theme:    theme,
		viewport: viewport.New(0, 0),
		input:    input,
		spin:     spin,
		markdown: markdown,
		wordWrap: wordWrap,
	}
}

// SetSize resizes the view. The glamour renderer wraps to the viewport
// width, so it is rebuilt on resize.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 1
	bannerHeight := 1
	m.viewport.Width = width
	m.viewport.Height = max(height-inputHeight-bannerHeight, 1)

	if m.markdown {
		wrap := m.wordWrap
		if wrap <= 0 || wrap > width-4 {
			wrap = max(width-4, 20)
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			m.renderer = renderer
		}
	}
	m.Refresh()
}

// Refresh rebuilds the viewport from the conversation log and scrolls to the
// bottom. The root model calls this after a tenant switch.
func (m *Model) Refresh() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// Busy reports whether a chat request is in flight.
func (m *Model) Busy() bool {
	return m.session.Conversation().State().InFlight()
}
