// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/jeranaias/kbchat-tui/internal/model"
	"github.com/jeranaias/kbchat-tui/internal/ui/components"
)

// timeLayout formats message timestamps in the transcript.
const timeLayout = "15:04"

// View renders the chat view: transcript, status/banner line, input.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	state := m.session.Conversation().State()
	switch state.Phase {
	case model.PhasePending:
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.ThinkingText.Render(" Thinking..."))
	case model.PhaseFailed:
		b.WriteString(components.ErrorBanner(m.theme, m.width, state.Err))
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	return b.String()
}

// renderMessages renders the conversation log for the viewport.
func (m Model) renderMessages() string {
	conv := m.session.Conversation()
	if conv.IsEmpty() {
		return m.theme.EmptyHint.Render("No messages yet. Ask something about this tenant's knowledge base.")
	}

	var b strings.Builder
	for i, msg := range conv.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	return b.String()
}

// renderMessage renders one message: label line, body, optional citations.
func (m Model) renderMessage(msg model.Message) string {
	var label string
	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
	case model.RoleAssistant:
		label = m.theme.AssistantLabel.Render(msg.Role.DisplayName())
	default:
		label = m.theme.SystemLabel.Render(msg.Role.DisplayName())
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(m.theme.MessageTime.Render(msg.Timestamp.Local().Format(timeLayout)))
	b.WriteString("\n")
	b.WriteString(m.renderBody(msg))

	if msg.HasSources() {
		b.WriteString(m.theme.Citation.Render("Sources: " + strings.Join(msg.Sources, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// renderBody renders the message content, through glamour for assistant
// answers when markdown rendering is enabled.
func (m Model) renderBody(msg model.Message) string {
	if msg.Role == model.RoleAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			return strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	return m.theme.MessageBody.Render(msg.Content) + "\n"
}
