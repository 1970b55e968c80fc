// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles chat view messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc:
			// Esc dismisses a surfaced failure; the user message stays.
			m.session.Conversation().DismissError()
			return m, nil
		}

	case QueryResultMsg:
		if m.session.ResolveQuery(msg.Req, msg.Resp, msg.Err) {
			m.Refresh()
		}
		return m, nil

	case spinner.TickMsg:
		if m.Busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit runs the send path. Rejections (empty input, request already in
// flight, no tenant) are silent no-ops per the conversation's state machine;
// the input keeps its contents only when nothing was accepted.
func (m Model) submit() (Model, tea.Cmd) {
	req, err := m.session.BeginQuery(m.input.Value())
	if err != nil {
		return m, nil
	}

	m.input.Reset()
	m.Refresh()
	return m, tea.Batch(queryCmd(m.client, req), m.spin.Tick)
}
