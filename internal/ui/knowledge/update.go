// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
package knowledge

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles knowledge view messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			m.cycleFocus(msg.String() == "shift+tab")
			return m, nil
		case "enter":
			return m.submit()
		case "delete", "backspace":
			if m.focus == focusTable {
				return m.removeSelected()
			}
		case "esc":
			m.session.DismissKnowledgeError()
			return m, nil
		}

	case UploadResultMsg:
		m.busy = false
		if m.session.ResolveUpload(msg.Req, msg.Err) && msg.Err == nil {
			m.fileInput.Reset()
			m.Refresh()
		}
		return m, nil

	case WebAddResultMsg:
		m.busy = false
		// On failure the URL input stays populated for retry.
		if m.session.ResolveWebAdd(msg.Req, msg.Err) && msg.Err == nil {
			m.urlInput.Reset()
			m.Refresh()
		}
		return m, nil

	case DeleteResultMsg:
		m.busy = false
		if m.session.ResolveDelete(msg.Req, msg.Err) && msg.Err == nil {
			m.Refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusFile:
		m.fileInput, cmd = m.fileInput.Update(msg)
	case focusURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case focusTable:
		m.sources, cmd = m.sources.Update(msg)
	}
	return m, cmd
}

// cycleFocus moves key focus between the two inputs and the table.
func (m *Model) cycleFocus(backwards bool) {
	order := []focusArea{focusFile, focusURL, focusTable}
	idx := int(m.focus)
	if backwards {
		idx = (idx + len(order) - 1) % len(order)
	} else {
		idx = (idx + 1) % len(order)
	}
	m.focus = order[idx]

	m.fileInput.Blur()
	m.urlInput.Blur()
	m.sources.Blur()
	switch m.focus {
	case focusFile:
		m.fileInput.Focus()
	case focusURL:
		m.urlInput.Focus()
	case focusTable:
		m.sources.Focus()
	}
}

// submit dispatches the focused input. Submission is a no-op while another
// operation is in flight (inputs act disabled rather than queueing).
func (m Model) submit() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.focus {
	case focusFile:
		path := strings.TrimSpace(m.fileInput.Value())
		if path == "" {
			return m, nil
		}
		req, err := m.session.BeginUpload(filepath.Base(path))
		if err != nil {
			return m, nil
		}
		m.busy = true
		return m, uploadCmd(m.client, req, path)

	case focusURL:
		req, err := m.session.BeginWebAdd(m.urlInput.Value())
		if err != nil {
			return m, nil
		}
		m.busy = true
		return m, webAddCmd(m.client, req)
	}
	return m, nil
}

// removeSelected removes the source under the cursor. Documents go through
// the backend delete; web sources are removed locally by the session.
func (m Model) removeSelected() (Model, tea.Cmd) {
	if m.busy || len(m.listed) == 0 {
		return m, nil
	}
	idx := m.sources.Cursor()
	if idx < 0 || idx >= len(m.listed) {
		return m, nil
	}
	src := m.listed[idx]

	req, needsCall, err := m.session.BeginRemove(src.Type, src.Name)
	if err != nil {
		return m, nil
	}
	if !needsCall {
		m.Refresh()
		return m, nil
	}
	m.busy = true
	return m, deleteCmd(m.client, req)
}
