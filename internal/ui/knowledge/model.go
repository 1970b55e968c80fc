// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
package knowledge

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/model"
	"github.com/jeranaias/kbchat-tui/internal/session"
	"github.com/jeranaias/kbchat-tui/internal/ui/styles"
	"github.com/jeranaias/kbchat-tui/internal/util"
)

// =============================================================================
// FOCUS
// =============================================================================

// focusArea is which control owns key input within the knowledge view.
type focusArea int

const (
	focusFile focusArea = iota
	focusURL
	focusTable
)

// =============================================================================
// KNOWLEDGE MODEL
// =============================================================================

// Model is the knowledge-manager view: a PDF path input, a web URL input,
// and the table of the tenant's registered sources.
type Model struct {
	session *session.Session
	client  *backend.Client
	theme   *styles.Theme

	fileInput textinput.Model
	urlInput  textinput.Model
	sources   table.Model

	// listed mirrors the table rows; the cursor index maps back to the
	// untruncated (type, name) identity.
	listed []model.KnowledgeSource

	focus focusArea

	// busy disables submission while an upload, registration, or deletion
	// is in flight (the chosen backpressure: no client-side queue).
	busy bool

	width  int
	height int
}

// New creates the knowledge view bound to the given session and client.
func New(sess *session.Session, client *backend.Client, theme *styles.Theme) Model {
	fileInput := textinput.New()
	fileInput.Placeholder = "Path to a PDF, e.g. ./manual.pdf"
	fileInput.Prompt = "PDF> "
	fileInput.PromptStyle = theme.InputPrompt
	fileInput.Focus()

	urlInput := textinput.New()
	urlInput.Placeholder = "Enter website URL"
	urlInput.Prompt = "URL> "
	urlInput.PromptStyle = theme.InputPrompt

	columns := []table.Column{
		{Title: "Type", Width: 6},
		{Title: "Name", Width: 40},
		{Title: "Added", Width: 16},
	}
	sources := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)

	return Model{
		session:   sess,
		client:    client,
		theme:     theme,
		fileInput: fileInput,
		urlInput:  urlInput,
		sources:   sources,
		focus:     focusFile,
	}
}

// SetSize resizes the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	nameWidth := max(width-30, 20)
	m.sources.SetColumns([]table.Column{
		{Title: "Type", Width: 6},
		{Title: "Name", Width: nameWidth},
		{Title: "Added", Width: 16},
	})
	m.sources.SetHeight(max(height-10, 3))
	m.fileInput.Width = max(width-10, 20)
	m.urlInput.Width = max(width-10, 20)
	m.Refresh()
}

// Refresh rebuilds the source table from the registry. The root model calls
// this after a tenant switch.
func (m *Model) Refresh() {
	list := m.session.Sources().List()
	m.listed = list
	rows := make([]table.Row, len(list))
	for i, src := range list {
		rows[i] = table.Row{
			src.Type.DisplayName(),
			util.TruncateWidth(src.Name, max(m.width-30, 20)),
			src.AddedAt.Local().Format("2006-01-02 15:04"),
		}
	}
	m.sources.SetRows(rows)
}

// Reset clears both inputs and rebuilds the table. The root model calls this
// when the active tenant changes, so no path or URL typed under the previous
// tenant lingers into the new one.
func (m *Model) Reset() {
	m.fileInput.Reset()
	m.urlInput.Reset()
	m.Refresh()
}

// Busy reports whether a knowledge operation is in flight.
func (m *Model) Busy() bool {
	return m.busy
}
