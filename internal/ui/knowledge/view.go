// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
package knowledge

import (
	"strings"

	"github.com/jeranaias/kbchat-tui/internal/ui/components"
)

// View renders the knowledge view: inputs, banner, source table.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.SectionTitle.Render("Add sources"))
	b.WriteString("\n")
	b.WriteString(m.fileInput.View())
	b.WriteString("\n")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.theme.ThinkingText.Render("Working..."))
	} else if msg := m.session.KnowledgeError(); msg != "" {
		b.WriteString(components.ErrorBanner(m.theme, m.width, msg))
	}
	b.WriteString("\n\n")

	b.WriteString(m.theme.SectionTitle.Render("Knowledge sources"))
	b.WriteString("\n")
	if len(m.listed) == 0 {
		b.WriteString(m.theme.EmptyHint.Render("No sources yet. Upload a PDF or add a website."))
	} else {
		b.WriteString(m.sources.View())
	}
	return b.String()
}
