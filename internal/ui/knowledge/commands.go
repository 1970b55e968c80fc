// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
package knowledge

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/session"
)

// uploadCmd reads the document at path and uploads it. The file is opened
// inside the command so a slow disk cannot stall the update loop; an open
// failure surfaces through the same result path as a transport failure.
func uploadCmd(client *backend.Client, req session.UploadRequest, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return UploadResultMsg{Req: req, Err: err}
		}
		defer f.Close()

		err = client.UploadDocument(context.Background(), req.TenantID, req.Filename, f)
		return UploadResultMsg{Req: req, Err: err}
	}
}

// webAddCmd registers the trimmed URL as a web source.
func webAddCmd(client *backend.Client, req session.WebAddRequest) tea.Cmd {
	return func() tea.Msg {
		err := client.RegisterWebSource(context.Background(), req.TenantID, req.URL)
		return WebAddResultMsg{Req: req, Err: err}
	}
}

// deleteCmd deletes an uploaded document. Web sources never get here; they
// are removed locally by the session without a backend call.
func deleteCmd(client *backend.Client, req session.DeleteRequest) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteDocument(context.Background(), req.TenantID, req.Name)
		return DeleteResultMsg{Req: req, Err: err}
	}
}
