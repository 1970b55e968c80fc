// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
package knowledge

import (
	"github.com/jeranaias/kbchat-tui/internal/session"
)

// UploadResultMsg delivers the outcome of a document upload.
type UploadResultMsg struct {
	Req session.UploadRequest
	Err error
}

// WebAddResultMsg delivers the outcome of a web-source registration.
type WebAddResultMsg struct {
	Req session.WebAddRequest
	Err error
}

// DeleteResultMsg delivers the outcome of a document deletion.
type DeleteResultMsg struct {
	Req session.DeleteRequest
	Err error
}
