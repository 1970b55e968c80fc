// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge-manager view for the TUI.
package knowledge

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/model"
	"github.com/jeranaias/kbchat-tui/internal/session"
	"github.com/jeranaias/kbchat-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	sess := session.New(nil)
	sess.Select(model.Tenant{ID: "tenant1", Name: "Fieldmate"})
	m := New(sess, backend.NewClient(nil), styles.NewTheme())
	m.SetSize(80, 24)
	return m, sess
}

func stamped(sess *session.Session) session.Request {
	return session.Request{TenantID: "tenant1", Epoch: sess.Epoch()}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_Upload(t *testing.T) {
	m, _ := newTestModel(t)
	m.fileInput.SetValue("./docs/manual.pdf")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("upload submit returned no command")
	}
	if !m.Busy() {
		t.Error("view not busy while upload is in flight")
	}
}

func TestSubmit_EmptyPathIsNoOp(t *testing.T) {
	m, _ := newTestModel(t)
	m.fileInput.SetValue("   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty path dispatched a command")
	}
	if m.Busy() {
		t.Error("view busy after rejected submit")
	}
}

func TestSubmit_WebAdd(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusURL {
		t.Fatalf("focus after tab = %v, want URL input", m.focus)
	}
	m.urlInput.SetValue("https://example.com/docs")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("web-add submit returned no command")
	}
	if !m.Busy() {
		t.Error("view not busy while registration is in flight")
	}
}

func TestSubmit_WhileBusyIsNoOp(t *testing.T) {
	m, _ := newTestModel(t)
	m.fileInput.SetValue("a.pdf")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.fileInput.SetValue("b.pdf")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("submit dispatched while another operation is in flight")
	}
}

// =============================================================================
// RESULT TESTS
// =============================================================================

func TestUploadResult_Success(t *testing.T) {
	m, sess := newTestModel(t)
	m.fileInput.SetValue("manual.pdf")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	req := session.UploadRequest{Request: stamped(sess), Filename: "manual.pdf"}
	m, _ = m.Update(UploadResultMsg{Req: req})

	if m.Busy() {
		t.Error("view still busy after result")
	}
	if m.fileInput.Value() != "" {
		t.Error("file input not cleared on success")
	}
	if !sess.Sources().Contains(model.SourceDocument, "manual.pdf") {
		t.Error("source missing after successful upload")
	}
}

func TestWebAddResult_FailureKeepsURL(t *testing.T) {
	m, sess := newTestModel(t)
	m.focus = focusURL
	m.urlInput.SetValue("https://example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	req := session.WebAddRequest{Request: stamped(sess), URL: "https://example.com"}
	m, _ = m.Update(WebAddResultMsg{Req: req, Err: errors.New("could not fetch url")})

	if m.urlInput.Value() != "https://example.com" {
		t.Error("URL input cleared on failure; it should stay for retry")
	}
	if sess.Sources().Len() != 0 {
		t.Error("failed registration inserted a source")
	}
	if sess.KnowledgeError() == "" {
		t.Error("failure did not raise the knowledge banner")
	}
}

func TestDeleteFlow_Document(t *testing.T) {
	m, sess := newTestModel(t)
	sess.Sources().Add(model.KnowledgeSource{Type: model.SourceDocument, Name: "manual.pdf"})
	m.Refresh()
	m.focus = focusTable

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if cmd == nil {
		t.Fatal("document delete returned no command")
	}
	if !sess.Sources().Contains(model.SourceDocument, "manual.pdf") {
		t.Fatal("entry removed before the backend call resolved")
	}

	req := session.DeleteRequest{Request: stamped(sess), Name: "manual.pdf"}
	m, _ = m.Update(DeleteResultMsg{Req: req})
	if sess.Sources().Contains(model.SourceDocument, "manual.pdf") {
		t.Error("entry still present after successful delete")
	}
	if m.Busy() {
		t.Error("view still busy after delete resolved")
	}
}

func TestDeleteFlow_WebIsLocal(t *testing.T) {
	m, sess := newTestModel(t)
	sess.Sources().Add(model.KnowledgeSource{Type: model.SourceWeb, Name: "https://example.com"})
	m.Refresh()
	m.focus = focusTable

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if cmd != nil {
		t.Error("web removal dispatched a backend call")
	}
	if sess.Sources().Len() != 0 {
		t.Error("web entry not removed locally")
	}
	if m.Busy() {
		t.Error("view busy after local removal")
	}
}

// =============================================================================
// TENANT SWITCH TESTS
// =============================================================================

func TestReset_ClearsInputsOnTenantSwitch(t *testing.T) {
	m, sess := newTestModel(t)
	sess.Sources().Add(model.KnowledgeSource{Type: model.SourceDocument, Name: "manual.pdf"})
	m.Refresh()
	m.fileInput.SetValue("./docs/manual.pdf")
	m.urlInput.SetValue("https://example.com")

	sess.Select(model.Tenant{ID: "tenant2", Name: "SEO Service"})
	m.Reset()

	if m.fileInput.Value() != "" {
		t.Error("file input kept the previous tenant's path")
	}
	if m.urlInput.Value() != "" {
		t.Error("URL input kept the previous tenant's URL")
	}
	if len(m.listed) != 0 {
		t.Errorf("table still lists %d sources from the previous tenant", len(m.listed))
	}
}

func TestStaleUploadResult_NothingLingers(t *testing.T) {
	m, sess := newTestModel(t)
	m.fileInput.SetValue("manual.pdf")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req := session.UploadRequest{Request: stamped(sess), Filename: "manual.pdf"}

	// Tenant switches while the upload is in flight; the root model resets
	// the view at switch time, then the stale result arrives.
	sess.Select(model.Tenant{ID: "tenant2", Name: "SEO Service"})
	m.Reset()
	m, _ = m.Update(UploadResultMsg{Req: req})

	if m.Busy() {
		t.Error("view still busy after stale result")
	}
	if m.fileInput.Value() != "" {
		t.Error("previous tenant's path visible under the new tenant")
	}
	if sess.Sources().Len() != 0 {
		t.Error("stale upload inserted into the new tenant's registry")
	}
}

// =============================================================================
// FOCUS TESTS
// =============================================================================

func TestCycleFocus(t *testing.T) {
	m, _ := newTestModel(t)
	if m.focus != focusFile {
		t.Fatalf("initial focus = %v, want file input", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusURL {
		t.Errorf("focus after tab = %v, want URL input", m.focus)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusTable {
		t.Errorf("focus after two tabs = %v, want table", m.focus)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusFile {
		t.Errorf("focus wraps back to file input, got %v", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusTable {
		t.Errorf("shift+tab should cycle backwards, got %v", m.focus)
	}
}
