// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the tenant context and the stores scoped to it.
package session

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// Validation and scoping errors. These are rejected locally and never reach
// the backend client.
var (
	// ErrNoTenant is returned when an operation is attempted with no tenant
	// selected. The UI disables the affected controls, but the session still
	// rejects the call on its own.
	ErrNoTenant = errors.New("no active tenant")

	// ErrEmptyQuery is returned for an empty or whitespace-only chat query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrEmptyURL is returned for an empty or whitespace-only web-source URL.
	ErrEmptyURL = errors.New("url is empty")

	// ErrEmptyFilename is returned when a document upload has no filename.
	ErrEmptyFilename = errors.New("no file selected")

	// ErrBusy is returned when a chat query is sent while another is still
	// in flight. The caller treats it as a no-op (single-flight).
	ErrBusy = errors.New("a chat request is already in flight")
)

// fallbackErrMsg is surfaced when a failure carries no usable message.
const fallbackErrMsg = "request failed"

// =============================================================================
// REQUEST DESCRIPTORS
// =============================================================================

// Request stamps an outbound call with the tenant and epoch it was issued
// under. Resolve methods compare the stamp against the current session to
// detect results that belong to a superseded tenant.
type Request struct {
	TenantID string
	Epoch    uint64
}

// ChatRequest describes an accepted chat query.
type ChatRequest struct {
	Request
	Query string
}

// UploadRequest describes an accepted document upload.
type UploadRequest struct {
	Request
	Filename string
}

// WebAddRequest describes an accepted web-source registration.
type WebAddRequest struct {
	Request
	URL string
}

// DeleteRequest describes an accepted document deletion.
type DeleteRequest struct {
	Request
	Name string
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the tenant context plus the two stores it owns.
type Session struct {
	log *zap.Logger

	tenant *model.Tenant
	epoch  uint64

	conversation *model.Conversation
	sources      *model.SourceRegistry

	// knowledgeErr is the knowledge-manager error banner, independent from
	// the chat banner carried by the conversation's request state.
	knowledgeErr string
}

// New creates a session with no active tenant. A nil logger disables logging.
func New(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		log:          log,
		conversation: model.NewConversation(),
		sources:      model.NewSourceRegistry(),
	}
}

// =============================================================================
// TENANT CONTEXT
// =============================================================================

// Tenant returns the active tenant, or nil when none is selected.
func (s *Session) Tenant() *model.Tenant {
	return s.tenant
}

// HasTenant reports whether a tenant is selected.
func (s *Session) HasTenant() bool {
	return s.tenant != nil
}

// Epoch returns the current session epoch.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Conversation returns the active tenant's conversation store.
func (s *Session) Conversation() *model.Conversation {
	return s.conversation
}

// Sources returns the active tenant's knowledge-source registry.
func (s *Session) Sources() *model.SourceRegistry {
	return s.sources
}

// Select makes the tenant active. Selecting the tenant that is already
// active is idempotent and fires no resets (changed=false). Otherwise both
// stores are cleared synchronously and the epoch is bumped, which turns
// every outstanding request stale before any new fetch can be issued.
func (s *Session) Select(tenant model.Tenant) (changed bool) {
	if s.tenant != nil && s.tenant.ID == tenant.ID {
		return false
	}

	s.reset()
	t := tenant
	s.tenant = &t
	s.log.Info("tenant selected", zap.String("tenant", tenant.ID), zap.Uint64("epoch", s.epoch))
	return true
}

// Deselect returns the session to the no-tenant state, clearing both stores.
func (s *Session) Deselect() {
	if s.tenant == nil {
		return
	}
	s.log.Info("tenant deselected", zap.String("tenant", s.tenant.ID))
	s.reset()
	s.tenant = nil
}

// reset clears both stores and bumps the epoch.
func (s *Session) reset() {
	s.epoch++
	s.conversation.Clear()
	s.sources.Clear()
	s.knowledgeErr = ""
}

// stamp builds a request descriptor for the current tenant and epoch.
func (s *Session) stamp() Request {
	return Request{TenantID: s.tenant.ID, Epoch: s.epoch}
}

// current reports whether a result for req still belongs to this session.
func (s *Session) current(req Request) bool {
	return s.tenant != nil && s.epoch == req.Epoch && s.tenant.ID == req.TenantID
}

// =============================================================================
// CHAT
// =============================================================================

// BeginQuery validates and accepts a chat query. On acceptance the user
// message is already appended and the request tracker is pending; the caller
// must dispatch the returned request and feed the outcome to ResolveQuery.
//
// Rejections (no tenant, empty query, request in flight) are silent no-ops
// for the user; the error tells the caller which rule fired.
func (s *Session) BeginQuery(query string) (ChatRequest, error) {
	if s.tenant == nil {
		return ChatRequest{}, ErrNoTenant
	}
	if strings.TrimSpace(query) == "" {
		return ChatRequest{}, ErrEmptyQuery
	}

	msg, ok := s.conversation.Begin(query)
	if !ok {
		return ChatRequest{}, ErrBusy
	}

	s.log.Debug("chat query accepted",
		zap.String("tenant", s.tenant.ID),
		zap.String("message_id", msg.ID),
		zap.String("preview", msg.Preview(48)))
	return ChatRequest{Request: s.stamp(), Query: msg.Content}, nil
}

// ResolveQuery applies the outcome of a chat request. Results stamped with a
// superseded tenant or epoch are discarded without touching the conversation
// and without surfacing an error. Returns true if the result was applied.
func (s *Session) ResolveQuery(req ChatRequest, resp *backend.ChatResponse, callErr error) bool {
	if !s.current(req.Request) {
		s.log.Debug("discarding stale chat result",
			zap.String("tenant", req.TenantID),
			zap.Uint64("request_epoch", req.Epoch),
			zap.Uint64("session_epoch", s.epoch))
		return false
	}

	if callErr != nil {
		s.conversation.Fail(errorMessage(callErr))
		return true
	}

	var timestamp time.Time
	var sources []string
	answer := ""
	if resp != nil {
		answer = resp.Answer
		timestamp = resp.Timestamp
		sources = resp.Sources
	}
	s.conversation.Succeed(answer, timestamp, sources)
	return true
}

// =============================================================================
// KNOWLEDGE SOURCES
// =============================================================================

// KnowledgeError returns the knowledge-manager error banner, or "".
func (s *Session) KnowledgeError() string {
	return s.knowledgeErr
}

// DismissKnowledgeError clears the knowledge-manager error banner.
func (s *Session) DismissKnowledgeError() {
	s.knowledgeErr = ""
}

// BeginUpload validates and accepts a document upload.
func (s *Session) BeginUpload(filename string) (UploadRequest, error) {
	if s.tenant == nil {
		return UploadRequest{}, ErrNoTenant
	}
	if strings.TrimSpace(filename) == "" {
		return UploadRequest{}, ErrEmptyFilename
	}
	s.knowledgeErr = ""
	return UploadRequest{Request: s.stamp(), Filename: filename}, nil
}

// ResolveUpload applies the outcome of a document upload. The source is
// inserted into the registry only on success; a failure leaves the registry
// unchanged and raises the knowledge banner. Stale results are discarded.
func (s *Session) ResolveUpload(req UploadRequest, callErr error) bool {
	if !s.current(req.Request) {
		s.log.Debug("discarding stale upload result", zap.String("file", req.Filename))
		return false
	}

	if callErr != nil {
		s.knowledgeErr = errorMessage(callErr)
		return true
	}

	s.sources.Add(model.KnowledgeSource{
		Type:    model.SourceDocument,
		Name:    req.Filename,
		AddedAt: time.Now(),
	})
	return true
}

// BeginWebAdd validates and accepts a web-source registration. The URL is
// trimmed; an empty URL is a silent no-op.
func (s *Session) BeginWebAdd(rawURL string) (WebAddRequest, error) {
	if s.tenant == nil {
		return WebAddRequest{}, ErrNoTenant
	}
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return WebAddRequest{}, ErrEmptyURL
	}
	s.knowledgeErr = ""
	return WebAddRequest{Request: s.stamp(), URL: trimmed}, nil
}

// ResolveWebAdd applies the outcome of a web-source registration. On success
// the caller should clear the URL input; on failure it stays populated for
// retry. Returns true if the result was applied (not stale).
func (s *Session) ResolveWebAdd(req WebAddRequest, callErr error) bool {
	if !s.current(req.Request) {
		s.log.Debug("discarding stale web-add result", zap.String("url", req.URL))
		return false
	}

	if callErr != nil {
		s.knowledgeErr = errorMessage(callErr)
		return true
	}

	s.sources.Add(model.KnowledgeSource{
		Type:    model.SourceWeb,
		Name:    req.URL,
		AddedAt: time.Now(),
	})
	return true
}

// BeginRemove starts removal of a knowledge source.
//
// Document sources require a backend delete: the returned request must be
// dispatched and its outcome fed to ResolveDelete; the local entry is removed
// only after the call succeeds. Web sources have no delete route upstream, so
// they are removed locally right away and needsCall is false.
func (s *Session) BeginRemove(typ model.SourceType, name string) (req DeleteRequest, needsCall bool, err error) {
	if s.tenant == nil {
		return DeleteRequest{}, false, ErrNoTenant
	}
	s.knowledgeErr = ""

	if typ == model.SourceWeb {
		s.sources.Remove(model.SourceWeb, name)
		return DeleteRequest{}, false, nil
	}
	return DeleteRequest{Request: s.stamp(), Name: name}, true, nil
}

// ResolveDelete applies the outcome of a document deletion. The local entry
// is removed only on success. Stale results are discarded.
func (s *Session) ResolveDelete(req DeleteRequest, callErr error) bool {
	if !s.current(req.Request) {
		s.log.Debug("discarding stale delete result", zap.String("name", req.Name))
		return false
	}

	if callErr != nil {
		s.knowledgeErr = errorMessage(callErr)
		return true
	}

	s.sources.Remove(model.SourceDocument, req.Name)
	return true
}

// =============================================================================
// HELPERS
// =============================================================================

// errorMessage extracts a user-facing message from a call error: the Message
// field of a normalized *backend.ClientError, the Error() of any other error,
// else a generic fallback.
func errorMessage(err error) string {
	var ce *backend.ClientError
	if errors.As(err, &ce) && strings.TrimSpace(ce.Message) != "" {
		return ce.Message
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return fallbackErrMsg
}
