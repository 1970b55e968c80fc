// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tenants, conversations,
// messages, and knowledge sources.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// REQUEST STATE
// =============================================================================

// Phase is the lifecycle phase of the conversation's chat request tracker.
type Phase int

const (
	// PhaseIdle means no chat request is in flight.
	PhaseIdle Phase = iota
	// PhasePending means exactly one chat request is in flight.
	// Begin is a no-op in this phase (single-flight).
	PhasePending
	// PhaseFailed means the last request failed. The user message stays in
	// the log and the error is surfaced until the next accepted action.
	// Sends are permitted from this phase.
	PhaseFailed
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestState is the explicit tagged state of the single-flight chat request
// tracker. It is consumed by the UI (to disable input, show a spinner, or
// render an error banner) but owned entirely by Conversation.
type RequestState struct {
	Phase Phase

	// Query is the dispatched query (Pending and Failed phases).
	Query string

	// Err is the surfaced error message (Failed phase only).
	Err string
}

// InFlight returns true while a chat request is pending.
func (s RequestState) InFlight() bool {
	return s.Phase == PhasePending
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the per-session, append-only message log together with
// the single-flight request tracker that drives the chat view.
//
// Conversation is not safe for concurrent use; it is owned by the active
// tenant session and mutated only from the event loop.
type Conversation struct {
	messages []Message
	state    RequestState
}

// NewConversation creates an empty conversation in the idle state.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0)}
}

// =============================================================================
// STATE MACHINE
// =============================================================================

// Begin validates and accepts a new chat query.
//
// The query is trimmed; empty queries and queries issued while a request is
// already pending are rejected (ok=false) without any side effect. On
// acceptance the user message is appended synchronously, before any network
// activity, so the user's own message is never lost even if the call fails.
func (c *Conversation) Begin(query string) (Message, bool) {
	query = strings.TrimSpace(query)
	if query == "" || c.state.Phase == PhasePending {
		return Message{}, false
	}

	msg := NewUserMessage(query)
	c.messages = append(c.messages, msg)
	c.state = RequestState{Phase: PhasePending, Query: query}
	return msg, true
}

// Succeed completes the pending request with an assistant answer.
// The assistant message is appended and the tracker returns to idle.
func (c *Conversation) Succeed(answer string, timestamp time.Time, sources []string) Message {
	msg := NewAssistantMessage(answer, timestamp, sources)
	c.messages = append(c.messages, msg)
	c.state = RequestState{Phase: PhaseIdle}
	return msg
}

// Fail completes the pending request with an error. The already-appended user
// message is not rolled back; the error is surfaced separately through the
// request state until the next accepted Begin.
func (c *Conversation) Fail(errMsg string) {
	c.state = RequestState{Phase: PhaseFailed, Query: c.state.Query, Err: errMsg}
}

// DismissError clears a surfaced failure without touching the message log.
func (c *Conversation) DismissError() {
	if c.state.Phase == PhaseFailed {
		c.state = RequestState{Phase: PhaseIdle}
	}
}

// Clear wipes the message log and resets the tracker to idle. Called when the
// active tenant changes; any still in-flight request becomes stale and its
// eventual result must be discarded by the session's epoch guard.
func (c *Conversation) Clear() {
	c.messages = make([]Message, 0)
	c.state = RequestState{Phase: PhaseIdle}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current request state.
func (c *Conversation) State() RequestState {
	return c.state
}

// Messages returns the ordered message log. Callers must not mutate it.
func (c *Conversation) Messages() []Message {
	return c.messages
}

// AddNotice appends a local system message (never sent to the backend).
func (c *Conversation) AddNotice(content string) Message {
	msg := NewMessage(RoleSystem, content)
	c.messages = append(c.messages, msg)
	return msg
}

// LastMessage returns the most recent message and true, or false when empty.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// MessageCount returns the number of messages in the log.
func (c *Conversation) MessageCount() int {
	return len(c.messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}
