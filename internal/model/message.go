// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tenants, conversations,
// messages, and knowledge sources.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TENANT TYPE
// =============================================================================

// Tenant is an isolated customer/organization context. The ID is opaque and
// unique; tenants are immutable once listed by the directory.
type Tenant struct {
	ID          string `toml:"id" json:"id"`
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
}

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleSystem is used for local notices (tenant switched, etc.).
	// System messages never leave the client.
	RoleSystem Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
// Messages are immutable once appended to a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Sources holds citation identifiers returned with an assistant answer
	// (e.g. "policy.pdf#p3"). Order is preserved as returned by the backend.
	Sources []string `json:"sources,omitempty"`
}

// NewMessage creates a new message with a generated ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        generateMessageID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message with a server-supplied
// timestamp and citation list. A zero timestamp falls back to the local clock.
func NewAssistantMessage(content string, timestamp time.Time, sources []string) Message {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	// Copy so the message stays immutable even if the caller reuses the slice.
	var cited []string
	if len(sources) > 0 {
		cited = make([]string, len(sources))
		copy(cited, sources)
	}
	return Message{
		ID:        generateMessageID(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: timestamp,
		Sources:   cited,
	}
}

// HasSources returns true if the message carries citations.
func (m Message) HasSources() bool {
	return len(m.Sources) > 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateMessageID creates a unique message ID.
func generateMessageID() string {
	return "msg_" + uuid.NewString()
}
