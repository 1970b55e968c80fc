// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tenants, conversations,
// messages, and knowledge sources.
//
// This package defines the core domain types used throughout the application.
// Everything here is UI-independent: the conversation's single-flight request
// tracking and the knowledge-source registry are plain state machines that the
// TUI layer consumes but never mutates directly.
//
// # Key Types
//
//   - Tenant: An isolated customer context; all operations are scoped to one
//   - Conversation: Append-only message log with single-flight request state
//   - Message: Single message with role, content, timestamp, and citations
//   - SourceRegistry: Tenant-scoped set of knowledge sources keyed by (type, name)
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Drive a conversation through its state machine:
//
//	conv := model.NewConversation()
//	if msg, ok := conv.Begin("What is the refund policy?"); ok {
//	    // dispatch the query, then later:
//	    conv.Succeed("30 days", time.Now(), []string{"policy.pdf#p3"})
//	}
package model
