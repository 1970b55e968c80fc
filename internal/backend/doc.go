// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the knowledge-base chat API.
//
// Every route is tenant-scoped: the tenant ID is a path segment on every
// call, and the caller (the session layer) guarantees exactly one tenant is
// bound to each request. The client performs uniform error normalization:
// any non-2xx response or network failure becomes a *ClientError carrying a
// human-readable message, extracted from a structured error body when the
// backend supplies one.
//
// # Key Types
//
//   - Client: HTTP client for the four tenant-scoped operations
//   - ChatResponse: Answer text with server timestamp and citations
//   - ClientError: Normalized failure with an error category
//
// # Usage
//
//	client := backend.NewClient(nil)
//	resp, err := client.Chat(ctx, "tenant1", "What is the refund policy?")
//
// The client does not retry, cache, or queue; each call is independent and
// at-most-once from the client's perspective.
package backend
