// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the tenant context and the stores scoped to it.
//
// A Session binds the conversation log and the knowledge-source registry to
// exactly one active tenant. Selecting a different tenant synchronously
// clears both stores before any new request can be issued, and bumps a
// session epoch. Requests carry the epoch they were issued under; a result
// arriving under an older epoch is stale and silently discarded, so a slow
// response for tenant A can never be misattributed to tenant B.
//
// The Session is the sole mutator of "which tenant is active" and the only
// component permitted to reset the two stores.
//
// Session is not safe for concurrent use: Begin*/Resolve* are called from
// the Bubble Tea update loop, while the blocking backend calls themselves
// run in command goroutines between Begin and Resolve.
package session
