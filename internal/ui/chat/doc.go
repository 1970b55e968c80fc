// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view is a thin consumer of the session's conversation store: the
// single-flight request state decides whether the input accepts a send and
// whether the spinner or the error banner shows, and the append-only message
// log is what the viewport renders. Backend calls run as Bubble Tea commands;
// their result messages carry the session-stamped request so stale results
// from a superseded tenant are discarded by the session, not the view.
package chat
