// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tenants, conversations,
// messages, and knowledge sources.
package model

import (
	"testing"
	"time"
)

// =============================================================================
// STATE MACHINE TESTS
// =============================================================================

func TestConversation_BeginValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		ok    bool
	}{
		{name: "plain query", query: "how many days?", ok: true},
		{name: "query with padding", query: "  refund policy  ", ok: true},
		{name: "empty query", query: "", ok: false},
		{name: "whitespace only", query: "   \t ", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConversation()
			msg, ok := c.Begin(tc.query)
			if ok != tc.ok {
				t.Fatalf("Begin(%q) ok = %v, want %v", tc.query, ok, tc.ok)
			}
			if !tc.ok {
				if c.MessageCount() != 0 {
					t.Errorf("rejected Begin appended %d messages", c.MessageCount())
				}
				if c.State().Phase != PhaseIdle {
					t.Errorf("rejected Begin moved phase to %v", c.State().Phase)
				}
				return
			}
			if msg.Role != RoleUser {
				t.Errorf("Begin message role = %v, want %v", msg.Role, RoleUser)
			}
			if msg.Content != "how many days?" && msg.Content != "refund policy" {
				t.Errorf("Begin did not trim query: %q", msg.Content)
			}
			if c.State().Phase != PhasePending {
				t.Errorf("phase after Begin = %v, want pending", c.State().Phase)
			}
		})
	}
}

func TestConversation_SingleFlight(t *testing.T) {
	c := NewConversation()

	if _, ok := c.Begin("first"); !ok {
		t.Fatal("first Begin rejected")
	}
	if _, ok := c.Begin("second"); ok {
		t.Fatal("Begin accepted while a request is pending")
	}
	if c.MessageCount() != 1 {
		t.Errorf("rejected Begin changed the log: %d messages", c.MessageCount())
	}
	if got := c.State().Query; got != "first" {
		t.Errorf("pending query = %q, want %q", got, "first")
	}

	c.Succeed("answer", time.Now(), nil)
	if _, ok := c.Begin("second"); !ok {
		t.Error("Begin rejected after the pending request completed")
	}
}

func TestConversation_SucceedAppendsAssistant(t *testing.T) {
	c := NewConversation()
	c.Begin("what is the refund window?")

	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	msg := c.Succeed("30 days", ts, []string{"policy.pdf#p3"})

	if c.State().Phase != PhaseIdle {
		t.Errorf("phase after Succeed = %v, want idle", c.State().Phase)
	}
	if msg.Role != RoleAssistant {
		t.Errorf("role = %v, want assistant", msg.Role)
	}
	if !msg.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want backend timestamp %v", msg.Timestamp, ts)
	}
	if len(msg.Sources) != 1 || msg.Sources[0] != "policy.pdf#p3" {
		t.Errorf("sources = %v, want [policy.pdf#p3]", msg.Sources)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[1].Role != RoleAssistant {
		t.Errorf("order = [%v %v], want [user assistant]", msgs[0].Role, msgs[1].Role)
	}
}

func TestConversation_FailKeepsUserMessage(t *testing.T) {
	c := NewConversation()
	c.Begin("summarize the manual")
	c.Fail("backend unreachable")

	st := c.State()
	if st.Phase != PhaseFailed {
		t.Fatalf("phase = %v, want failed", st.Phase)
	}
	if st.Err != "backend unreachable" {
		t.Errorf("err = %q, want surfaced message", st.Err)
	}
	if c.MessageCount() != 1 {
		t.Errorf("user message rolled back on failure: %d messages", c.MessageCount())
	}

	// A failure does not block the next send.
	if _, ok := c.Begin("retry"); !ok {
		t.Error("Begin rejected from failed phase")
	}
	if c.State().Phase != PhasePending {
		t.Errorf("phase after retry = %v, want pending", c.State().Phase)
	}
}

func TestConversation_DismissError(t *testing.T) {
	c := NewConversation()
	c.Begin("q")
	c.Fail("boom")

	c.DismissError()
	if c.State().Phase != PhaseIdle {
		t.Errorf("phase after dismiss = %v, want idle", c.State().Phase)
	}
	if c.MessageCount() != 1 {
		t.Errorf("dismiss touched the log: %d messages", c.MessageCount())
	}

	// Dismissing with nothing surfaced is a no-op.
	c.Begin("again")
	c.DismissError()
	if c.State().Phase != PhasePending {
		t.Errorf("dismiss cleared a pending request: %v", c.State().Phase)
	}
}

func TestConversation_Clear(t *testing.T) {
	c := NewConversation()
	c.Begin("q")
	c.Fail("boom")
	c.AddNotice("switched tenant")

	c.Clear()
	if !c.IsEmpty() {
		t.Errorf("log not empty after Clear: %d messages", c.MessageCount())
	}
	if c.State().Phase != PhaseIdle {
		t.Errorf("phase after Clear = %v, want idle", c.State().Phase)
	}
}

func TestConversation_AppendOnlyOrder(t *testing.T) {
	c := NewConversation()
	c.Begin("one")
	c.Succeed("a1", time.Now(), nil)
	c.Begin("two")
	c.Succeed("a2", time.Now(), nil)

	want := []string{"one", "a1", "two", "a2"}
	msgs := c.Messages()
	if len(msgs) != len(want) {
		t.Fatalf("message count = %d, want %d", len(msgs), len(want))
	}
	for i, content := range want {
		if msgs[i].Content != content {
			t.Errorf("messages[%d] = %q, want %q", i, msgs[i].Content, content)
		}
	}

	last, ok := c.LastMessage()
	if !ok || last.Content != "a2" {
		t.Errorf("LastMessage = %q, %v", last.Content, ok)
	}
}

// =============================================================================
// PHASE TESTS
// =============================================================================

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhasePending, "pending"},
		{PhaseFailed, "failed"},
		{Phase(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestRequestState_InFlight(t *testing.T) {
	if (RequestState{Phase: PhaseIdle}).InFlight() {
		t.Error("idle reported in flight")
	}
	if !(RequestState{Phase: PhasePending}).InFlight() {
		t.Error("pending not reported in flight")
	}
	if (RequestState{Phase: PhaseFailed}).InFlight() {
		t.Error("failed reported in flight")
	}
}
