// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tenants, conversations,
// messages, and knowledge sources.
package model

import (
	"sort"
	"time"
)

// =============================================================================
// KNOWLEDGE SOURCE TYPE
// =============================================================================

// SourceType distinguishes uploaded documents from registered web pages.
type SourceType string

const (
	SourceDocument SourceType = "document"
	SourceWeb      SourceType = "web"
)

// String returns the string representation of the source type.
func (t SourceType) String() string {
	return string(t)
}

// DisplayName returns a human-readable label for the source type.
func (t SourceType) DisplayName() string {
	switch t {
	case SourceDocument:
		return "PDF"
	case SourceWeb:
		return "Web"
	default:
		return string(t)
	}
}

// KnowledgeSource is one entry in a tenant's retrieval corpus as known to the
// client: a document filename or a web URL. Identity is the (Type, Name) pair.
type KnowledgeSource struct {
	Type    SourceType `json:"type"`
	Name    string     `json:"name"`
	AddedAt time.Time  `json:"added_at"`
}

// SourceKey is the identity of a knowledge source within a tenant's registry.
type SourceKey struct {
	Type SourceType
	Name string
}

// Key returns the source's identity.
func (s KnowledgeSource) Key() SourceKey {
	return SourceKey{Type: s.Type, Name: s.Name}
}

// =============================================================================
// SOURCE REGISTRY
// =============================================================================

// SourceRegistry is the tenant-scoped set of knowledge sources the client
// knows about. Entries are inserted only after the corresponding backend call
// succeeds (no optimistic insertion) and removed only after a successful
// delete, so the registry never shows a source that does not exist.
//
// Duplicate adds of the same (type, name) collapse into one entry; a re-add
// refreshes AddedAt. The registry is rebuilt from scratch whenever the active
// tenant changes.
//
// SourceRegistry is not safe for concurrent use; like Conversation it is
// owned by the active tenant session and mutated only from the event loop.
type SourceRegistry struct {
	entries map[SourceKey]KnowledgeSource
}

// NewSourceRegistry creates an empty registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{entries: make(map[SourceKey]KnowledgeSource)}
}

// Add inserts a source after a successful backend call. Adding an existing
// (type, name) replaces the entry, refreshing its AddedAt.
func (r *SourceRegistry) Add(src KnowledgeSource) {
	if src.AddedAt.IsZero() {
		src.AddedAt = time.Now()
	}
	r.entries[src.Key()] = src
}

// Remove deletes the entry for (typ, name). It returns true if an entry was
// present. Removing an absent key is a no-op, so a racing add/delete on the
// same key degrades to last-writer-wins without corruption.
func (r *SourceRegistry) Remove(typ SourceType, name string) bool {
	key := SourceKey{Type: typ, Name: name}
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	return true
}

// Contains reports whether (typ, name) is in the registry.
func (r *SourceRegistry) Contains(typ SourceType, name string) bool {
	_, ok := r.entries[SourceKey{Type: typ, Name: name}]
	return ok
}

// Clear empties the registry. Called on tenant change.
func (r *SourceRegistry) Clear() {
	r.entries = make(map[SourceKey]KnowledgeSource)
}

// Len returns the number of sources in the registry.
func (r *SourceRegistry) Len() int {
	return len(r.entries)
}

// List returns the sources ordered by AddedAt, then type, then name, so the
// knowledge table renders in a stable insertion-like order.
func (r *SourceRegistry) List() []KnowledgeSource {
	out := make([]KnowledgeSource, 0, len(r.entries))
	for _, src := range r.entries {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}
