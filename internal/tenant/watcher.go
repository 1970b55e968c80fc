// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tenant loads the tenant directory.
package tenant

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jeranaias/kbchat-tui/internal/model"
)

// =============================================================================
// DIRECTORY WATCHER
// =============================================================================

// debounceDelay coalesces the burst of events an editor emits per save.
const debounceDelay = 250 * time.Millisecond

// Watcher reloads the tenant directory file when it changes and hands the
// new list to the onReload callback. Parse failures keep the previous list;
// the callback only ever sees a valid directory.
type Watcher struct {
	path     string
	onReload func([]model.Tenant)
	log      *zap.Logger

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	pending time.Time
}

// NewWatcher creates a watcher for the directory file at path. The parent
// directory is watched rather than the file itself, so editors that replace
// the file on save (rename-over) keep triggering reloads.
func NewWatcher(path string, log *zap.Logger, onReload func([]model.Tenant)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		path:     path,
		onReload: onReload,
		log:      log,
		watcher:  fsw,
		ctx:      ctx,
		cancel:   cancel,
	}

	go w.processEvents()
	go w.processPending()
	return w, nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents marks the directory file pending on write/create/rename.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("tenant directory watch error", zap.Error(err))
		}
	}
}

// processPending debounces pending changes and performs the reload.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && time.Since(w.pending) >= debounceDelay
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if !due {
				continue
			}

			tenants, err := Load(w.path)
			if err != nil {
				w.log.Warn("tenant directory reload failed, keeping previous list",
					zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Info("tenant directory reloaded",
				zap.String("path", w.path), zap.Int("tenants", len(tenants)))
			w.onReload(tenants)
		}
	}
}
