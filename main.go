// kbchat TUI - A terminal client for a multi-tenant RAG chatbot backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/config"
	"github.com/jeranaias/kbchat-tui/internal/logging"
	"github.com/jeranaias/kbchat-tui/internal/model"
	"github.com/jeranaias/kbchat-tui/internal/session"
	"github.com/jeranaias/kbchat-tui/internal/tenant"
	"github.com/jeranaias/kbchat-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.kbchat/config.toml)")
	backendURL := flag.String("backend", "", "backend base URL (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("kbchat %s (%s)\n", Version, GitCommit)
		return
	}

	// An empty path lets Load fall back to the default location, where a
	// missing file means "run on defaults" rather than an error.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("starting kbchat", zap.String("version", Version), zap.String("backend", cfg.Backend.URL))

	// First run: seed a starter tenant directory so the picker has content.
	if err := tenant.WriteExample(cfg.Tenants.File); err != nil {
		logger.Warn("could not write example tenant directory", zap.Error(err))
	}
	tenants, err := tenant.Load(cfg.Tenants.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenants: %v\n", err)
		os.Exit(1)
	}

	client := backend.NewClient(&backend.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		Timeout:       time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.Backend.UploadTimeoutSecs) * time.Second,
		Logger:        logger,
	})

	sess := session.New(logger)
	app := ui.NewApp(cfg, tenants, sess, client, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if cfg.Tenants.Watch {
		watcher, err := tenant.NewWatcher(cfg.Tenants.File, logger, func(tenants []model.Tenant) {
			p.Send(ui.TenantsReloadedMsg{Tenants: tenants})
		})
		if err != nil {
			logger.Warn("tenant directory watcher unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "kbchat: %v\n", err)
		os.Exit(1)
	}
}
