// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root Bubble Tea model for the kbchat TUI.
//
// The root model owns the tenant picker and the two tenant-scoped views
// (chat and knowledge manager). All tenant switching funnels through here:
// selecting a tenant in the picker calls Session.Select, which clears both
// stores before the views refresh, and in-flight results from the previous
// tenant are later dropped by the session's epoch guard.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/kbchat-tui/internal/backend"
	"github.com/jeranaias/kbchat-tui/internal/config"
	"github.com/jeranaias/kbchat-tui/internal/model"
	"github.com/jeranaias/kbchat-tui/internal/session"
	"github.com/jeranaias/kbchat-tui/internal/ui/chat"
	"github.com/jeranaias/kbchat-tui/internal/ui/components"
	"github.com/jeranaias/kbchat-tui/internal/ui/knowledge"
	"github.com/jeranaias/kbchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// TenantsReloadedMsg replaces the picker's tenant list after the directory
// file changed on disk. The active session is never touched by a reload.
type TenantsReloadedMsg struct {
	Tenants []model.Tenant
}

// =============================================================================
// KEY MAP
// =============================================================================

type keyMap struct {
	Quit       key.Binding
	PickTenant key.Binding
	ToggleView key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		PickTenant: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "tenant")),
		ToggleView: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "chat/knowledge")),
	}
}

// =============================================================================
// VIEWS
// =============================================================================

type activeView int

const (
	viewPicker activeView = iota
	viewChat
	viewKnowledge
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root model.
type App struct {
	theme *styles.Theme
	keys  keyMap
	log   *zap.Logger

	session *session.Session
	client  *backend.Client

	picker    components.TenantPicker
	chat      chat.Model
	knowledge knowledge.Model

	view   activeView
	width  int
	height int
}

// NewApp wires the root model.
func NewApp(cfg *config.Config, tenants []model.Tenant, sess *session.Session, client *backend.Client, log *zap.Logger) App {
	theme := styles.NewTheme()
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		theme:     theme,
		keys:      defaultKeyMap(),
		log:       log,
		session:   sess,
		client:    client,
		picker:    components.NewTenantPicker(tenants, 0, 0),
		chat:      chat.New(sess, client, theme, cfg.UI.Markdown, cfg.UI.WordWrap),
		knowledge: knowledge.New(sess, client, theme),
		view:      viewPicker,
	}
}

// Init starts the cursor blink.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages. Operation results are routed by type, not by the
// view currently shown: an upload finishing while the user reads the chat
// still has to resolve against the session.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := max(a.height-4, 4)
		a.picker.SetSize(a.width, contentHeight)
		a.chat.SetSize(a.width, contentHeight)
		a.knowledge.SetSize(a.width, contentHeight)
		return a, nil

	case TenantsReloadedMsg:
		a.picker.SetTenants(msg.Tenants)
		return a, nil

	case chat.QueryResultMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case knowledge.UploadResultMsg, knowledge.WebAddResultMsg, knowledge.DeleteResultMsg:
		var cmd tea.Cmd
		a.knowledge, cmd = a.knowledge.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		// While the picker filter is capturing input, every other key
		// belongs to it.
		if a.view == viewPicker && a.picker.Filtering() {
			return a, a.picker.Update(msg)
		}
		if key.Matches(msg, a.keys.PickTenant) {
			a.view = viewPicker
			return a, nil
		}
		if key.Matches(msg, a.keys.ToggleView) && a.session.HasTenant() {
			if a.view == viewChat {
				a.view = viewKnowledge
			} else {
				a.view = viewChat
			}
			return a, nil
		}
		if a.view == viewPicker && msg.Type == tea.KeyEnter {
			return a.selectTenant()
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewPicker:
		cmd = a.picker.Update(msg)
	case viewChat:
		a.chat, cmd = a.chat.Update(msg)
	case viewKnowledge:
		a.knowledge, cmd = a.knowledge.Update(msg)
	}
	return a, cmd
}

// selectTenant activates the highlighted tenant. Re-selecting the active
// tenant fires no resets and keeps the conversation intact. An actual switch
// leaves a system notice at the top of the fresh conversation and clears any
// text left in the knowledge inputs.
func (a App) selectTenant() (tea.Model, tea.Cmd) {
	tenant, ok := a.picker.Selected()
	if !ok {
		return a, nil
	}
	if a.session.Select(tenant) {
		a.session.Conversation().AddNotice("Now chatting with " + tenant.Name)
		a.chat.Refresh()
		a.knowledge.Reset()
	}
	a.view = viewChat
	return a, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the application frame around the active view.
func (a App) View() string {
	var b strings.Builder

	title := a.theme.HeaderTitle.Render("kbchat")
	subtitle := a.theme.HeaderSubtitle.Render("Multi-Tenant Chatbot")
	if t := a.session.Tenant(); t != nil {
		subtitle = a.theme.HeaderSubtitle.Render(t.Name + " | " + t.Description)
	}
	b.WriteString(a.theme.Header.Render(title + "  " + subtitle))
	b.WriteString("\n")

	if a.view != viewPicker {
		b.WriteString(a.renderTabs())
		b.WriteString("\n")
	}

	switch a.view {
	case viewPicker:
		b.WriteString(a.picker.View())
	case viewChat:
		b.WriteString(a.chat.View())
	case viewKnowledge:
		b.WriteString(a.knowledge.View())
	}
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

// renderTabs renders the Chat / Knowledge Base tab bar.
func (a App) renderTabs() string {
	chatTab := a.theme.Tab.Render("Chat")
	knowledgeTab := a.theme.Tab.Render("Knowledge Base")
	switch a.view {
	case viewChat:
		chatTab = a.theme.TabActive.Render("Chat")
	case viewKnowledge:
		knowledgeTab = a.theme.TabActive.Render("Knowledge Base")
	}
	return chatTab + knowledgeTab
}

// renderStatusBar renders the shortcut help line.
func (a App) renderStatusBar() string {
	shortcuts := []key.Binding{a.keys.PickTenant, a.keys.ToggleView, a.keys.Quit}
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		h := sc.Help()
		parts = append(parts,
			a.theme.ShortcutKey.Render(h.Key)+" "+a.theme.ShortcutDesc.Render(h.Desc))
	}
	return a.theme.StatusBar.Render(strings.Join(parts, "   "))
}
