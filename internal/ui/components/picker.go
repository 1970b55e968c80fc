// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the kbchat TUI.
package components

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/kbchat-tui/internal/model"
)

// =============================================================================
// TENANT PICKER
// =============================================================================

// tenantItem adapts a tenant to the bubbles list item interface.
type tenantItem struct {
	tenant model.Tenant
}

func (i tenantItem) Title() string       { return i.tenant.Name }
func (i tenantItem) Description() string { return i.tenant.Description }
func (i tenantItem) FilterValue() string { return i.tenant.Name + " " + i.tenant.ID }

// TenantPicker is the tenant selection list shown before any tenant is
// active and whenever the user switches tenants.
type TenantPicker struct {
	list list.Model
}

// NewTenantPicker creates a picker over the given tenant directory.
func NewTenantPicker(tenants []model.Tenant, width, height int) TenantPicker {
	l := list.New(toItems(tenants), list.NewDefaultDelegate(), width, height)
	l.Title = "Select a tenant"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return TenantPicker{list: l}
}

// SetTenants replaces the listed tenants (directory reload).
func (p *TenantPicker) SetTenants(tenants []model.Tenant) {
	p.list.SetItems(toItems(tenants))
}

// SetSize resizes the picker.
func (p *TenantPicker) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

// Update forwards a message to the underlying list.
func (p *TenantPicker) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

// Selected returns the highlighted tenant, if any.
func (p *TenantPicker) Selected() (model.Tenant, bool) {
	item, ok := p.list.SelectedItem().(tenantItem)
	if !ok {
		return model.Tenant{}, false
	}
	return item.tenant, true
}

// Filtering reports whether the list is in filter-entry mode, in which case
// key presses belong to the filter rather than to global shortcuts.
func (p *TenantPicker) Filtering() bool {
	return p.list.FilterState() == list.Filtering
}

// View renders the picker.
func (p *TenantPicker) View() string {
	return p.list.View()
}

func toItems(tenants []model.Tenant) []list.Item {
	items := make([]list.Item, len(tenants))
	for i, t := range tenants {
		items[i] = tenantItem{tenant: t}
	}
	return items
}
