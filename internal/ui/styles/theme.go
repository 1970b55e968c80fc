// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the kbchat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CHROME
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// ==========================================================================
	// CHAT VIEW
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemLabel    lipgloss.Style
	MessageTime    lipgloss.Style
	MessageBody    lipgloss.Style
	Citation       lipgloss.Style
	ThinkingText   lipgloss.Style
	Spinner        lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// KNOWLEDGE VIEW
	// ==========================================================================

	SectionTitle  lipgloss.Style
	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
	FieldLabel    lipgloss.Style

	// ==========================================================================
	// BANNERS
	// ==========================================================================

	ErrorBanner lipgloss.Style
	EmptyHint   lipgloss.Style
}

// NewTheme builds the theme for the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}

	accent := lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	subtle := lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	green := lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	red := lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}

	t.Header = lipgloss.NewStyle().Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.HeaderSubtitle = lipgloss.NewStyle().Foreground(subtle)
	t.StatusBar = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(subtle)

	t.Tab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)
	t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(accent).
		Underline(true).Padding(0, 2)

	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(green)
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.SystemLabel = lipgloss.NewStyle().Bold(true).Foreground(subtle)
	t.MessageTime = lipgloss.NewStyle().Foreground(subtle)
	t.MessageBody = lipgloss.NewStyle()
	t.Citation = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	t.ThinkingText = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	t.Spinner = lipgloss.NewStyle().Foreground(accent)
	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(accent)

	t.SectionTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.TableHeader = lipgloss.NewStyle().Bold(true).Foreground(subtle)
	t.TableRow = lipgloss.NewStyle()
	t.TableSelected = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.FieldLabel = lipgloss.NewStyle().Foreground(subtle)

	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(red).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(red).
		Padding(0, 1)
	t.EmptyHint = lipgloss.NewStyle().Foreground(subtle).Italic(true).Padding(1, 2)

	return t
}
