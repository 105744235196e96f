// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application. It detects
// the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	CoachBubble lipgloss.Style
	BubbleMeta  lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox       lipgloss.Style
	FormLabel     lipgloss.Style
	FieldError    lipgloss.Style
	FormHint      lipgloss.Style
	ButtonActive  lipgloss.Style
	ButtonDimmed  lipgloss.Style

	// ==========================================================================
	// LIST STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListCategory     lipgloss.Style
	ListEmpty        lipgloss.Style

	// ==========================================================================
	// SUGGESTION STYLES
	// ==========================================================================

	SuggestionChip     lipgloss.Style
	SuggestionSelected lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOK     lipgloss.Style
	StatusError  lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	ErrorBanner  lipgloss.Style
	Notice       lipgloss.Style

	// ==========================================================================
	// WELCOME STYLES
	// ==========================================================================

	WelcomeBox   lipgloss.Style
	WelcomeTitle lipgloss.Style
	WelcomeHint  lipgloss.Style
}

// NewTheme builds the theme, detecting the terminal background unless a
// mode ("dark" or "light") is forced by configuration.
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	isDark := termenv.HasDarkBackground()
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.TabActive = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true).
		Underline(true).
		Padding(0, 1)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.UserBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.CoachBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)
	t.BubbleMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FormBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)
	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ButtonActive = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Emerald).
		Bold(true).
		Padding(0, 2)
	t.ButtonDimmed = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Overlay).
		Padding(0, 2)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)
	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Padding(0, 1)
	t.ListCategory = lipgloss.NewStyle().
		Foreground(Amber)
	t.ListEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SuggestionChip = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.SuggestionSelected = lipgloss.NewStyle().
		Foreground(Emerald).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusOK = lipgloss.NewStyle().
		Foreground(Emerald)
	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Emerald)
	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(Rose).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.Notice = lipgloss.NewStyle().
		Foreground(Amber)

	t.WelcomeBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Emerald).
		Padding(1, 4).
		Align(lipgloss.Center)
	t.WelcomeTitle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.WelcomeHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	return t
}
