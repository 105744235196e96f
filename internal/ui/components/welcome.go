// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the FitMate TUI.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// logo is the welcome banner artwork.
const logo = `
  ______ _ _   __  __       _
 |  ____(_) | |  \/  |     | |
 | |__   _| |_| \  / | __ _| |_ ___
 |  __| | | __| |\/| |/ _` + "`" + ` | __/ _ \
 | |    | | |_| |  | | (_| | ||  __/
 |_|    |_|\__|_|  |_|\__,_|\__\___|
`

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// Welcome is the first screen shown on launch.
type Welcome struct {
	version    string
	serverURL  string
	signedInAs string

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme, version, serverURL string) Welcome {
	return Welcome{
		theme:     theme,
		version:   version,
		serverURL: serverURL,
	}
}

// SetSignedInAs sets the email shown when a session already exists.
func (w *Welcome) SetSignedInAs(email string) {
	w.signedInAs = email
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
		w.height = size.Height
	}
	return w, nil
}

// View renders the welcome screen centered in the terminal.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	hint := "Press Enter to sign in  ·  q to quit"
	if w.signedInAs != "" {
		hint = "Signed in as " + w.signedInAs + "  ·  Press Enter to continue"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		w.theme.WelcomeTitle.Render(logo),
		w.theme.HeaderSubtitle.Render("your personal fitness coach  ·  "+w.version),
		"",
		w.theme.WelcomeHint.Render(hint),
		w.theme.WelcomeHint.Render(w.serverURL),
	)

	box := w.theme.WelcomeBox.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
