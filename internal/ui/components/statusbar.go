// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/ui/styles"
	"github.com/fitmate/fitmate-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusLoading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StatusBar is the single-line bar at the bottom of every screen.
type StatusBar struct {
	Status    Status
	Account   string // signed-in email, empty when logged out
	Shortcuts string // context-dependent key hints
	Width     int

	Theme *styles.Theme
}

// Render renders the bar at the configured width.
func (b StatusBar) Render() string {
	status := b.Status.String()
	if b.Status == StatusError {
		status = b.Theme.StatusError.Render(status)
	} else {
		status = b.Theme.StatusOK.Render(status)
	}

	left := status
	if b.Account != "" {
		left += "  " + b.Account
	}

	// lipgloss.Width ignores the ANSI sequences the styles add.
	right := b.Shortcuts
	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		right = util.TruncateWidth(right, max(b.Width-lipgloss.Width(left)-3, 0))
		gap = 1
	}

	return b.Theme.StatusBar.Width(b.Width).Render(left + strings.Repeat(" ", gap) + right)
}
