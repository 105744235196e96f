// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
	"github.com/fitmate/fitmate-tui/internal/util"
)

// ErrorToast renders a one-line transient error, truncated to the
// available width. An empty result means there is nothing to show.
func ErrorToast(theme *styles.Theme, err error, width int) string {
	if err == nil {
		return ""
	}
	text := "Error: " + err.Error()
	if width > 0 {
		text = util.TruncateWidth(text, width-2)
	}
	return theme.ErrorBanner.Render(text)
}
