// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the assistant chat screen for the TUI.
//
// This file defines the Bubble Tea message types used by the screen.
// All message types follow Bubble Tea conventions and are immutable.
package chat

import "github.com/fitmate/fitmate-tui/internal/api"

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ReplyMsg delivers the assistant's reply for an in-flight send.
type ReplyMsg struct {
	Reply api.ChatReply
}

// SendFailedMsg reports that an in-flight send settled with an error.
// The awaiting-reply state is cleared on this path too.
type SendFailedMsg struct {
	Err error
}

// SuggestionsMsg delivers the initial follow-up prompts, fetched once
// at screen creation.
type SuggestionsMsg struct {
	Suggestions []string
	Err         error
}
