// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/api"
)

// sendTimeout bounds one assistant exchange.
const sendTimeout = 60 * time.Second

// Service is the slice of the API client the chat screen needs.
// *api.Client satisfies it; tests substitute a fake.
type Service interface {
	SendChat(ctx context.Context, email, content string) (api.ChatReply, error)
	GetSuggestions(ctx context.Context) ([]string, error)
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// sendChatCmd performs one assistant exchange off the render loop.
func sendChatCmd(svc Service, email, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		reply, err := svc.SendChat(ctx, email, content)
		if err != nil {
			return SendFailedMsg{Err: err}
		}
		return ReplyMsg{Reply: reply}
	}
}

// fetchSuggestionsCmd loads the initial suggestion chips.
func fetchSuggestionsCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		suggestions, err := svc.GetSuggestions(ctx)
		return SuggestionsMsg{Suggestions: suggestions, Err: err}
	}
}
