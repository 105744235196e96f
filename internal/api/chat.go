// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// SendChat sends one user message to the assistant and returns the
// reply together with the refreshed suggestion list. The content should
// already be trimmed; the client never sends blank messages.
func (c *Client) SendChat(ctx context.Context, email, content string) (ChatReply, error) {
	var reply ChatReply
	req := ChatRequest{Email: email, Content: content}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", req, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// GetSuggestions fetches the initial follow-up prompts shown before any
// user interaction.
func (c *Client) GetSuggestions(ctx context.Context) ([]string, error) {
	var suggestions []string
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/suggestions", nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
