// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// String returns the string representation of the role.
func (r ChatRole) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role. The user's
// own name is supplied by the caller; this is the fallback label.
func (r ChatRole) DisplayName() string {
	switch r {
	case ChatRoleUser:
		return "You"
	case ChatRoleBot:
		return "Coach"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message. Messages are immutable once
// created; the conversation history is append-only.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role ChatRole, content string) Message {
	return Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(content string) Message {
	return NewMessage(ChatRoleUser, content)
}

// NewBotMessage creates an assistant-authored message.
func NewBotMessage(content string) Message {
	return NewMessage(ChatRoleBot, content)
}

// Preview returns a truncated single-line preview of the content.
func (m Message) Preview(maxRunes int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxRunes {
		return m.Content
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// IsEmpty reports whether the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}
