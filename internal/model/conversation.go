// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessages caps the locally held conversation history. The
// authoritative history lives server-side, so pruning here only bounds
// client memory.
const MaxMessages = 500

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the client-side view of a chat session: an ordered
// append-only sequence of messages plus light metadata.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `json:"messages"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the history in strict call order.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	c.prune()
}

// AppendUser creates and appends a user message, returning it.
func (c *Conversation) AppendUser(content string) Message {
	msg := NewUserMessage(content)
	c.Append(msg)
	return msg
}

// AppendBot creates and appends a bot message, returning it.
func (c *Conversation) AppendBot(content string) Message {
	msg := NewBotMessage(content)
	c.Append(msg)
	return msg
}

// Last returns the most recent message, or a zero Message when empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastUser returns the most recent user-authored message.
func (c *Conversation) LastUser() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == ChatRoleUser {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear removes all messages.
func (c *Conversation) Clear() {
	c.Messages = make([]Message, 0)
	c.UpdatedAt = time.Now()
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle derives a title from the first user message if unset.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == ChatRoleUser {
			c.Title = msg.Preview(50)
			return
		}
	}
}

// GetTitle returns the title or a default for untitled conversations.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// prune drops the oldest messages once the cap is exceeded.
func (c *Conversation) prune() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
}
