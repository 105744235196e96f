// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != ChatRoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, ChatRoleUser)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewBotMessage("a longer reply that needs truncating")
	got := msg.Preview(10)
	if got != "a longe..." {
		t.Errorf("Preview = %q", got)
	}

	short := NewBotMessage("hi")
	if short.Preview(10) != "hi" {
		t.Errorf("short Preview = %q", short.Preview(10))
	}
}

func TestChatRoleDisplayName(t *testing.T) {
	if ChatRoleUser.DisplayName() != "You" {
		t.Errorf("user display = %q", ChatRoleUser.DisplayName())
	}
	if ChatRoleBot.DisplayName() != "Coach" {
		t.Errorf("bot display = %q", ChatRoleBot.DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversationAppendOrder(t *testing.T) {
	conv := NewConversation()

	conv.AppendUser("first")
	conv.AppendBot("second")
	conv.AppendUser("third")

	if conv.Len() != 3 {
		t.Fatalf("Len = %d, want 3", conv.Len())
	}
	if conv.Messages[0].Content != "first" || conv.Messages[2].Content != "third" {
		t.Error("messages not in append order")
	}

	last, ok := conv.Last()
	if !ok || last.Content != "third" {
		t.Errorf("Last = %+v", last)
	}

	lastUser, ok := conv.LastUser()
	if !ok || lastUser.Content != "third" {
		t.Errorf("LastUser = %+v", lastUser)
	}
}

func TestConversationTitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation()
	if conv.GetTitle() != "New Conversation" {
		t.Errorf("empty title = %q", conv.GetTitle())
	}

	conv.AppendBot("welcome")
	conv.AppendUser("how do I lose weight?")
	if conv.GetTitle() != "how do I lose weight?" {
		t.Errorf("title = %q", conv.GetTitle())
	}
}

func TestConversationPrune(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+25; i++ {
		conv.AppendUser("msg")
	}
	if conv.Len() != MaxMessages {
		t.Errorf("Len after prune = %d, want %d", conv.Len(), MaxMessages)
	}
}

// =============================================================================
// RESOURCE TESTS
// =============================================================================

func TestTipFirstImage(t *testing.T) {
	tip := Tip{ID: "t1", Title: "Hydrate"}
	if got := tip.FirstImage(); got != "" {
		t.Errorf("FirstImage on empty list = %q, want empty", got)
	}

	tip.ImageURLs = []string{"https://cdn.example/a.png", "https://cdn.example/b.png"}
	if got := tip.FirstImage(); got != "https://cdn.example/a.png" {
		t.Errorf("FirstImage = %q", got)
	}
}

func TestUserDisplayName(t *testing.T) {
	u := User{Name: "Rina", Email: "rina@example.com"}
	if u.DisplayName() != "Rina" {
		t.Errorf("DisplayName = %q", u.DisplayName())
	}

	anon := User{Email: "budi@example.com"}
	if anon.DisplayName() != "budi" {
		t.Errorf("DisplayName fallback = %q", anon.DisplayName())
	}
}
