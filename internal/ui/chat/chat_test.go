// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// fakeService records SendChat calls and returns canned replies.
type fakeService struct {
	sends       []string
	reply       api.ChatReply
	sendErr     error
	suggestions []string
	suggestErr  error
}

func (f *fakeService) SendChat(_ context.Context, _, content string) (api.ChatReply, error) {
	f.sends = append(f.sends, content)
	if f.sendErr != nil {
		return api.ChatReply{}, f.sendErr
	}
	return f.reply, nil
}

func (f *fakeService) GetSuggestions(_ context.Context) ([]string, error) {
	return f.suggestions, f.suggestErr
}

func newTestModel(svc Service) Model {
	m := New(styles.NewTheme("dark"), svc, "amel@fitmate.dev", "Amel")
	m.setSize(100, 30)
	return m
}

// drain executes a command tree synchronously and collects the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

// =============================================================================
// SEND PATH
// =============================================================================

func TestSubmitBlankIsNoOp(t *testing.T) {
	for _, input := range []string{"", "   ", "\t  \t"} {
		svc := &fakeService{}
		m := newTestModel(svc)
		m.input.SetValue(input)

		m, cmd := pressEnter(m)
		drain(cmd)

		if len(svc.sends) != 0 {
			t.Errorf("input %q: expected no send, got %d", input, len(svc.sends))
		}
		if !m.conversation.IsEmpty() {
			t.Errorf("input %q: blank submit must not append", input)
		}
		if m.Awaiting() {
			t.Errorf("input %q: blank submit must not set awaiting", input)
		}
	}
}

func TestSubmitAppendsOptimistically(t *testing.T) {
	svc := &fakeService{reply: api.ChatReply{Message: model.NewBotMessage("Try 3x5 back squats.")}}
	m := newTestModel(svc)
	m.input.SetValue("  How do I squat?  ")

	m, cmd := pressEnter(m)

	// The user's message is in the history before the reply arrives.
	last, ok := m.conversation.Last()
	if !ok || last.Role != model.ChatRoleUser {
		t.Fatal("expected optimistic user message")
	}
	if last.Content != "How do I squat?" {
		t.Errorf("content not trimmed: %q", last.Content)
	}
	if !m.Awaiting() {
		t.Error("expected awaiting after submit")
	}
	if m.input.Value() != "" {
		t.Error("input should reset on submit")
	}

	drain(cmd)
	if len(svc.sends) != 1 || svc.sends[0] != "How do I squat?" {
		t.Errorf("unexpected sends: %v", svc.sends)
	}
}

func TestInFlightGuardBlocksResubmission(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(svc)
	m.input.SetValue("first")
	m, cmd := pressEnter(m)
	drain(cmd)

	m.input.SetValue("second")
	m, cmd = pressEnter(m)
	drain(cmd)

	if len(svc.sends) != 1 {
		t.Fatalf("guard failed: %d sends", len(svc.sends))
	}
	if m.conversation.Len() != 1 {
		t.Errorf("guarded submit must not append, got %d messages", m.conversation.Len())
	}
}

// =============================================================================
// SETTLING
// =============================================================================

func TestReplyAppendsAndReplacesSuggestions(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(svc)
	m.suggestions = []string{"old one"}
	m.input.SetValue("hello")
	m, _ = pressEnter(m)

	reply := api.ChatReply{
		Message:     model.NewBotMessage("Hi! What's your goal this week?"),
		Suggestions: []string{"Build muscle", "Lose weight"},
	}
	m, _ = m.Update(ReplyMsg{Reply: reply})

	if m.Awaiting() {
		t.Error("awaiting must clear on reply")
	}
	last, _ := m.conversation.Last()
	if last.Role != model.ChatRoleBot {
		t.Error("reply should be appended as bot message")
	}
	if len(m.Suggestions()) != 2 || m.Suggestions()[0] != "Build muscle" {
		t.Errorf("suggestions not replaced: %v", m.Suggestions())
	}
}

func TestEmptyReplyNotAppended(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.input.SetValue("hello")
	m, _ = pressEnter(m)

	m, _ = m.Update(ReplyMsg{Reply: api.ChatReply{}})

	if m.Awaiting() {
		t.Error("awaiting must clear even for empty replies")
	}
	if m.conversation.Len() != 1 {
		t.Errorf("empty reply must not append, got %d messages", m.conversation.Len())
	}
}

func TestSendFailureClearsAwaiting(t *testing.T) {
	sendErr := errors.New("server unreachable")
	m := newTestModel(&fakeService{sendErr: sendErr})
	m.input.SetValue("hello")
	m, _ = pressEnter(m)

	m, _ = m.Update(SendFailedMsg{Err: sendErr})

	if m.Awaiting() {
		t.Error("awaiting must clear on failure")
	}
	if m.LastError() == nil {
		t.Error("failure should surface as banner error")
	}
	// The optimistic message stays; the user can retry by resending.
	if m.conversation.Len() != 1 {
		t.Errorf("optimistic message should survive failure, got %d", m.conversation.Len())
	}
}

// =============================================================================
// SUGGESTION CHIPS
// =============================================================================

func TestChipFillSendsSuggestion(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(svc)
	m.suggestions = []string{"What should I eat today?", "Plan a workout"}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := pressEnter(m)
	drain(cmd)

	if len(svc.sends) != 1 || svc.sends[0] != "What should I eat today?" {
		t.Fatalf("expected chip content sent, got %v", svc.sends)
	}
	last, _ := m.conversation.Last()
	if last.Content != "What should I eat today?" {
		t.Errorf("chip content should appear in history, got %q", last.Content)
	}
}

func TestChipCycleWrapsToNone(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.suggestions = []string{"a", "b"}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab}) // 0
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab}) // 1
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab}) // none again

	if m.selectedChip != -1 {
		t.Errorf("expected wrap to no selection, got %d", m.selectedChip)
	}
}

func TestSuggestionsFetchFailureLeavesScreenUsable(t *testing.T) {
	m := newTestModel(&fakeService{})
	m, _ = m.Update(SuggestionsMsg{Err: errors.New("timeout")})

	if len(m.Suggestions()) != 0 {
		t.Errorf("failed fetch should leave chips empty, got %v", m.Suggestions())
	}
	if m.LastError() != nil {
		t.Error("suggestion fetch failure must not raise the error banner")
	}
}

func TestInitFetchesSuggestions(t *testing.T) {
	svc := &fakeService{suggestions: []string{"Plan my week"}}
	m := newTestModel(svc)

	var got []string
	for _, msg := range drain(m.Init()) {
		if sm, ok := msg.(SuggestionsMsg); ok {
			got = sm.Suggestions
		}
	}
	if len(got) != 1 || got[0] != "Plan my week" {
		t.Errorf("Init should fetch suggestions, got %v", got)
	}
}

// =============================================================================
// TRANSCRIPT RESTORE
// =============================================================================

func TestRestoreShowsSavedTranscript(t *testing.T) {
	m := newTestModel(&fakeService{})

	conv := model.NewConversation()
	conv.AppendUser("what did we plan yesterday?")
	conv.AppendBot("Full Body A, three times a week.")
	m.Restore(conv)

	if m.Conversation().Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Conversation().Len())
	}
	if !strings.Contains(m.View(), "what did we plan yesterday?") {
		t.Error("restored user message not rendered")
	}
}

func TestRestoreIgnoresEmptyTranscript(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.conversation.AppendUser("live message")

	m.Restore(model.NewConversation())
	m.Restore(nil)

	if m.Conversation().Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Conversation().Len())
	}
}
