// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"errors"
	"testing"

	"github.com/fitmate/fitmate-tui/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	conv := model.NewConversation()
	conv.AppendUser("plan my week")
	conv.AppendBot("Here's a split to start with.")

	if err := store.Save("amel@fitmate.dev", *conv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("amel@fitmate.dev")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	if got.Messages[0].Content != "plan my week" {
		t.Errorf("first message = %q", got.Messages[0].Content)
	}
	if got.Messages[1].Role != model.ChatRoleBot {
		t.Errorf("second role = %q, want bot", got.Messages[1].Role)
	}
}

func TestLoadMissingTranscript(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.Load("nobody@fitmate.dev"); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err = %v, want ErrNoTranscript", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	conv := model.NewConversation()
	conv.AppendUser("hello")
	if err := store.Save("amel@fitmate.dev", *conv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear("amel@fitmate.dev"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear("amel@fitmate.dev"); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if _, err := store.Load("amel@fitmate.dev"); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err after Clear = %v, want ErrNoTranscript", err)
	}
}

func TestTranscriptsAreSeparatedByAccount(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a := model.NewConversation()
	a.AppendUser("a's message")
	b := model.NewConversation()
	b.AppendUser("b's message")

	if err := store.Save("a@fitmate.dev", *a); err != nil {
		t.Fatalf("Save a: %v", err)
	}
	if err := store.Save("b@fitmate.dev", *b); err != nil {
		t.Fatalf("Save b: %v", err)
	}

	got, err := store.Load("a@fitmate.dev")
	if err != nil {
		t.Fatalf("Load a: %v", err)
	}
	if got.Messages[0].Content != "a's message" {
		t.Errorf("a's transcript = %q", got.Messages[0].Content)
	}
}

func TestSanitizeKeepsFilenamesSafe(t *testing.T) {
	cases := map[string]string{
		"Amel@FitMate.dev":   "amel_at_fitmate.dev",
		"weird/..\\name@x.y": "weird_.._name_at_x.y",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
