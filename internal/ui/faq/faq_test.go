// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package faq

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel() Model {
	m := New(styles.NewTheme("dark"))
	m.width, m.height = 100, 30
	return m
}

func TestFilterMatchesQuestionAndAnswer(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", len(Entries)},
		{"   ", len(Entries)},
		{"BLOCKED", 1},
		{"coach", 2}, // in one question, in another's answer
		{"zzz-no-match", 0},
	}
	for _, tt := range tests {
		got := Filter(Entries, tt.query)
		if len(got) != tt.want {
			t.Errorf("Filter(%q): expected %d entries, got %d", tt.query, tt.want, len(got))
		}
	}
}

func TestFilterIsCaseless(t *testing.T) {
	lower := Filter(Entries, "fitmate")
	upper := Filter(Entries, "FITMATE")
	if len(lower) == 0 || len(lower) != len(upper) {
		t.Errorf("caseless filter mismatch: %d vs %d", len(lower), len(upper))
	}
}

func TestSearchNarrowsPerKeystroke(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(key("/"))
	for _, r := range "blocked" {
		m, _ = m.Update(key(string(r)))
	}

	if len(m.Visible()) != 1 {
		t.Fatalf("expected 1 visible entry, got %d", len(m.Visible()))
	}
	if !strings.Contains(m.Visible()[0].Question, "blocked") {
		t.Errorf("unexpected entry: %q", m.Visible()[0].Question)
	}
}

func TestToggleAnswer(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.expanded != 0 {
		t.Fatal("enter should expand the first answer")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.expanded != -1 {
		t.Error("enter again should collapse")
	}
}

func TestSearchCollapsesAnswer(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(key("/"))
	m, _ = m.Update(key("a"))

	if m.expanded != -1 {
		t.Error("filtering should collapse the expanded answer")
	}
}
