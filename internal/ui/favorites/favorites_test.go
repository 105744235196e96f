// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package favorites

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/favorites"
	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

type fakeService struct {
	groups   []api.FavoriteGroup
	removals []api.RemoveFavoriteRequest
}

func (f *fakeService) GetFavorites(_ context.Context, _ string) ([]api.FavoriteGroup, error) {
	return f.groups, nil
}

func (f *fakeService) RemoveFavorite(_ context.Context, req api.RemoveFavoriteRequest) error {
	f.removals = append(f.removals, req)
	return nil
}

func testGroups() []api.FavoriteGroup {
	return []api.FavoriteGroup{{
		UserEmail: "amel@fitmate.dev",
		Workouts: []model.Workout{
			{ID: "w1", Title: "Morning HIIT"},
			{ID: "w2", Title: "Leg Day"},
		},
		Meals: []model.Meal{{ID: "m1", Title: "Protein Bowl"}},
		Tips:  []model.Tip{{ID: "t1", Title: "Sleep 8 hours"}},
	}}
}

func loaded(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := New(styles.NewTheme("dark"), svc, "amel@fitmate.dev")
	m.width, m.height = 100, 30
	for _, msg := range drain(m.Init()) {
		m, _ = m.Update(msg)
	}
	return m
}

func step(m Model, msg tea.Msg) Model {
	m, cmd := m.Update(msg)
	for _, out := range drain(cmd) {
		m, _ = m.Update(out)
	}
	return m
}

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

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// LOADING AND FILTERING
// =============================================================================

func TestLoadFlattensInCategoryOrder(t *testing.T) {
	m := loaded(t, &fakeService{groups: testGroups()})

	got := m.Visible()
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	want := []favorites.Category{
		favorites.CategoryWorkout,
		favorites.CategoryWorkout,
		favorites.CategoryMeal,
		favorites.CategoryTip,
	}
	for i, item := range got {
		if item.Category != want[i] {
			t.Errorf("item %d: expected %s, got %s", i, want[i], item.Category)
		}
	}
}

func TestSearchFiltersPerKeystroke(t *testing.T) {
	m := loaded(t, &fakeService{groups: testGroups()})

	m = step(m, key("/"))
	for _, r := range "meal" {
		m = step(m, key(string(r)))
	}

	if len(m.Visible()) != 1 || m.Visible()[0].ID != "m1" {
		t.Fatalf("expected only the meal, got %v", m.Visible())
	}
}

// =============================================================================
// REMOVAL
// =============================================================================

func TestDeleteSelectedIssuesOneTaggedCall(t *testing.T) {
	svc := &fakeService{groups: testGroups()}
	m := loaded(t, svc)

	m = step(m, key("j")) // cursor to w2
	m = step(m, key("d"))

	if len(svc.removals) != 1 {
		t.Fatalf("expected 1 removal, got %d", len(svc.removals))
	}
	req := svc.removals[0]
	if req.WorkoutID != "w2" || req.MealID != "" || req.TipID != "" {
		t.Errorf("removal not tagged to the workout list: %+v", req)
	}
	if len(m.Visible()) != 3 {
		t.Errorf("expected snapshot to shrink to 3, got %d", len(m.Visible()))
	}
}

func TestDeleteAllActsOnFilteredSubsetOnly(t *testing.T) {
	svc := &fakeService{groups: testGroups()}
	m := loaded(t, svc)

	m = step(m, key("/"))
	for _, r := range "workout" {
		m = step(m, key(string(r)))
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})

	m = step(m, key("D"))
	if !m.confirming {
		t.Fatal("expected a confirmation prompt")
	}
	m = step(m, key("y"))

	if len(svc.removals) != 2 {
		t.Fatalf("expected 2 removals (the visible workouts), got %d", len(svc.removals))
	}
	// The meal and tip were outside the filter and must survive.
	if m.list.Len() != 2 {
		t.Errorf("expected 2 surviving favorites, got %d", m.list.Len())
	}
}

func TestConfirmDeclinedKeepsEverything(t *testing.T) {
	svc := &fakeService{groups: testGroups()}
	m := loaded(t, svc)

	m = step(m, key("D"))
	m = step(m, key("n"))

	if m.confirming {
		t.Error("n should dismiss the prompt")
	}
	if len(svc.removals) != 0 {
		t.Errorf("declined confirm must not remove anything, got %d", len(svc.removals))
	}
}

func TestBusyGuardBlocksConcurrentRemovals(t *testing.T) {
	svc := &fakeService{groups: testGroups()}
	m := loaded(t, svc)

	// First removal issued but not yet settled.
	m, _ = m.Update(key("d"))
	// Second press while busy must be ignored.
	m, cmd := m.Update(key("d"))
	if cmd != nil {
		t.Error("expected no command while a removal is in flight")
	}
	_ = m
}

func TestCursorClampsAfterRemoval(t *testing.T) {
	svc := &fakeService{groups: testGroups()}
	m := loaded(t, svc)

	for i := 0; i < 5; i++ {
		m = step(m, key("j"))
	}
	if m.cursor != 3 {
		t.Fatalf("cursor should stop at the last item, got %d", m.cursor)
	}

	m = step(m, key("d"))
	if m.cursor != 2 {
		t.Errorf("cursor should clamp after removal, got %d", m.cursor)
	}
}
