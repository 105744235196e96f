// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/model"
)

func sampleGroups() []api.FavoriteGroup {
	return []api.FavoriteGroup{{
		UserEmail: "rina@example.com",
		Workouts: []model.Workout{
			{ID: "w1", Title: "Morning HIIT", ImageURL: "https://cdn/w1.png"},
			{ID: "w2", Title: "Leg Day"}, // no image
		},
		Meals: []model.Meal{
			{ID: "m1", Title: "Oatmeal Bowl", ImageURL: "https://cdn/m1.png"},
		},
		Tips: []model.Tip{
			{ID: "t1", Title: "Sleep More", ImageURLs: []string{"https://cdn/t1a.png", "https://cdn/t1b.png"}},
			{ID: "t2", Title: "Hydrate"}, // zero images
		},
	}}
}

// =============================================================================
// FLATTEN
// =============================================================================

func TestFlattenOrderAndImages(t *testing.T) {
	items := Flatten(sampleGroups())

	if len(items) != 5 {
		t.Fatalf("len = %d, want 5", len(items))
	}

	wantOrder := []string{"w1", "w2", "m1", "t1", "t2"}
	for i, id := range wantOrder {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}

	if items[0].ImageURL != "https://cdn/w1.png" {
		t.Errorf("workout image = %q", items[0].ImageURL)
	}
	if items[1].ImageURL != "" {
		t.Errorf("imageless workout should flatten to empty placeholder, got %q", items[1].ImageURL)
	}
	if items[3].ImageURL != "https://cdn/t1a.png" {
		t.Errorf("tip image should be first of list, got %q", items[3].ImageURL)
	}
	// The zero-image tip is the defect case the projection must survive.
	if items[4].ImageURL != "" {
		t.Errorf("zero-image tip should flatten to empty placeholder, got %q", items[4].ImageURL)
	}
}

// =============================================================================
// FILTER
// =============================================================================

func TestFilterMatchesTitleOrCategory(t *testing.T) {
	items := Flatten(sampleGroups())

	tests := []struct {
		query string
		want  []string
	}{
		{"meal", []string{"m1"}},               // category label, caseless
		{"MEAL", []string{"m1"}},
		{"hiit", []string{"w1"}},               // title, caseless
		{"tip", []string{"t1", "t2"}},          // category
		{"", []string{"w1", "w2", "m1", "t1", "t2"}}, // blank shows all
		{"  ", []string{"w1", "w2", "m1", "t1", "t2"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		got := Filter(items, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q) returned %d items, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("Filter(%q)[%d] = %q, want %q", tt.query, i, got[i].ID, id)
			}
		}
	}
}

func TestFilterIsPure(t *testing.T) {
	items := Flatten(sampleGroups())
	before := len(items)
	_ = Filter(items, "meal")
	if len(items) != before {
		t.Error("Filter must not mutate its input")
	}
}

// =============================================================================
// DELETION
// =============================================================================

// fakeRemover records removal requests.
type fakeRemover struct {
	requests []api.RemoveFavoriteRequest
	failOn   int // 1-based call index that fails; 0 = never
}

func (f *fakeRemover) RemoveFavorite(_ context.Context, req api.RemoveFavoriteRequest) error {
	f.requests = append(f.requests, req)
	if f.failOn != 0 && len(f.requests) == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func TestDeleteIssuesOneCategoryTaggedCall(t *testing.T) {
	remover := &fakeRemover{}
	list := NewList(remover, "rina@example.com")
	list.SetItems(Flatten(sampleGroups()))

	meal := Item{ID: "m1", Title: "Oatmeal Bowl", Category: CategoryMeal}
	if err := list.Delete(context.Background(), meal); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(remover.requests) != 1 {
		t.Fatalf("issued %d calls, want exactly 1", len(remover.requests))
	}
	req := remover.requests[0]
	if req.MealID != "m1" || req.WorkoutID != "" || req.TipID != "" {
		t.Errorf("request = %+v, want only MealID tagged", req)
	}
	if req.Email != "rina@example.com" {
		t.Errorf("Email = %q", req.Email)
	}

	for _, it := range list.Visible() {
		if it.ID == "m1" && it.Category == CategoryMeal {
			t.Error("deleted item still visible")
		}
	}
	if list.Len() != 4 {
		t.Errorf("Len = %d, want 4", list.Len())
	}
}

func TestDeleteFailureKeepsItem(t *testing.T) {
	remover := &fakeRemover{failOn: 1}
	list := NewList(remover, "rina@example.com")
	list.SetItems(Flatten(sampleGroups()))

	err := list.Delete(context.Background(), Item{ID: "t1", Category: CategoryTip})
	if err == nil {
		t.Fatal("expected error")
	}
	if list.Len() != 5 {
		t.Errorf("failed delete must not remove locally, Len = %d", list.Len())
	}
}

func TestDeleteVisibleScopesToFilter(t *testing.T) {
	remover := &fakeRemover{}
	list := NewList(remover, "rina@example.com")
	list.SetItems(Flatten(sampleGroups()))
	list.SetQuery("tip")

	deleted, err := list.DeleteVisible(context.Background())
	if err != nil {
		t.Fatalf("DeleteVisible failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if len(remover.requests) != 2 {
		t.Errorf("issued %d calls, want 2", len(remover.requests))
	}
	for _, req := range remover.requests {
		if req.TipID == "" {
			t.Errorf("non-tip removal issued: %+v", req)
		}
	}

	// Unmatched items survive.
	list.SetQuery("")
	if list.Len() != 3 {
		t.Errorf("remaining = %d, want 3", list.Len())
	}
}

// Without a filter the visible subset is the whole list; every item
// must go, each with exactly one remote call, even as the backing list
// shrinks during the sweep.
func TestDeleteVisibleWithoutFilterRemovesEverything(t *testing.T) {
	remover := &fakeRemover{}
	list := NewList(remover, "rina@example.com")
	list.SetItems(Flatten(sampleGroups()))

	deleted, err := list.DeleteVisible(context.Background())
	if err != nil {
		t.Fatalf("DeleteVisible failed: %v", err)
	}
	if deleted != 5 {
		t.Errorf("deleted = %d, want 5", deleted)
	}
	if list.Len() != 0 {
		t.Errorf("Len = %d, want 0", list.Len())
	}

	calls := make(map[string]int)
	for _, req := range remover.requests {
		calls[req.WorkoutID+req.MealID+req.TipID]++
	}
	for _, id := range []string{"w1", "w2", "m1", "t1", "t2"} {
		if calls[id] != 1 {
			t.Errorf("id %s removed remotely %d times, want exactly once", id, calls[id])
		}
	}
}

func TestFilterResultDoesNotAliasInput(t *testing.T) {
	items := Flatten(sampleGroups())

	got := Filter(items, "")
	got[0].ID = "mutated"

	if items[0].ID == "mutated" {
		t.Error("blank-query Filter must return a copy, not the input slice")
	}
}

func TestDeleteVisibleStopsOnFailure(t *testing.T) {
	remover := &fakeRemover{failOn: 2}
	list := NewList(remover, "rina@example.com")
	list.SetItems(Flatten(sampleGroups()))
	list.SetQuery("tip")

	deleted, err := list.DeleteVisible(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1 before the failure", deleted)
	}
	if list.Len() != 4 {
		t.Errorf("Len = %d, want 4 (one removed, one kept)", list.Len())
	}
}
