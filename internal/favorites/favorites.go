// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package favorites flattens the service's per-category favorite lists
// (workouts, meals, tips) into one displayable projection and manages
// search filtering and removal.
package favorites

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fitmate/fitmate-tui/internal/api"
)

// =============================================================================
// ITEM PROJECTION
// =============================================================================

// Category tags an item with its origin list.
type Category string

const (
	CategoryWorkout Category = "Workout"
	CategoryMeal    Category = "Meal"
	CategoryTip     Category = "Tip"
)

// Item is the flattened, UI-displayable favorite. Recomputed on every
// fetch and discarded on screen exit; the server owns the real lists.
type Item struct {
	ID       string
	Title    string
	Category Category
	ImageURL string
}

// Flatten merges the categorical sub-lists of each group into a single
// ordered sequence: workouts, then meals, then tips, each in server
// order. Missing images become the empty placeholder, never a fault.
func Flatten(groups []api.FavoriteGroup) []Item {
	var items []Item
	for _, g := range groups {
		for _, w := range g.Workouts {
			items = append(items, Item{
				ID:       w.ID,
				Title:    w.Title,
				Category: CategoryWorkout,
				ImageURL: w.ImageURL,
			})
		}
		for _, m := range g.Meals {
			items = append(items, Item{
				ID:       m.ID,
				Title:    m.Title,
				Category: CategoryMeal,
				ImageURL: m.ImageURL,
			})
		}
		for _, t := range g.Tips {
			items = append(items, Item{
				ID:       t.ID,
				Title:    t.Title,
				Category: CategoryTip,
				ImageURL: t.FirstImage(),
			})
		}
	}
	return items
}

// =============================================================================
// SEARCH FILTER
// =============================================================================

// folder performs locale-independent caseless matching.
var folder = cases.Fold()

// Filter returns the items whose title or category label contains the
// query, caseless. Pure and side-effect free; recomputed per keystroke.
// The result never aliases the input, so callers may iterate it while
// the source list shrinks underneath.
func Filter(items []Item, query string) []Item {
	query = folder.String(strings.TrimSpace(query))
	if query == "" {
		return append([]Item(nil), items...)
	}

	var matched []Item
	for _, item := range items {
		if strings.Contains(folder.String(item.Title), query) ||
			strings.Contains(folder.String(string(item.Category)), query) {
			matched = append(matched, item)
		}
	}
	return matched
}

// =============================================================================
// LIST CONTROLLER
// =============================================================================

// Remover is the slice of the API client the list needs for deletions.
type Remover interface {
	RemoveFavorite(ctx context.Context, req api.RemoveFavoriteRequest) error
}

// List holds the in-memory projection for the favorites screen.
type List struct {
	svc   Remover
	email string

	items []Item
	query string
}

// NewList creates a list controller for one user.
func NewList(svc Remover, email string) *List {
	return &List{svc: svc, email: email}
}

// SetItems replaces the projection, typically after a fetch.
func (l *List) SetItems(items []Item) {
	l.items = items
}

// SetQuery updates the search filter.
func (l *List) SetQuery(query string) {
	l.query = query
}

// Query returns the current search filter.
func (l *List) Query() string {
	return l.query
}

// Visible returns the currently displayed (search-matched) items.
func (l *List) Visible() []Item {
	return Filter(l.items, l.query)
}

// Len returns the unfiltered item count.
func (l *List) Len() int {
	return len(l.items)
}

// Delete removes one item: exactly one category-tagged remote call,
// then removal of that (id, category) pair from the projection.
func (l *List) Delete(ctx context.Context, item Item) error {
	req := api.RemoveFavoriteRequest{Email: l.email}
	switch item.Category {
	case CategoryWorkout:
		req.WorkoutID = item.ID
	case CategoryMeal:
		req.MealID = item.ID
	case CategoryTip:
		req.TipID = item.ID
	}

	if err := l.svc.RemoveFavorite(ctx, req); err != nil {
		return err
	}

	for i, it := range l.items {
		if it.ID == item.ID && it.Category == item.Category {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteVisible removes every item in the current filtered subset, not
// the full list. Filter-to-delete scope is a product decision: "delete
// all" acts on what the user is looking at. Stops at the first failing
// call, leaving the remainder intact.
func (l *List) DeleteVisible(ctx context.Context) (int, error) {
	visible := l.Visible()
	deleted := 0
	for _, item := range visible {
		if err := l.Delete(ctx, item); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
