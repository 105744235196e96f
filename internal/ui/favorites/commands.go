// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package favorites provides the favorites screen of the TUI: a
// searchable, flattened view of the user's saved workouts, meals and
// tips, with single and bulk removal.
package favorites

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/favorites"
)

const callTimeout = 30 * time.Second

// Service is the slice of the API client the screen needs.
type Service interface {
	GetFavorites(ctx context.Context, email string) ([]api.FavoriteGroup, error)
	RemoveFavorite(ctx context.Context, req api.RemoveFavoriteRequest) error
}

// =============================================================================
// MESSAGES
// =============================================================================

// LoadedMsg delivers the flattened favorites after a fetch.
type LoadedMsg struct {
	Items []favorites.Item
	Err   error
}

// DeletedMsg reports a settled single removal.
type DeletedMsg struct {
	Item favorites.Item
	Err  error
}

// ClearedMsg reports a settled bulk removal of the filtered subset.
type ClearedMsg struct {
	Count int
	Err   error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// loadCmd fetches and flattens the favorites.
func loadCmd(svc Service, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		groups, err := svc.GetFavorites(ctx, email)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Items: favorites.Flatten(groups)}
	}
}

// deleteCmd removes one item through the list controller. The model's
// busy guard keeps the controller single-writer while this runs.
func deleteCmd(list *favorites.List, item favorites.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		return DeletedMsg{Item: item, Err: list.Delete(ctx, item)}
	}
}

// clearCmd removes every item in the current filtered subset.
func clearCmd(list *favorites.List) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		count, err := list.DeleteVisible(ctx)
		return ClearedMsg{Count: count, Err: err}
	}
}
