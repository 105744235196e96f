// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fitmate/fitmate-tui/internal/model"
)

// =============================================================================
// TIP OPERATIONS
// =============================================================================

// ListTips fetches all published tips.
func (c *Client) ListTips(ctx context.Context) ([]model.Tip, error) {
	var tips []model.Tip
	if err := c.doJSON(ctx, http.MethodGet, "/api/tips", nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// CreateTip publishes a new tip. Admin-only server-side.
func (c *Client) CreateTip(ctx context.Context, tip model.Tip) (model.Tip, error) {
	var created model.Tip
	if err := c.doJSON(ctx, http.MethodPost, "/api/tips", tip, &created); err != nil {
		return model.Tip{}, err
	}
	return created, nil
}

// UpdateTip replaces an existing tip.
func (c *Client) UpdateTip(ctx context.Context, tip model.Tip) (model.Tip, error) {
	var updated model.Tip
	if err := c.doJSON(ctx, http.MethodPut, "/api/tips/"+url.PathEscape(tip.ID), tip, &updated); err != nil {
		return model.Tip{}, err
	}
	return updated, nil
}

// DeleteTip removes a tip.
func (c *Client) DeleteTip(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/tips/"+url.PathEscape(id), nil, nil)
}

// =============================================================================
// MEAL OPERATIONS
// =============================================================================

// ListMeals fetches all published meals.
func (c *Client) ListMeals(ctx context.Context) ([]model.Meal, error) {
	var meals []model.Meal
	if err := c.doJSON(ctx, http.MethodGet, "/api/meals", nil, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// CreateMeal publishes a new meal. Admin-only server-side.
func (c *Client) CreateMeal(ctx context.Context, meal model.Meal) (model.Meal, error) {
	var created model.Meal
	if err := c.doJSON(ctx, http.MethodPost, "/api/meals", meal, &created); err != nil {
		return model.Meal{}, err
	}
	return created, nil
}

// UpdateMeal replaces an existing meal.
func (c *Client) UpdateMeal(ctx context.Context, meal model.Meal) (model.Meal, error) {
	var updated model.Meal
	if err := c.doJSON(ctx, http.MethodPut, "/api/meals/"+url.PathEscape(meal.ID), meal, &updated); err != nil {
		return model.Meal{}, err
	}
	return updated, nil
}

// DeleteMeal removes a meal.
func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/meals/"+url.PathEscape(id), nil, nil)
}

// =============================================================================
// FAVORITE OPERATIONS
// =============================================================================

// GetFavorites fetches the favorite groupings for a user. The service
// typically returns a single group per user.
func (c *Client) GetFavorites(ctx context.Context, email string) ([]FavoriteGroup, error) {
	var groups []FavoriteGroup
	path := "/api/favorites/" + url.PathEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// RemoveFavorite deletes one favorited item server-side. The populated
// id field in req selects the category.
func (c *Client) RemoveFavorite(ctx context.Context, req RemoveFavoriteRequest) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/favorites", req, nil)
}
