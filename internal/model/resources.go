// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// REMOTE RESOURCES
// =============================================================================

// Workout is a workout routine served by the remote API.
type Workout struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	DurationMin int    `json:"durationMin,omitempty"`
	Level       string `json:"level,omitempty"`
}

// Meal is a meal/recipe entry served by the remote API.
type Meal struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
}

// Tip is a health tip entry. Tips may carry zero or more images.
type Tip struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

// FirstImage returns the first image URL or "" when the tip has none.
// The empty case is a defined placeholder state, never an index fault.
func (t Tip) FirstImage() string {
	if len(t.ImageURLs) == 0 {
		return ""
	}
	return t.ImageURLs[0]
}
