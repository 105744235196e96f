// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/fitmate/fitmate-tui/internal/model"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// Envelope is the wrapper shape returned by every service endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// =============================================================================
// AUTH TYPES
// =============================================================================

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPRequest is the body for POST /api/auth/verify-otp and resend-otp.
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp,omitempty"`
}

// AuthResult is the data payload of successful auth calls.
type AuthResult struct {
	User model.User `json:"user"`
}

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

// ChatReply is the data payload of a chat exchange: the assistant's
// reply plus refreshed follow-up suggestions.
type ChatReply struct {
	Message     model.Message `json:"message"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// =============================================================================
// FAVORITE TYPES
// =============================================================================

// FavoriteGroup is one user's favorites, three categorical sub-lists.
type FavoriteGroup struct {
	UserEmail string          `json:"userEmail"`
	Workouts  []model.Workout `json:"workouts"`
	Meals     []model.Meal    `json:"meals"`
	Tips      []model.Tip     `json:"tips"`
}

// RemoveFavoriteRequest is the body for DELETE /api/favorites. Exactly
// one of the id fields must be set; it selects the category.
type RemoveFavoriteRequest struct {
	Email     string `json:"email"`
	WorkoutID string `json:"workoutId,omitempty"`
	MealID    string `json:"mealId,omitempty"`
	TipID     string `json:"tipId,omitempty"`
}
