// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// USER TYPE
// =============================================================================

// User mirrors the remote user schema. The server is the owner of
// record; the client only ever holds copies returned from the API.
type User struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password,omitempty"`
	Age        int     `json:"age,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	HeightCm   float64 `json:"height_cm,omitempty"`
	WeightKg   float64 `json:"weight_kg,omitempty"`
	Role       string  `json:"role,omitempty"`
	IsVerified bool    `json:"isVerified"`
	OTPAttempt int     `json:"otpAttempt,omitempty"`
	IsBlocked  bool    `json:"isBlocked"`
}

// Roles recognized by the service.
const (
	RoleAdmin  = "admin"
	RoleMember = "user"
)

// DisplayName returns the name to show in the UI, falling back to the
// local part of the email when the profile has no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
