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
// AUTH OPERATIONS
// =============================================================================

// Register creates an unverified account. On success the service has
// queued an OTP for the address; the caller moves on to verification.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, &result); err != nil {
		return model.User{}, err
	}
	return result.User, nil
}

// Login authenticates an existing, verified account and returns the
// user record including its role.
func (c *Client) Login(ctx context.Context, req LoginRequest) (model.User, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &result); err != nil {
		return model.User{}, err
	}
	return result.User, nil
}

// VerifyOTP submits the one-time code for an address. Repeated failures
// are counted server-side; once the account is blocked the service
// answers with code BLOCKED.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (model.User, error) {
	var result AuthResult
	req := OTPRequest{Email: email, OTP: otp}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-otp", req, &result); err != nil {
		return model.User{}, err
	}
	return result.User, nil
}

// ResendOTP asks the service to issue a fresh code. Stateless from the
// client's point of view.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/resend-otp", OTPRequest{Email: email}, nil)
}

// GetUserByEmail fetches a user profile.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	path := "/api/users/email/" + url.PathEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
