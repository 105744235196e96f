// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitmate/fitmate-tui/internal/model"
)

// maxOTPAttempts failed verifications block the account.
const maxOTPAttempts = 3

// Error codes shared with the client.
const (
	codeBlocked      = "BLOCKED"
	codeInvalidOTP   = "INVALID_OTP"
	codeUnauthorized = "UNAUTHORIZED"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
	codeUnverified   = "UNVERIFIED"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type authResult struct {
	User model.User `json:"user"`
}

// =============================================================================
// REGISTRATION
// =============================================================================

// handleRegister creates an unverified account and issues the first OTP.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "name, email and password are required")
		return
	}

	if _, err := s.store.GetUser(req.Email); err == nil {
		writeError(w, http.StatusConflict, codeConflict, "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.internalError(w, err)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "FitMate", AccountName: req.Email})
	if err != nil {
		s.internalError(w, err)
		return
	}

	rec := userRecord{
		User: model.User{
			Name:  strings.TrimSpace(req.Name),
			Email: req.Email,
			Role:  model.RoleMember,
		},
		PasswordHash: string(hash),
		OTPSecret:    key.Secret(),
	}
	if err := s.store.CreateUser(rec); err != nil {
		s.internalError(w, err)
		return
	}

	s.issueOTP(rec)
	writeData(w, authResult{User: rec.User})
}

// issueOTP logs the current code. The real service emails it; the dev
// server prints it so a developer can complete the flow.
func (s *Server) issueOTP(rec userRecord) {
	code, err := totp.GenerateCode(rec.OTPSecret, time.Now())
	if err != nil {
		s.logger.Printf("otp generation failed for %s: %v", rec.Email, err)
		return
	}
	s.logger.Printf("OTP for %s: %s", rec.Email, code)
}

// =============================================================================
// LOGIN
// =============================================================================

// handleLogin authenticates a verified account.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	rec, err := s.store.GetUser(req.Email)
	if err != nil {
		// Same answer as a wrong password; no account enumeration.
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "wrong email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "wrong email or password")
		return
	}
	if rec.IsBlocked {
		writeError(w, http.StatusForbidden, codeBlocked, "this account is blocked")
		return
	}
	if !rec.IsVerified {
		s.issueOTP(rec)
		writeError(w, http.StatusForbidden, codeUnverified, "email not verified; a fresh code has been issued")
		return
	}

	writeData(w, authResult{User: rec.User})
}

// =============================================================================
// OTP VERIFICATION
// =============================================================================

// handleVerifyOTP checks the code. Three failures block the account.
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	rec, err := s.store.GetUser(req.Email)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, "no account for this email")
		return
	}
	if rec.IsBlocked {
		writeError(w, http.StatusForbidden, codeBlocked, "this account is blocked")
		return
	}

	if !totp.Validate(strings.TrimSpace(req.OTP), rec.OTPSecret) {
		attempts := rec.OTPAttempt + 1
		blocked := attempts >= maxOTPAttempts
		if err := s.store.SetOTPAttempt(rec.Email, attempts, blocked); err != nil {
			s.internalError(w, err)
			return
		}
		if blocked {
			s.logger.Printf("account %s blocked after %d failed codes", rec.Email, attempts)
			writeError(w, http.StatusForbidden, codeBlocked, "account blocked after too many failed codes")
			return
		}
		writeError(w, http.StatusUnauthorized, codeInvalidOTP, "wrong code")
		return
	}

	if err := s.store.MarkVerified(rec.Email); err != nil {
		s.internalError(w, err)
		return
	}
	rec.User.IsVerified = true
	rec.User.OTPAttempt = 0
	writeData(w, authResult{User: rec.User})
}

// handleResendOTP issues a fresh code for an unverified account.
func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	rec, err := s.store.GetUser(req.Email)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, "no account for this email")
		return
	}
	if rec.IsBlocked {
		writeError(w, http.StatusForbidden, codeBlocked, "this account is blocked")
		return
	}

	s.issueOTP(rec)
	writeData(w, map[string]string{"status": "sent"})
}

// =============================================================================
// USERS
// =============================================================================

// handleGetUser returns a user profile.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed email")
		return
	}

	rec, err := s.store.GetUser(strings.ToLower(email))
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "no account for this email")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, rec.User)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}
