// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the authentication flow of the FitMate
// client: credentials form, OTP verification, and the blocked-account
// branch. The flow is a small state machine, independent of any UI; the
// auth screen renders it and feeds it user intents.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/session"
)

// =============================================================================
// STATES
// =============================================================================

// State is the position in the authentication walk.
type State int

const (
	// StateCredentials shows the login/register form.
	StateCredentials State = iota
	// StateOTP awaits the one-time code for a registered email.
	StateOTP
	// StateAuthenticated means a session has been persisted.
	StateAuthenticated
	// StateBlocked means the service refused further OTP attempts.
	StateBlocked
)

// String returns a name for the state, for logging and tests.
func (s State) String() string {
	switch s {
	case StateCredentials:
		return "credentials"
	case StateOTP:
		return "otp"
	case StateAuthenticated:
		return "authenticated"
	case StateBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Mode selects which form the credentials screen submits.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// Service is the slice of the API client the flow needs. *api.Client
// satisfies it; tests substitute a fake.
type Service interface {
	Register(ctx context.Context, req api.RegisterRequest) (model.User, error)
	Login(ctx context.Context, req api.LoginRequest) (model.User, error)
	VerifyOTP(ctx context.Context, email, otp string) (model.User, error)
	ResendOTP(ctx context.Context, email string) error
}

// =============================================================================
// FLOW
// =============================================================================

// Flow drives the credentials → OTP → authenticated/blocked walk and
// owns the session write on success. Methods are synchronous; the UI
// runs them off the render loop.
type Flow struct {
	svc      Service
	sessions *session.Store

	state State
	email string // the address awaiting OTP verification
	user  model.User
}

// NewFlow creates a flow in StateCredentials.
func NewFlow(svc Service, sessions *session.Store) *Flow {
	return &Flow{svc: svc, sessions: sessions, state: StateCredentials}
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

// PendingEmail returns the address awaiting verification, if any.
func (f *Flow) PendingEmail() string {
	return f.email
}

// User returns the user record from the last successful call.
func (f *Flow) User() model.User {
	return f.user
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Login authenticates and, on success, persists {email, role} and moves
// to StateAuthenticated. Validation failures return FieldErrors without
// touching the network. An UNVERIFIED refusal moves to StateOTP: the
// service has re-issued a code, so verification picks up where
// registration left off.
func (f *Flow) Login(ctx context.Context, email, password string) (FieldErrors, error) {
	if errs := ValidateCredentials(ModeLogin, "", email, password); !errs.OK() {
		return errs, nil
	}

	user, err := f.svc.Login(ctx, api.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		if isUnverified(err) {
			f.email = strings.TrimSpace(email)
			f.state = StateOTP
		}
		return FieldErrors{}, err
	}

	if err := f.sessions.Save(session.Session{Email: user.Email, Role: user.Role}); err != nil {
		return FieldErrors{}, err
	}
	f.user = user
	f.state = StateAuthenticated
	return FieldErrors{}, nil
}

// Register creates the account and moves to StateOTP. The server has
// confirmed no existing account for the email once this succeeds.
func (f *Flow) Register(ctx context.Context, name, email, password string) (FieldErrors, error) {
	if errs := ValidateCredentials(ModeRegister, name, email, password); !errs.OK() {
		return errs, nil
	}

	user, err := f.svc.Register(ctx, api.RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return FieldErrors{}, err
	}

	f.user = user
	f.email = user.Email
	f.state = StateOTP
	return FieldErrors{}, nil
}

// VerifyOTP submits the code. Success persists the session and moves to
// StateAuthenticated; a blocked-account refusal moves to StateBlocked;
// any other failure stays in StateOTP for another attempt.
func (f *Flow) VerifyOTP(ctx context.Context, code string) error {
	user, err := f.svc.VerifyOTP(ctx, f.email, strings.TrimSpace(code))
	if err != nil {
		if IsBlocked(err) {
			f.state = StateBlocked
		}
		return err
	}

	if err := f.sessions.Save(session.Session{Email: user.Email, Role: user.Role}); err != nil {
		return err
	}
	f.user = user
	f.state = StateAuthenticated
	return nil
}

// ResendOTP requests a fresh code. It never changes state; the result
// is surfaced as a transient notification only.
func (f *Flow) ResendOTP(ctx context.Context) error {
	return f.svc.ResendOTP(ctx, f.email)
}

// Reset returns to the credentials form, discarding all intermediate
// state. This is the only way out of StateBlocked.
func (f *Flow) Reset() {
	f.state = StateCredentials
	f.email = ""
	f.user = model.User{}
}

// =============================================================================
// BLOCKED DETECTION
// =============================================================================

// blockedIndicators are matched case-insensitively against failure
// messages from servers that predate the structured BLOCKED code.
// "blokir" covers the service's Indonesian-locale wording.
var blockedIndicators = []string{"blokir", "blocked"}

// isUnverified reports whether a login was refused because the email
// is still awaiting OTP verification.
func isUnverified(err error) bool {
	var remote *api.RemoteError
	return errors.As(err, &remote) && remote.Code == api.CodeUnverified
}

// IsBlocked reports whether an error indicates a blocked account. The
// structured code is authoritative; the message substring check is a
// compatibility fallback.
func IsBlocked(err error) bool {
	var remote *api.RemoteError
	if !errors.As(err, &remote) {
		return false
	}
	if remote.Code == api.CodeBlocked {
		return true
	}
	msg := strings.ToLower(remote.Message)
	for _, word := range blockedIndicators {
		if strings.Contains(msg, word) {
			return true
		}
	}
	return false
}
