// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/auth"
)

// callTimeout bounds each authentication round trip.
const callTimeout = 30 * time.Second

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// loginCmd runs the login transition off the render loop.
func loginCmd(flow *auth.Flow, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		errs, err := flow.Login(ctx, email, password)
		return CredentialsResultMsg{Errs: errs, Err: err}
	}
}

// registerCmd runs the register transition off the render loop.
func registerCmd(flow *auth.Flow, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		errs, err := flow.Register(ctx, name, email, password)
		return CredentialsResultMsg{Errs: errs, Err: err}
	}
}

// verifyCmd submits the one-time code.
func verifyCmd(flow *auth.Flow, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		return VerifyResultMsg{Err: flow.VerifyOTP(ctx, code)}
	}
}

// resendCmd requests a fresh code for the pending email.
func resendCmd(flow *auth.Flow) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		return ResendResultMsg{Err: flow.ResendOTP(ctx)}
	}
}
