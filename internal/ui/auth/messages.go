// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the sign-in screens of the TUI: the
// login/register form, the OTP prompt and the blocked-account notice.
// The state machine itself lives in internal/auth; this package renders
// it and feeds it user intents.
package auth

import "github.com/fitmate/fitmate-tui/internal/auth"

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// CredentialsResultMsg reports a settled login or register call. Errs
// carries inline validation failures; Err carries transport or remote
// failures. At most one of the two is set.
type CredentialsResultMsg struct {
	Errs auth.FieldErrors
	Err  error
}

// VerifyResultMsg reports a settled OTP verification.
type VerifyResultMsg struct {
	Err error
}

// ResendResultMsg reports a settled resend request.
type ResendResultMsg struct {
	Err error
}
