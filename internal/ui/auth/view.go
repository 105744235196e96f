// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/auth"
)

// View renders the screen matching the flow's state.
func (m Model) View() string {
	var body string
	switch m.flow.State() {
	case auth.StateOTP:
		body = m.renderOTP()
	case auth.StateBlocked:
		body = m.renderBlocked()
	default:
		body = m.renderCredentials()
	}

	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// =============================================================================
// CREDENTIALS FORM
// =============================================================================

func (m Model) renderCredentials() string {
	var b strings.Builder

	title := "Sign in to FitMate"
	toggle := "ctrl+t to create an account"
	if m.mode == auth.ModeRegister {
		title = "Create your FitMate account"
		toggle = "ctrl+t to sign in instead"
	}
	b.WriteString(m.theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")

	if m.mode == auth.ModeRegister {
		b.WriteString(m.renderField("Name", m.inputs[fieldName].View(), m.fieldErrs.Name))
	}
	b.WriteString(m.renderField("Email", m.inputs[fieldEmail].View(), m.fieldErrs.Email))
	b.WriteString(m.renderField("Password", m.inputs[fieldPassword].View(), m.fieldErrs.Password))

	b.WriteString("\n")
	b.WriteString(m.renderSubmit())
	b.WriteString("\n\n")
	b.WriteString(m.theme.FormHint.Render("enter to submit · tab to move · " + toggle))
	b.WriteString(m.renderRemoteError())

	return m.theme.FormBox.Render(b.String())
}

func (m Model) renderField(label, input, fieldErr string) string {
	var b strings.Builder
	b.WriteString(m.theme.FormLabel.Render(label))
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")
	if fieldErr != "" {
		b.WriteString(m.theme.FieldError.Render(fieldErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSubmit() string {
	label := "Sign in"
	if m.mode == auth.ModeRegister {
		label = "Register"
	}
	if m.submitting {
		return m.theme.ButtonDimmed.Render(label) + " " + m.spinner.View()
	}
	return m.theme.ButtonActive.Render(label)
}

// =============================================================================
// OTP PROMPT
// =============================================================================

func (m Model) renderOTP() string {
	var b strings.Builder

	b.WriteString(m.theme.HeaderTitle.Render("Check your email"))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.theme.Notice.Render(m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(m.otp.View())
	b.WriteString("\n")
	if m.otpErr != "" {
		b.WriteString(m.theme.FieldError.Render(m.otpErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.ThinkingText.Render(" verifying"))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.FormHint.Render("enter to verify · ctrl+r to resend · esc to go back"))
	b.WriteString(m.renderRemoteError())

	return m.theme.FormBox.Render(b.String())
}

// =============================================================================
// BLOCKED NOTICE
// =============================================================================

func (m Model) renderBlocked() string {
	var b strings.Builder

	b.WriteString(m.theme.StatusError.Render("Account blocked"))
	b.WriteString("\n\n")
	b.WriteString("Too many incorrect codes. This account has been\n")
	b.WriteString("blocked; contact support to restore access.\n\n")
	b.WriteString(m.theme.FormHint.Render("enter to return to sign-in"))

	return m.theme.FormBox.BorderForeground(m.theme.ErrorBanner.GetBorderTopForeground()).Render(b.String())
}

func (m Model) renderRemoteError() string {
	if m.remoteErr == nil {
		return ""
	}
	return "\n\n" + m.theme.ErrorBanner.Render(m.remoteErr.Error())
}
