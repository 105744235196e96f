// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/auth"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// Field indices of the credentials form. fieldName is hidden in login
// mode and focus skips it.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// Model is the Bubble Tea model for the sign-in screens. Which screen
// renders follows the flow's state.
type Model struct {
	theme *styles.Theme
	flow  *auth.Flow

	mode   auth.Mode
	inputs [fieldCount]textinput.Model
	focus  int

	otp    textinput.Model
	otpErr string

	fieldErrs auth.FieldErrors
	remoteErr error
	notice    string

	// One auth call in flight at a time.
	submitting bool
	spinner    spinner.Model

	width  int
	height int
}

// New creates the sign-in screens in login mode.
func New(theme *styles.Theme, flow *auth.Flow) Model {
	var inputs [fieldCount]textinput.Model

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 64
	inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	inputs[fieldPassword] = password

	otp := textinput.New()
	otp.Placeholder = "6-digit code"
	otp.CharLimit = 6

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		theme:   theme,
		flow:    flow,
		mode:    auth.ModeLogin,
		inputs:  inputs,
		focus:   fieldEmail,
		otp:     otp,
		spinner: sp,
	}
}

// Init starts the spinner ticker.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Authenticated reports whether the flow has persisted a session. The
// parent model switches to the main tabs once this turns true.
func (m Model) Authenticated() bool {
	return m.flow.State() == auth.StateAuthenticated
}

// Flow exposes the underlying state machine, mainly for tests.
func (m Model) Flow() *auth.Flow {
	return m.flow
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages, dispatching on the flow state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CredentialsResultMsg:
		m.submitting = false
		m.fieldErrs = msg.Errs
		m.remoteErr = msg.Err
		if m.flow.State() == auth.StateOTP {
			m.focusOTP()
			m.notice = "We sent a code to " + m.flow.PendingEmail()
		}
		return m, nil

	case VerifyResultMsg:
		m.submitting = false
		m.remoteErr = msg.Err
		if msg.Err == nil {
			m.notice = ""
		}
		// StateBlocked renders the blocked notice on the next View;
		// no extra handling needed here.
		return m, nil

	case ResendResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.remoteErr = msg.Err
		} else {
			m.notice = "A fresh code is on its way"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.flow.State() {
	case auth.StateCredentials:
		return m.updateCredentials(msg)
	case auth.StateOTP:
		return m.updateOTP(msg)
	case auth.StateBlocked:
		return m.updateBlocked(msg)
	}
	return m, nil
}

// =============================================================================
// CREDENTIALS SCREEN
// =============================================================================

func (m Model) updateCredentials(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m.submitCredentials()
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+t":
			m.toggleMode()
			return m, nil
		default:
			// Typing clears the stale errors for the focused field.
			m.remoteErr = nil
			m.clearFieldError(m.focus)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submitCredentials runs the transition matching the current mode. The
// in-flight guard holds until the call settles.
func (m Model) submitCredentials() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	name := m.inputs[fieldName].Value()
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()

	m.submitting = true
	m.remoteErr = nil
	m.fieldErrs = auth.FieldErrors{}

	if m.mode == auth.ModeRegister {
		return m, tea.Batch(registerCmd(m.flow, name, email, password), m.spinner.Tick)
	}
	return m, tea.Batch(loginCmd(m.flow, email, password), m.spinner.Tick)
}

// moveFocus cycles the focused field, skipping the name field in login
// mode.
func (m *Model) moveFocus(delta int) {
	first := fieldName
	if m.mode == auth.ModeLogin {
		first = fieldEmail
	}

	m.inputs[m.focus].Blur()
	m.focus += delta
	if m.focus > fieldPassword {
		m.focus = first
	}
	if m.focus < first {
		m.focus = fieldPassword
	}
	m.inputs[m.focus].Focus()
}

// toggleMode switches between login and register, keeping typed values.
func (m *Model) toggleMode() {
	if m.mode == auth.ModeLogin {
		m.mode = auth.ModeRegister
	} else {
		m.mode = auth.ModeLogin
		if m.focus == fieldName {
			m.inputs[m.focus].Blur()
			m.focus = fieldEmail
			m.inputs[m.focus].Focus()
		}
	}
	m.fieldErrs = auth.FieldErrors{}
	m.remoteErr = nil
}

func (m *Model) clearFieldError(field int) {
	switch field {
	case fieldName:
		m.fieldErrs.Name = ""
	case fieldEmail:
		m.fieldErrs.Email = ""
	case fieldPassword:
		m.fieldErrs.Password = ""
	}
}

// =============================================================================
// OTP SCREEN
// =============================================================================

func (m Model) updateOTP(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m.submitOTP()
		case "ctrl+r":
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			return m, tea.Batch(resendCmd(m.flow), m.spinner.Tick)
		case "esc":
			m.backToCredentials()
			return m, nil
		default:
			m.otpErr = ""
			m.remoteErr = nil
		}
	}

	var cmd tea.Cmd
	m.otp, cmd = m.otp.Update(msg)
	return m, cmd
}

// submitOTP validates the code format locally before spending a call.
func (m Model) submitOTP() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if msg := auth.ValidateOTP(m.otp.Value()); msg != "" {
		m.otpErr = msg
		return m, nil
	}

	m.submitting = true
	m.remoteErr = nil
	code := m.otp.Value()
	m.otp.Reset()
	return m, tea.Batch(verifyCmd(m.flow, code), m.spinner.Tick)
}

func (m *Model) focusOTP() {
	m.inputs[m.focus].Blur()
	m.otp.Reset()
	m.otp.Focus()
	m.otpErr = ""
}

func (m *Model) backToCredentials() {
	m.flow.Reset()
	m.otp.Blur()
	m.otpErr = ""
	m.remoteErr = nil
	m.notice = ""
	m.inputs[m.focus].Focus()
}

// =============================================================================
// BLOCKED SCREEN
// =============================================================================

// updateBlocked only offers the way back to the credentials form.
func (m Model) updateBlocked(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.backToCredentials()
		}
	}
	return m, nil
}
