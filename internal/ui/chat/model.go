// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen. It is the chat
// flow controller: it owns the message history, the pending input, the
// awaiting-reply flag and the suggestion chips.
type Model struct {
	theme *styles.Theme
	svc   Service

	// Identity of the local user
	email       string
	displayName string

	// Conversation state
	conversation *model.Conversation
	suggestions  []string
	selectedChip int // -1 when no chip is highlighted

	// One send in flight at a time; the guard blocks resubmission
	// until the call settles.
	awaiting      bool
	thinkingStart time.Time

	// Last terminal failure, shown as a banner until the next action.
	lastError error

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
}

// New creates the chat screen for a signed-in user.
func New(theme *styles.Theme, svc Service, email, displayName string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your coach anything..."
	ti.CharLimit = 2048
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	return Model{
		theme:        theme,
		svc:          svc,
		email:        email,
		displayName:  displayName,
		conversation: model.NewConversation(),
		selectedChip: -1,
		viewport:     vp,
		input:        ti,
		spinner:      sp,
	}
}

// Init fetches the initial suggestions, before any user interaction.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchSuggestionsCmd(m.svc), m.spinner.Tick)
}

// Restore replaces the history with a previously saved transcript.
// Called before the first render; an empty transcript is ignored.
func (m *Model) Restore(conv *model.Conversation) {
	if conv == nil || conv.IsEmpty() {
		return
	}
	m.conversation = conv
	m.refreshViewport()
}

// Awaiting reports whether a send is in flight.
func (m Model) Awaiting() bool {
	return m.awaiting
}

// Conversation exposes the history for the parent model and tests.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Suggestions exposes the current suggestion chips.
func (m Model) Suggestions() []string {
	return m.suggestions
}

// LastError returns the banner error, if any.
func (m Model) LastError() error {
	return m.lastError
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.submit()
		case "tab":
			m.cycleChip(1)
			return m, nil
		case "shift+tab":
			m.cycleChip(-1)
			return m, nil
		default:
			// Typing clears chip selection and any stale error banner.
			m.selectedChip = -1
			m.lastError = nil
		}

	case ReplyMsg:
		// The awaiting flag clears on every settle path.
		m.awaiting = false
		if msg.Reply.Message.Content != "" {
			m.conversation.Append(msg.Reply.Message)
		}
		if msg.Reply.Suggestions != nil {
			m.suggestions = msg.Reply.Suggestions
			m.selectedChip = -1
		}
		m.refreshViewport()
		return m, nil

	case SendFailedMsg:
		m.awaiting = false
		m.lastError = msg.Err
		m.refreshViewport()
		return m, nil

	case SuggestionsMsg:
		// A failed initial fetch leaves the chips empty; the screen
		// stays usable.
		if msg.Err == nil {
			m.suggestions = msg.Suggestions
		}
		return m, nil

	case spinner.TickMsg:
		if m.awaiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			m.spinner, _ = m.spinner.Update(msg)
			cmds = append(cmds, m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs the send path: trim, blank check, in-flight guard,
// optimistic append, then one remote call.
func (m Model) submit() (Model, tea.Cmd) {
	if m.awaiting {
		// Guard: no resubmission until the prior call settles.
		return m, nil
	}

	content := m.input.Value()
	if m.selectedChip >= 0 && m.selectedChip < len(m.suggestions) && strings.TrimSpace(content) == "" {
		content = m.suggestions[m.selectedChip]
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return m, nil
	}

	// Optimistic update: the user's message appears immediately,
	// before the remote reply arrives.
	m.conversation.AppendUser(content)
	m.input.Reset()
	m.selectedChip = -1
	m.lastError = nil
	m.awaiting = true
	m.thinkingStart = time.Now()
	m.refreshViewport()

	return m, tea.Batch(sendChatCmd(m.svc, m.email, content), m.spinner.Tick)
}

// cycleChip moves the suggestion highlight.
func (m *Model) cycleChip(delta int) {
	if len(m.suggestions) == 0 {
		return
	}
	m.selectedChip += delta
	if m.selectedChip >= len(m.suggestions) {
		m.selectedChip = -1
	}
	if m.selectedChip < -1 {
		m.selectedChip = len(m.suggestions) - 1
	}
}

// setSize lays out the fixed-height chrome and gives the viewport the
// remainder.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4

	// header + suggestions + input + status
	chrome := 2 + 2 + 1 + 1
	vpHeight := height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.refreshViewport()
}
