// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/api"
	authflow "github.com/fitmate/fitmate-tui/internal/auth"
	"github.com/fitmate/fitmate-tui/internal/config"
	"github.com/fitmate/fitmate-tui/internal/history"
	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/session"
	uiauth "github.com/fitmate/fitmate-tui/internal/ui/auth"
	"github.com/fitmate/fitmate-tui/internal/ui/chat"
	"github.com/fitmate/fitmate-tui/internal/ui/components"
	uifaq "github.com/fitmate/fitmate-tui/internal/ui/faq"
	uifav "github.com/fitmate/fitmate-tui/internal/ui/favorites"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State is the top-level screen.
type State int

const (
	StateWelcome State = iota
	StateAuth
	StateMain
)

// Tab is the active view inside the main screen.
type Tab int

const (
	TabChat Tab = iota
	TabFavorites
	TabFAQ
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabChat:
		return "Chat"
	case TabFavorites:
		return "Favorites"
	case TabFAQ:
		return "FAQ"
	default:
		return "?"
	}
}

// ReachableMsg reports the startup server health probe.
type ReachableMsg struct {
	Err error
}

// SessionChangedMsg delivers an external session change, e.g. a
// `fitmate logout` run in another terminal while the TUI is open.
type SessionChangedMsg struct {
	Session session.Session
}

// Model is the root Bubble Tea model: a router over the welcome,
// sign-in and main screens.
type Model struct {
	state State
	tab   Tab

	theme       *styles.Theme
	cfg         *config.Config
	client      *api.Client
	sessions    *session.Store
	transcripts *history.Store

	welcome   components.Welcome
	authModel uiauth.Model
	chatModel chat.Model
	favModel  uifav.Model
	faqModel  uifaq.Model

	// sessionCh streams external session changes while the TUI runs.
	sessionCh   <-chan session.Session
	stopWatch   context.CancelFunc
	serverError error

	width  int
	height int
}

// NewModel wires the application together from loaded configuration.
func NewModel(cfg *config.Config, client *api.Client, sessions *session.Store) *Model {
	theme := styles.NewTheme(cfg.UI.Theme)

	welcome := components.NewWelcome(theme, Version, cfg.Server.URL)
	if cur := sessions.Current(); cur.Valid() {
		welcome.SetSignedInAs(cur.Email)
	}

	flow := authflow.NewFlow(client, sessions)

	// A failed transcript store just means no persistence this run.
	transcripts, _ := history.NewStore(filepath.Join(cfg.ProfileDir(), "history"))

	return &Model{
		state:       StateWelcome,
		theme:       theme,
		cfg:         cfg,
		client:      client,
		sessions:    sessions,
		transcripts: transcripts,
		welcome:     welcome,
		authModel:   uiauth.New(theme, flow),
		faqModel:    uifaq.New(theme),
	}
}

// Init probes the server and starts the session watch.
func (m *Model) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.stopWatch = cancel

	cmds := []tea.Cmd{m.checkServer()}
	if ch, err := m.sessions.Watch(ctx); err == nil {
		m.sessionCh = ch
		cmds = append(cmds, waitForSession(ch))
	}
	return tea.Batch(cmds...)
}

// checkServer probes the health endpoint once at startup.
func (m *Model) checkServer() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return ReachableMsg{Err: client.CheckReachable(ctx)}
	}
}

// waitForSession blocks on the watch stream and re-arms itself.
func waitForSession(ch <-chan session.Session) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SessionChangedMsg{Session: s}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.welcome.SetSize(msg.Width, msg.Height)
		return m.forwardToActive(msg)

	case ReachableMsg:
		m.serverError = msg.Err
		return m, nil

	case SessionChangedMsg:
		cmd := m.handleSessionChange(msg.Session)
		return m, tea.Batch(cmd, waitForSession(m.sessionCh))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToActive(msg)
}

// handleSessionChange reacts to external logins and logouts.
func (m *Model) handleSessionChange(s session.Session) tea.Cmd {
	if !s.Valid() && m.state == StateMain {
		// Signed out elsewhere; drop back to the sign-in screen.
		m.state = StateAuth
		m.authModel = uiauth.New(m.theme, authflow.NewFlow(m.client, m.sessions))
		return m.authModel.Init()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.stopWatch != nil {
			m.stopWatch()
		}
		return m, tea.Quit
	}

	switch m.state {
	case StateWelcome:
		switch msg.String() {
		case "q":
			if m.stopWatch != nil {
				m.stopWatch()
			}
			return m, tea.Quit
		case "enter":
			if cur := m.sessions.Current(); cur.Valid() {
				return m, m.enterMain(cur)
			}
			m.state = StateAuth
			return m, tea.Batch(m.authModel.Init(), m.resize())
		}
		return m, nil

	case StateAuth:
		var cmd tea.Cmd
		m.authModel, cmd = m.authModel.Update(msg)
		if m.authModel.Authenticated() {
			return m, m.enterMain(m.sessions.Current())
		}
		return m, cmd

	case StateMain:
		if msg.String() == "ctrl+t" {
			return m, m.nextTab()
		}
		return m.forwardToActive(msg)
	}
	return m, nil
}

// enterMain builds the signed-in screens for the current session.
func (m *Model) enterMain(cur session.Session) tea.Cmd {
	m.state = StateMain
	m.tab = TabChat

	displayName := m.cfg.UI.DisplayName
	if displayName == "" {
		displayName = cur.Email
	}

	m.chatModel = chat.New(m.theme, m.client, cur.Email, displayName)
	if m.transcripts != nil {
		if conv, err := m.transcripts.Load(cur.Email); err == nil {
			m.chatModel.Restore(conv)
		}
	}
	m.favModel = uifav.New(m.theme, m.client, cur.Email)

	return tea.Batch(m.chatModel.Init(), m.resize())
}

// nextTab cycles the main-screen tabs. Favorites refetches on entry so
// the projection reflects the server.
func (m *Model) nextTab() tea.Cmd {
	m.tab = (m.tab + 1) % tabCount
	cmds := []tea.Cmd{m.resize()}
	if m.tab == TabFavorites {
		cur := m.sessions.Current()
		m.favModel = uifav.New(m.theme, m.client, cur.Email)
		cmds = append(cmds, m.favModel.Init())
	}
	return tea.Batch(cmds...)
}

// resize replays the current dimensions to the active screen.
func (m *Model) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: m.width, Height: m.height}
	}
}

// forwardToActive sends the message to whichever screen is on top.
func (m *Model) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateWelcome:
		m.welcome, cmd = m.welcome.Update(msg)
	case StateAuth:
		m.authModel, cmd = m.authModel.Update(msg)
	case StateMain:
		msg = m.shrinkForTabs(msg)
		switch m.tab {
		case TabChat:
			m.chatModel, cmd = m.chatModel.Update(msg)
			if settled(msg) {
				cmd = tea.Batch(cmd, m.saveTranscript())
			}
		case TabFavorites:
			m.favModel, cmd = m.favModel.Update(msg)
		case TabFAQ:
			m.faqModel, cmd = m.faqModel.Update(msg)
		}
	}
	return m, cmd
}

// settled reports whether a chat exchange just finished, i.e. the
// moment the local transcript is worth persisting.
func settled(msg tea.Msg) bool {
	switch msg.(type) {
	case chat.ReplyMsg, chat.SendFailedMsg:
		return true
	}
	return false
}

// saveTranscript persists a snapshot of the conversation. The copy is
// taken here, in Update, so the write never races a later append.
func (m *Model) saveTranscript() tea.Cmd {
	if m.transcripts == nil {
		return nil
	}
	conv := m.chatModel.Conversation()
	snap := *conv
	snap.Messages = append([]model.Message(nil), conv.Messages...)
	store, email := m.transcripts, m.sessions.Current().Email
	return func() tea.Msg {
		store.Save(email, snap)
		return nil
	}
}

// shrinkForTabs reserves one line for the tab strip.
func (m *Model) shrinkForTabs(msg tea.Msg) tea.Msg {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		size.Height--
		return size
	}
	return msg
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen.
func (m *Model) View() string {
	switch m.state {
	case StateAuth:
		return m.authModel.View()
	case StateMain:
		var content string
		switch m.tab {
		case TabChat:
			content = m.chatModel.View()
		case TabFavorites:
			content = m.favModel.View()
		case TabFAQ:
			content = m.faqModel.View()
		}
		return m.renderTabs() + "\n" + content
	default:
		view := m.welcome.View()
		if m.serverError != nil {
			banner := components.ErrorToast(m.theme, m.serverError, m.width)
			return lipgloss.JoinVertical(lipgloss.Center, banner, view)
		}
		return view
	}
}

func (m *Model) renderTabs() string {
	var tabs []string
	for t := TabChat; t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, m.theme.TabActive.Render(t.String()))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
