// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package favorites

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitmate/fitmate-tui/internal/favorites"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// Model is the Bubble Tea model for the favorites screen.
type Model struct {
	theme *styles.Theme
	svc   Service
	email string

	list *favorites.List

	// visible is the render snapshot of the filtered projection. It is
	// refreshed in Update only, never while a removal is in flight, so
	// View never races the list controller.
	visible []favorites.Item
	cursor  int

	search      textinput.Model
	searchFocus bool

	// confirming asks for y/n before the bulk removal.
	confirming bool

	// busy serializes list operations; one fetch or removal at a time.
	busy    bool
	spinner spinner.Model

	notice  string
	lastErr error

	width  int
	height int
}

// New creates the favorites screen for a signed-in user.
func New(theme *styles.Theme, svc Service, email string) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title or category"
	search.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		theme:   theme,
		svc:     svc,
		email:   email,
		list:    favorites.NewList(svc, email),
		search:  search,
		spinner: sp,
		busy:    true, // the initial load is issued by Init
	}
}

// Init fetches the favorites.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.svc, m.email), m.spinner.Tick)
}

// Visible exposes the render snapshot for the parent model and tests.
func (m Model) Visible() []favorites.Item {
	return m.visible
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoadedMsg:
		m.busy = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.list.SetItems(msg.Items)
			m.refresh()
		}
		return m, nil

	case DeletedMsg:
		m.busy = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.notice = fmt.Sprintf("Removed %q", msg.Item.Title)
		}
		m.refresh()
		return m, nil

	case ClearedMsg:
		m.busy = false
		m.confirming = false
		m.lastErr = msg.Err
		m.notice = fmt.Sprintf("Removed %d favorites", msg.Count)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirming {
		return m.handleConfirmKey(msg)
	}
	if m.searchFocus {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "/":
		m.searchFocus = true
		m.search.Focus()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "d", "delete":
		return m.deleteSelected()
	case "D":
		if !m.busy && len(m.visible) > 0 {
			m.confirming = true
		}
	case "r":
		if !m.busy {
			m.busy = true
			m.lastErr = nil
			m.notice = ""
			return m, tea.Batch(loadCmd(m.svc, m.email), m.spinner.Tick)
		}
	}
	return m, nil
}

// handleSearchKey routes keystrokes to the search box; the filter is
// recomputed per keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchFocus = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searchFocus = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if !m.busy {
		m.list.SetQuery(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		m.busy = true
		m.lastErr = nil
		return m, tea.Batch(clearCmd(m.list), m.spinner.Tick)
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

// deleteSelected issues exactly one removal for the item under the
// cursor.
func (m Model) deleteSelected() (Model, tea.Cmd) {
	if m.busy || m.cursor >= len(m.visible) {
		return m, nil
	}
	item := m.visible[m.cursor]
	m.busy = true
	m.lastErr = nil
	m.notice = ""
	return m, tea.Batch(deleteCmd(m.list, item), m.spinner.Tick)
}

// refresh rebuilds the render snapshot and clamps the cursor.
func (m *Model) refresh() {
	m.visible = m.list.Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
