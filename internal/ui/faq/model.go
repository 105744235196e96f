// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package faq

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/ui/components"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
	"github.com/fitmate/fitmate-tui/internal/util"
)

// Model is the Bubble Tea model for the FAQ screen. The content is
// static; only the filter and the expanded entry are state.
type Model struct {
	theme *styles.Theme

	visible  []Entry
	cursor   int
	expanded int // index into visible, -1 when collapsed

	search      textinput.Model
	searchFocus bool

	width  int
	height int
}

// New creates the FAQ screen.
func New(theme *styles.Theme) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search questions"
	search.CharLimit = 64

	return Model{
		theme:    theme,
		visible:  Entries,
		expanded: -1,
		search:   search,
	}
}

// Init does nothing; the content is static.
func (m Model) Init() tea.Cmd {
	return nil
}

// Visible exposes the filtered entries for tests.
func (m Model) Visible() []Entry {
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
	case tea.KeyMsg:
		if m.searchFocus {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searchFocus = true
		m.search.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter", " ":
		// Toggle the answer under the cursor.
		if m.expanded == m.cursor {
			m.expanded = -1
		} else {
			m.expanded = m.cursor
		}
	case "esc":
		m.expanded = -1
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocus = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.visible = Filter(Entries, m.search.Value())
	m.expanded = -1
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m, cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the FAQ screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.search.View())
	sections = append(sections, m.renderEntries())
	sections = append(sections, m.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("FAQ")
	count := m.theme.HeaderSubtitle.Render(fmt.Sprintf("%d questions", len(m.visible)))
	return m.theme.Header.Width(m.width).Render(title+"  "+count) + "\n"
}

func (m Model) renderEntries() string {
	if len(m.visible) == 0 {
		return m.theme.ListEmpty.Render("  Nothing matches your search.")
	}

	var b strings.Builder
	for i, e := range m.visible {
		question := util.TruncateWidth(e.Question, max(m.width-6, 10))
		if i == m.cursor {
			b.WriteString(m.theme.ListItemSelected.Render("▸ " + question))
		} else {
			b.WriteString(m.theme.ListItem.Render("  " + question))
		}
		b.WriteString("\n")

		if i == m.expanded {
			answer := lipgloss.NewStyle().
				Foreground(styles.TextSecondary).
				Width(max(m.width-8, 20)).
				PaddingLeft(4).
				Render(e.Answer)
			b.WriteString(answer)
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderStatus() string {
	status := components.StatusBar{
		Status:    components.StatusReady,
		Shortcuts: "/ search · enter toggle answer · j/k move",
		Width:     m.width,
		Theme:     m.theme,
	}
	return status.Render()
}
