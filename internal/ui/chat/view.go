// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the chat screen: history viewport, suggestion chips,
// input line and status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.renderSuggestions())
	sections = append(sections, m.renderInput())
	sections = append(sections, m.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Coach")
	sub := m.theme.HeaderSubtitle.Render("chatting as " + m.displayName)
	return m.theme.Header.Width(m.width).Render(title+"  "+sub) + "\n"
}

// renderSuggestions draws the follow-up prompt chips on one line.
func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return "\n"
	}

	var chips []string
	for i, s := range m.suggestions {
		style := m.theme.SuggestionChip
		if i == m.selectedChip {
			style = m.theme.SuggestionSelected
		}
		chips = append(chips, style.Render(s))
		if lipgloss.Width(strings.Join(chips, " ")) > m.width-4 {
			chips = chips[:len(chips)-1]
			break
		}
	}
	return lipgloss.NewStyle().MaxHeight(3).Render(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " ")))
}

func (m Model) renderInput() string {
	return m.input.View()
}

func (m Model) renderStatus() string {
	status := components.StatusBar{
		Status:    components.StatusReady,
		Account:   m.email,
		Shortcuts: "tab suggestions · enter send · esc back",
		Width:     m.width,
		Theme:     m.theme,
	}
	if m.awaiting {
		status.Status = components.StatusThinking
	}
	if m.lastError != nil {
		status.Status = components.StatusError
	}
	return status.Render()
}

// =============================================================================
// HISTORY RENDERING
// =============================================================================

// refreshViewport re-renders the history into the viewport and pins the
// scroll position to the newest message.
func (m *Model) refreshViewport() {
	if m.viewport.Width == 0 {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m *Model) renderHistory() string {
	if m.conversation.IsEmpty() && m.lastError == nil {
		return m.theme.ListEmpty.Render("\n  Say hi to your coach to get started.")
	}

	bubbleWidth := m.viewport.Width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = m.viewport.Width - 2
	}

	var b strings.Builder
	for _, msg := range m.conversation.Messages {
		b.WriteString(m.renderMessage(msg, bubbleWidth))
		b.WriteString("\n")
	}

	if m.awaiting {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.ThinkingText.Render(" thinking" + thinkingDots(time.Since(m.thinkingStart))))
		b.WriteString("\n")
	}
	if m.lastError != nil {
		b.WriteString(m.theme.ErrorBanner.Render("Error: " + m.lastError.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(msg model.Message, bubbleWidth int) string {
	meta := m.theme.BubbleMeta.Render(m.authorName(msg.Role) + " · " + msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case model.ChatRoleUser:
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.Content)
		block := lipgloss.JoinVertical(lipgloss.Right, meta, bubble)
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block)
	default:
		bubble := m.theme.CoachBubble.MaxWidth(bubbleWidth).Render(m.renderMarkdown(msg.Content, bubbleWidth-4))
		return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
	}
}

func (m *Model) authorName(role model.ChatRole) string {
	if role == model.ChatRoleUser && m.displayName != "" {
		return m.displayName
	}
	return role.DisplayName()
}

// renderMarkdown renders a coach reply as markdown, falling back to the
// raw text when rendering fails.
func (m *Model) renderMarkdown(content string, width int) string {
	if width < 10 {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// thinkingDots animates the ellipsis with the elapsed wait.
func thinkingDots(elapsed time.Duration) string {
	switch (elapsed.Milliseconds() / 400) % 3 {
	case 0:
		return "."
	case 1:
		return ".."
	default:
		return "..."
	}
}
