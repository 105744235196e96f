// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package favorites

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/ui/components"
	"github.com/fitmate/fitmate-tui/internal/util"
)

// View renders the favorites screen: search box, item list, status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.search.View())
	sections = append(sections, m.renderList())
	sections = append(sections, m.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Favorites")
	count := m.theme.HeaderSubtitle.Render(fmt.Sprintf("%d shown · %d total", len(m.visible), m.list.Len()))
	return m.theme.Header.Width(m.width).Render(title+"  "+count) + "\n"
}

func (m Model) renderList() string {
	listHeight := m.height - 6
	if listHeight < 1 {
		listHeight = 1
	}

	if m.busy && len(m.visible) == 0 {
		return m.spinner.View() + m.theme.ThinkingText.Render(" loading favorites") + strings.Repeat("\n", listHeight-1)
	}
	if m.lastErr != nil && len(m.visible) == 0 {
		return m.theme.ErrorBanner.Render("Error: "+m.lastErr.Error()) + strings.Repeat("\n", max(listHeight-3, 0))
	}
	if len(m.visible) == 0 {
		empty := "No favorites yet. Save workouts, meals and tips from chat."
		if strings.TrimSpace(m.search.Value()) != "" {
			empty = "Nothing matches your search."
		}
		return m.theme.ListEmpty.Render("  "+empty) + strings.Repeat("\n", listHeight-1)
	}

	// Scroll the window so the cursor stays visible.
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > len(m.visible) {
		end = len(m.visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderItem(i))
		b.WriteString("\n")
	}
	for i := end - start; i < listHeight; i++ {
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderItem(i int) string {
	item := m.visible[i]

	category := m.theme.ListCategory.Render(fmt.Sprintf("%-8s", item.Category))
	title := util.TruncateWidth(item.Title, max(m.width-16, 10))

	line := category + " " + title
	if i == m.cursor {
		return m.theme.ListItemSelected.Render("▸ " + line)
	}
	return m.theme.ListItem.Render("  " + line)
}

func (m Model) renderStatus() string {
	if m.confirming {
		prompt := fmt.Sprintf("Remove all %d shown favorites? (y/n)", len(m.visible))
		return m.theme.StatusBar.Width(m.width).Render(m.theme.Notice.Render(prompt))
	}

	status := components.StatusBar{
		Status:    components.StatusReady,
		Account:   m.email,
		Shortcuts: "/ search · d remove · D remove shown · r refresh",
		Width:     m.width,
		Theme:     m.theme,
	}
	if m.busy {
		status.Status = components.StatusLoading
	}
	if m.lastErr != nil {
		status.Status = components.StatusError
	}

	bar := status.Render()
	if m.notice != "" {
		return m.theme.Notice.Render(" "+m.notice) + "\n" + bar
	}
	return "\n" + bar
}
