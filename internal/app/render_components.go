package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

// renderHeader renders the application header.
func (m *Model) renderHeader(layout layoutDims) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.AccentDim).
		Foreground(m.theme.TextFg).
		Bold(true).
		Width(layout.width).
		Padding(0, 2).Align(lipgloss.Center)

	passed := 0
	results := m.session.Results()
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	content := fmt.Sprintf("gitdojo  •  %s  •  %d/%d", m.scenario.Title, passed, len(results))
	if branch := m.session.Model().CurrentBranch; branch != "" {
		content = fmt.Sprintf("%s  •  on %s", content, branch)
	}
	return headerStyle.Render(content)
}

// renderFooter renders the key hints.
func (m *Model) renderFooter(layout layoutDims) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Background(m.theme.BorderDim).
		Padding(0, 1)

	if m.showHelp {
		return footerStyle.Width(layout.width).Render(m.renderKeyHint("any key", "Close help"))
	}

	hints := []string{
		m.renderKeyHint("Enter", "Run"),
		m.renderKeyHint("↑/↓", "History"),
		m.renderKeyHint("ctrl+r", "Reset"),
	}
	if m.registry.Enabled("hint") {
		hints = append(hints, m.renderKeyHint("ctrl+t", "Hint"))
	}
	graphLabel := "Show graph"
	if m.showGraph {
		graphLabel = "Hide graph"
	}
	hints = append(hints,
		m.renderKeyHint("ctrl+g", graphLabel),
		m.renderKeyHint("ctrl+l", "Clear"),
		m.renderKeyHint("?", "Help"),
		m.renderKeyHint("esc", "Quit"),
	)
	return footerStyle.Width(layout.width).MaxHeight(1).Render(strings.Join(hints, "  "))
}

// renderKeyHint renders a single key hint as a pill.
func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

// renderPaneTitle renders a pane title.
func (m *Model) renderPaneTitle(title, badge string, focused bool, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	if focused {
		titleStyle = titleStyle.Foreground(m.theme.TextFg).Bold(true)
	}
	line := titleStyle.Render(title)
	if badge != "" {
		line = fmt.Sprintf("%s %s", line, lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true).Render(badge))
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(line)
}

// paneStyle returns a pane style with focus indication.
func (m *Model) paneStyle(focused bool) lipgloss.Style {
	borderColor := m.theme.BorderDim
	borderStyle := lipgloss.NormalBorder()
	if focused {
		borderColor = m.theme.Accent
		borderStyle = lipgloss.RoundedBorder()
	}
	return lipgloss.NewStyle().
		Border(borderStyle).
		BorderForeground(borderColor).
		Padding(0, 1)
}

// renderPane draws content inside a pane of the given outer size.
func (m *Model) renderPane(content string, focused bool, width, height int) string {
	style := m.paneStyle(focused)
	innerHeight := maxInt(1, height-style.GetVerticalFrameSize())
	return style.
		Width(maxInt(1, width-style.GetHorizontalBorderSize())).
		Height(innerHeight).
		MaxHeight(height).
		Render(truncateToHeight(content, innerHeight))
}

// renderHelp renders the help screen from the action registry.
func (m *Model) renderHelp(layout layoutDims) string {
	sectionStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	innerWidth := maxInt(1, layout.width-m.paneStyle(true).GetHorizontalFrameSize())

	lines := []string{m.renderPaneTitle("Help", "", true, innerWidth), ""}
	for _, section := range m.registry.HelpSections() {
		lines = append(lines, sectionStyle.Render(section.Title))
		for _, e := range section.Entries {
			entry := "  " + keyStyle.Width(28).Render(e.Keys) + " " + e.Label
			if e.Description != "" {
				entry += descStyle.Render(" - " + e.Description)
			}
			lines = append(lines, entry)
		}
		lines = append(lines, "")
	}
	lines = append(lines, descStyle.Render(wrap.String(
		"Anything else typed at the prompt is interpreted as a git command: init, add, commit, branch, checkout, switch, merge, restore, status, log, diff.",
		innerWidth)))

	return m.renderPane(strings.Join(lines, "\n"), true, layout.width, layout.bodyHeight)
}
